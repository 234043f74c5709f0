package repo

import (
	"context"

	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/game/infra/model"

	"gorm.io/gorm"
)

type MapResourceRepo struct {
	db *gorm.DB
}

func NewMapResourceRepo(db *gorm.DB) *MapResourceRepo {
	return &MapResourceRepo{
		db: db,
	}
}

// BatchCreate 注册初始化时一次性播种玩家的资源点。
func (r *MapResourceRepo) BatchCreate(ctx context.Context, resources []*domain.MapResource) error {
	if len(resources) == 0 {
		return nil
	}
	ms := make([]model.MapResource, 0, len(resources))
	for _, mr := range resources {
		ms = append(ms, model.MapResource{
			PlayerId:  mr.PlayerID,
			Type:      mr.Type,
			GridX:     mr.GridX,
			GridY:     mr.GridY,
			Amount:    mr.Amount,
			MaxAmount: mr.MaxAmount,
		})
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("playerId", resources[0].PlayerID).WithCause(err)
	}
	return nil
}

func (r *MapResourceRepo) ListByPlayer(ctx context.Context, playerID int) ([]*domain.MapResource, error) {
	var ms []model.MapResource
	err := r.db.WithContext(ctx).Where("player_id = ?", playerID).Order("id").Find(&ms).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
	}
	out := make([]*domain.MapResource, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		out = append(out, &domain.MapResource{
			ID:        m.Id,
			PlayerID:  m.PlayerId,
			Type:      m.Type,
			GridX:     m.GridX,
			GridY:     m.GridY,
			Amount:    m.Amount,
			MaxAmount: m.MaxAmount,
		})
	}
	return out, nil
}
