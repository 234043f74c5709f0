package repo

import (
	"context"
	"errors"
	"time"

	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/game/infra/model"

	"gorm.io/gorm"
)

type BuildingRepo struct {
	db *gorm.DB
}

func NewBuildingRepo(db *gorm.DB) *BuildingRepo {
	return &BuildingRepo{
		db: db,
	}
}

func buildingToDomain(m *model.Building) *domain.Building {
	return &domain.Building{
		ID:                      m.Id,
		PlayerID:                m.PlayerId,
		Type:                    m.Type,
		GridX:                   m.GridX,
		GridY:                   m.GridY,
		Level:                   m.Level,
		IsComplete:              m.IsComplete,
		HealthCurrent:           m.HealthCurrent,
		HealthMax:               m.HealthMax,
		ConstructionStartedAt:   m.ConstructionStartedAt,
		ConstructionCompletesAt: m.ConstructionCompletesAt,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

func buildingToModel(b *domain.Building) *model.Building {
	return &model.Building{
		Id:                      b.ID,
		PlayerId:                b.PlayerID,
		Type:                    b.Type,
		GridX:                   b.GridX,
		GridY:                   b.GridY,
		Level:                   b.Level,
		IsComplete:              b.IsComplete,
		HealthCurrent:           b.HealthCurrent,
		HealthMax:               b.HealthMax,
		ConstructionStartedAt:   b.ConstructionStartedAt,
		ConstructionCompletesAt: b.ConstructionCompletesAt,
	}
}

func (r *BuildingRepo) Create(ctx context.Context, b *domain.Building) (*domain.Building, error) {
	m := buildingToModel(b)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("playerId", b.PlayerID).WithCause(err)
	}
	return buildingToDomain(m), nil
}

// CreateWithDebit 在同一事务里完成条件扣费与建筑落库：
// 扣费没命中整体回滚，插入失败也不会留下已扣掉的资源。
func (r *BuildingRepo) CreateWithDebit(ctx context.Context, b *domain.Building, cost domain.Resources) (*domain.Building, error) {
	m := buildingToModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := debitPlayer(tx, b.PlayerID, cost)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errDebitMiss
		}
		return tx.Create(m).Error
	})
	if errors.Is(err, errDebitMiss) {
		return nil, debitMissReason(ctx, r.db, b.PlayerID)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("playerId", b.PlayerID).WithCause(err)
	}
	return buildingToDomain(m), nil
}

func (r *BuildingRepo) GetByID(ctx context.Context, buildingID int) (*domain.Building, error) {
	var m model.Building
	err := r.db.WithContext(ctx).Where("id = ?", buildingID).First(&m).Error
	if err == nil {
		return buildingToDomain(&m), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBuildingNotFound.WithData("buildingId", buildingID)
	}
	return nil, domain.ErrSystemUnavailable.WithData("buildingId", buildingID).WithCause(err)
}

func (r *BuildingRepo) ListByPlayer(ctx context.Context, playerID int) ([]*domain.Building, error) {
	var ms []model.Building
	err := r.db.WithContext(ctx).Where("player_id = ?", playerID).Order("id").Find(&ms).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
	}
	out := make([]*domain.Building, 0, len(ms))
	for i := range ms {
		out = append(out, buildingToDomain(&ms[i]))
	}
	return out, nil
}

// ExistsAt 报告玩家在该格子上是否已有建筑（含建造中的）。
func (r *BuildingRepo) ExistsAt(ctx context.Context, playerID, gridX, gridY int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Building{}).
		Where("player_id = ? AND grid_x = ? AND grid_y = ?", playerID, gridX, gridY).
		Count(&count).Error
	if err != nil {
		return false, domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
	}
	return count > 0, nil
}

// DueConstructions 返回已到完工时间但尚未翻转的建筑，引擎每拍扫描一次。
func (r *BuildingRepo) DueConstructions(ctx context.Context, now time.Time) ([]*domain.Building, error) {
	var ms []model.Building
	err := r.db.WithContext(ctx).
		Where("is_complete = ? AND construction_completes_at <= ?", false, now).
		Order("id").Find(&ms).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]*domain.Building, 0, len(ms))
	for i := range ms {
		out = append(out, buildingToDomain(&ms[i]))
	}
	return out, nil
}

// CompleteConstruction 把建筑翻转为已完成，并在同一事务里入账人口上限加成。
// WHERE is_complete = 0 保证重复扫描（或两个引擎实例）只会有一次翻转生效，
// 返回值报告本次调用是否就是那次生效的翻转。
func (r *BuildingRepo) CompleteConstruction(ctx context.Context, buildingID, playerID, popBonus int) (bool, error) {
	flipped := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Building{}).
			Where("id = ? AND is_complete = ?", buildingID, false).
			Update("is_complete", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		flipped = true
		if popBonus > 0 {
			if err := tx.Model(&model.Player{}).
				Where("id = ?", playerID).
				Update("max_population", gorm.Expr("max_population + ?", popBonus)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, domain.ErrSystemUnavailable.WithData("buildingId", buildingID).WithCause(err)
	}
	return flipped, nil
}

// HasCompleted 报告玩家是否拥有指定类型的已完工建筑（训练前置校验用）。
func (r *BuildingRepo) HasCompleted(ctx context.Context, playerID int, buildingType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Building{}).
		Where("player_id = ? AND type = ? AND is_complete = ?", playerID, buildingType, true).
		Count(&count).Error
	if err != nil {
		return false, domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
	}
	return count > 0, nil
}
