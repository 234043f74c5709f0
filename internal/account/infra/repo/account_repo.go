package repo

import (
	"context"
	"errors"

	"DawnEmpire/internal/account/domain"
	gamedomain "DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/game/infra/model"
	"DawnEmpire/internal/shared/gamedata"

	"gorm.io/gorm"
)

// AccountRepo 面向 players 表的认证侧视图：只读写身份字段，
// 新行的初始资源/人口列在这里一次性写入。
type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{
		db: db,
	}
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var m model.Player
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err == nil {
		return &domain.Account{
			ID:           m.Id,
			Username:     m.Username,
			Email:        m.Email,
			PasswordHash: m.PasswordHash,
			CreatedAt:    m.CreatedAt,
		}, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 技术错误 → 业务错误
		return nil, domain.ErrAccountNotFound.WithData("email", email)
	}
	return nil, domain.ErrSystemUnavailable.WithData("email", email).WithCause(err)
}

func (r *AccountRepo) Exists(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Player{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, domain.ErrSystemUnavailable.WithData("email", email).WithCause(err)
	}
	return count > 0, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) (int, error) {
	starting := gamedata.StartingResources()
	m := model.Player{
		Username:      a.Username,
		Email:         a.Email,
		PasswordHash:  a.PasswordHash,
		CurrentAge:    gamedomain.AgeDawn,
		Food:          starting.Food,
		Wood:          starting.Wood,
		Gold:          starting.Gold,
		Stone:         starting.Stone,
		Population:    gamedata.StartingPopulation,
		MaxPopulation: gamedata.StartingMaxPopulation,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, domain.ErrSystemUnavailable.WithData("email", a.Email).WithCause(err)
	}
	return m.Id, nil
}
