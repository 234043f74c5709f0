package repo

import (
	"context"
	"errors"

	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/game/infra/model"

	"gorm.io/gorm"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) *PlayerRepo {
	return &PlayerRepo{
		db: db,
	}
}

func playerToDomain(m *model.Player) *domain.Player {
	return &domain.Player{
		ID:         m.Id,
		Username:   m.Username,
		Email:      m.Email,
		CurrentAge: m.CurrentAge,
		Resources: domain.Resources{
			Food:  m.Food,
			Wood:  m.Wood,
			Gold:  m.Gold,
			Stone: m.Stone,
		},
		Population:    m.Population,
		MaxPopulation: m.MaxPopulation,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *PlayerRepo) GetByID(ctx context.Context, playerID int) (*domain.Player, error) {
	var m model.Player
	err := r.db.WithContext(ctx).Where("id = ?", playerID).First(&m).Error
	if err == nil {
		return playerToDomain(&m), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 技术错误 → 业务错误
		return nil, domain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	return nil, domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
}

// errDebitMiss 标记条件扣费没有命中行，事务回滚后再回查具体原因。
var errDebitMiss = errors.New("debit condition not met")

// debitPlayer 以单条条件更新完成“校验 + 扣费”，供动作事务调用。
// WHERE 子句带足额判断，并发下两次扣同一笔余额只会有一次命中，
// 这是防止双花的唯一依据，应用层的预检仅用于给出更准确的错误。
// 依赖 DSN 的 clientFoundRows=true：零成本扣费（如城镇中心）不改任何列，
// 但 WHERE 命中就算成功。
func debitPlayer(tx *gorm.DB, playerID int, cost domain.Resources) (int64, error) {
	res := tx.Model(&model.Player{}).
		Where("id = ? AND food >= ? AND wood >= ? AND gold >= ? AND stone >= ?",
			playerID, cost.Food, cost.Wood, cost.Gold, cost.Stone).
		Updates(map[string]interface{}{
			"food":  gorm.Expr("food - ?", cost.Food),
			"wood":  gorm.Expr("wood - ?", cost.Wood),
			"gold":  gorm.Expr("gold - ?", cost.Gold),
			"stone": gorm.Expr("stone - ?", cost.Stone),
		})
	return res.RowsAffected, res.Error
}

// debitPlayerForTraining 在扣费的同时占用一个人口名额，条件里同时带
// 足额判断与 population < max_population，保证人口上限不被并发突破。
func debitPlayerForTraining(tx *gorm.DB, playerID int, cost domain.Resources) (int64, error) {
	res := tx.Model(&model.Player{}).
		Where("id = ? AND food >= ? AND wood >= ? AND gold >= ? AND stone >= ? AND population < max_population",
			playerID, cost.Food, cost.Wood, cost.Gold, cost.Stone).
		Updates(map[string]interface{}{
			"food":       gorm.Expr("food - ?", cost.Food),
			"wood":       gorm.Expr("wood - ?", cost.Wood),
			"gold":       gorm.Expr("gold - ?", cost.Gold),
			"stone":      gorm.Expr("stone - ?", cost.Stone),
			"population": gorm.Expr("population + 1"),
		})
	return res.RowsAffected, res.Error
}

// 条件更新没命中行时回查一次，区分玩家不存在与余额不足。
func debitMissReason(ctx context.Context, db *gorm.DB, playerID int) error {
	var m model.Player
	err := db.WithContext(ctx).Where("id = ?", playerID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
	}
	return domain.ErrInsufficientResources.WithData("playerId", playerID)
}

// 训练扣费没命中时还要多区分一个人口上限原因。
func trainingMissReason(ctx context.Context, db *gorm.DB, playerID int) error {
	var m model.Player
	err := db.WithContext(ctx).Where("id = ?", playerID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
	}
	if m.Population >= m.MaxPopulation {
		return domain.ErrPopulationCapReached.WithData("playerId", playerID)
	}
	return domain.ErrInsufficientResources.WithData("playerId", playerID)
}

// CreditResources 引擎侧产出入账，只做加法不需要条件。
func (r *PlayerRepo) CreditResources(ctx context.Context, playerID int, delta domain.Resources) error {
	res := r.db.WithContext(ctx).Model(&model.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"food":  gorm.Expr("food + ?", delta.Food),
			"wood":  gorm.Expr("wood + ?", delta.Wood),
			"gold":  gorm.Expr("gold + ?", delta.Gold),
			"stone": gorm.Expr("stone + ?", delta.Stone),
		})
	if res.Error != nil {
		return domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	return nil
}
