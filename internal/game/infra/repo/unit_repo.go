package repo

import (
	"context"
	"errors"
	"time"

	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/game/infra/model"

	"gorm.io/gorm"
)

type UnitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) *UnitRepo {
	return &UnitRepo{
		db: db,
	}
}

func unitToDomain(m *model.Unit) *domain.Unit {
	return &domain.Unit{
		ID:                  m.Id,
		PlayerID:            m.PlayerId,
		Type:                m.Type,
		IsTrained:           m.IsTrained,
		HealthCurrent:       m.HealthCurrent,
		HealthMax:           m.HealthMax,
		Attack:              m.Attack,
		CurrentTask:         domain.Task(m.CurrentTask),
		TaskTargetID:        m.TaskTargetId,
		TrainingStartedAt:   m.TrainingStartedAt,
		TrainingCompletesAt: m.TrainingCompletesAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func unitToModel(u *domain.Unit) *model.Unit {
	return &model.Unit{
		Id:                  u.ID,
		PlayerId:            u.PlayerID,
		Type:                u.Type,
		IsTrained:           u.IsTrained,
		HealthCurrent:       u.HealthCurrent,
		HealthMax:           u.HealthMax,
		Attack:              u.Attack,
		CurrentTask:         string(u.CurrentTask),
		TaskTargetId:        u.TaskTargetID,
		TrainingStartedAt:   u.TrainingStartedAt,
		TrainingCompletesAt: u.TrainingCompletesAt,
	}
}

func (r *UnitRepo) Create(ctx context.Context, u *domain.Unit) (*domain.Unit, error) {
	m := unitToModel(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("playerId", u.PlayerID).WithCause(err)
	}
	return unitToDomain(m), nil
}

// CreateWithDebit 在同一事务里完成“扣费 + 人口占位 + 单位落库”：
// 条件更新没命中或插入失败都整体回滚，不会留下半截状态。
func (r *UnitRepo) CreateWithDebit(ctx context.Context, u *domain.Unit, cost domain.Resources) (*domain.Unit, error) {
	m := unitToModel(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := debitPlayerForTraining(tx, u.PlayerID, cost)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errDebitMiss
		}
		return tx.Create(m).Error
	})
	if errors.Is(err, errDebitMiss) {
		return nil, trainingMissReason(ctx, r.db, u.PlayerID)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("playerId", u.PlayerID).WithCause(err)
	}
	return unitToDomain(m), nil
}

func (r *UnitRepo) GetByID(ctx context.Context, unitID int) (*domain.Unit, error) {
	var m model.Unit
	err := r.db.WithContext(ctx).Where("id = ?", unitID).First(&m).Error
	if err == nil {
		return unitToDomain(&m), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUnitNotFound.WithData("unitId", unitID)
	}
	return nil, domain.ErrSystemUnavailable.WithData("unitId", unitID).WithCause(err)
}

func (r *UnitRepo) ListByPlayer(ctx context.Context, playerID int) ([]*domain.Unit, error) {
	var ms []model.Unit
	err := r.db.WithContext(ctx).Where("player_id = ?", playerID).Order("id").Find(&ms).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("playerId", playerID).WithCause(err)
	}
	out := make([]*domain.Unit, 0, len(ms))
	for i := range ms {
		out = append(out, unitToDomain(&ms[i]))
	}
	return out, nil
}

// DueTrainings 返回已到训练完成时间但尚未翻转的单位。
func (r *UnitRepo) DueTrainings(ctx context.Context, now time.Time) ([]*domain.Unit, error) {
	var ms []model.Unit
	err := r.db.WithContext(ctx).
		Where("is_trained = ? AND training_completes_at <= ?", false, now).
		Order("id").Find(&ms).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]*domain.Unit, 0, len(ms))
	for i := range ms {
		out = append(out, unitToDomain(&ms[i]))
	}
	return out, nil
}

// CompleteTraining 把单位翻转为已训练并置为空闲。
// WHERE is_trained = 0 保证翻转只生效一次，返回值报告本次是否生效。
func (r *UnitRepo) CompleteTraining(ctx context.Context, unitID int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Unit{}).
		Where("id = ? AND is_trained = ?", unitID, false).
		Updates(map[string]interface{}{
			"is_trained":   true,
			"current_task": string(domain.TaskIdle),
		})
	if res.Error != nil {
		return false, domain.ErrSystemUnavailable.WithData("unitId", unitID).WithCause(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpdateTask 指派任务，条件带 is_trained 防止给训练中的单位派活。
func (r *UnitRepo) UpdateTask(ctx context.Context, unitID int, task domain.Task, targetID *int) error {
	res := r.db.WithContext(ctx).Model(&model.Unit{}).
		Where("id = ? AND is_trained = ?", unitID, true).
		Updates(map[string]interface{}{
			"current_task":   string(task),
			"task_target_id": targetID,
		})
	if res.Error != nil {
		return domain.ErrSystemUnavailable.WithData("unitId", unitID).WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUnitNotTrained.WithData("unitId", unitID)
	}
	return nil
}

// GatherCounts 按玩家聚合正在采集的已训练村民数量，引擎产出扫描用。
// 返回 playerId → 任务 → 村民数。
func (r *UnitRepo) GatherCounts(ctx context.Context) (map[int]map[domain.Task]int, error) {
	type row struct {
		PlayerId    int
		CurrentTask string
		Cnt         int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Unit{}).
		Select("player_id, current_task, COUNT(*) AS cnt").
		Where("type = ? AND is_trained = ? AND current_task IN ?",
			domain.UnitTypeVillager, true, []string{
				string(domain.TaskGatherFood),
				string(domain.TaskGatherWood),
				string(domain.TaskGatherGold),
				string(domain.TaskGatherStone),
			}).
		Group("player_id, current_task").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make(map[int]map[domain.Task]int, len(rows))
	for _, rw := range rows {
		byTask := out[rw.PlayerId]
		if byTask == nil {
			byTask = make(map[domain.Task]int, 4)
			out[rw.PlayerId] = byTask
		}
		byTask[domain.Task(rw.CurrentTask)] = rw.Cnt
	}
	return out, nil
}
