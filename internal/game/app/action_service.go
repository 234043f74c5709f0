package app

import (
	"context"
	"time"

	"DawnEmpire/internal/game/app/model"
	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/shared/gamedata"
	"DawnEmpire/internal/shared/transport/ws"
	"DawnEmpire/modules/kit/logx"
)

// ActionService 处理玩家的三类指令：造建筑、训单位、派任务。
// 校验分两层：这里的预检负责给出准确的业务错误；
// 真正的不变式由仓储层的条件更新兜底（并发下预检可能过期）。
type ActionService struct {
	playerRepo   PlayerRepo
	buildingRepo BuildingRepo
	unitRepo     UnitRepo
	notifier     Notifier
	log          logx.Logger
	now          Clock
	// acceleration 是时间加速除数，完成时刻 = now + 时长/acceleration。
	acceleration float64
}

func NewActionService(playerRepo PlayerRepo, buildingRepo BuildingRepo, unitRepo UnitRepo,
	notifier Notifier, log logx.Logger, now Clock, acceleration float64) *ActionService {
	if now == nil {
		now = time.Now
	}
	if acceleration <= 0 {
		acceleration = 1
	}
	return &ActionService{
		playerRepo:   playerRepo,
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
		notifier:     notifier,
		log:          log,
		now:          now,
		acceleration: acceleration,
	}
}

// scaled 把数值表里的秒数换算成加速后的真实时长。
func (s *ActionService) scaled(seconds int) time.Duration {
	return time.Duration(float64(seconds) * float64(time.Second) / s.acceleration)
}

// Build 为玩家开工一座建筑。
// 校验顺序：类型 → 时代 → 资源 → 占格，然后条件扣费并落库。
func (s *ActionService) Build(ctx context.Context, playerID int, req model.BuildReq) (*domain.Building, error) {
	def, ok := gamedata.GetBuilding(req.BuildingType)
	if !ok {
		return nil, domain.ErrInvalidBuildingType.WithData("buildingType", req.BuildingType)
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if gamedata.AgeRank(player.CurrentAge) < gamedata.AgeRank(def.RequiredAge) {
		return nil, domain.ErrAgeLocked.WithData("requiredAge", def.RequiredAge)
	}

	cost := domain.Resources{Food: def.Cost.Food, Wood: def.Cost.Wood, Gold: def.Cost.Gold, Stone: def.Cost.Stone}
	if !player.Resources.Covers(cost) {
		return nil, domain.ErrInsufficientResources.WithData("buildingType", req.BuildingType)
	}

	occupied, err := s.buildingRepo.ExistsAt(ctx, playerID, req.GridX, req.GridY)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, domain.ErrLocationOccupied.WithData("gridX", req.GridX).WithData("gridY", req.GridY)
	}

	now := s.now()
	health := gamedata.DefaultBuildingHealth
	if def.Type == gamedata.BuildingTownCenter {
		health = gamedata.TownCenterHealth
	}
	// 扣费与落库同一事务，条件扣费防双花；
	// 零耗时建筑直接落成，不进引擎扫描。
	building, err := s.buildingRepo.CreateWithDebit(ctx, &domain.Building{
		PlayerID:                playerID,
		Type:                    def.Type,
		GridX:                   req.GridX,
		GridY:                   req.GridY,
		Level:                   1,
		IsComplete:              def.BuildTime == 0,
		HealthCurrent:           health,
		HealthMax:               health,
		ConstructionStartedAt:   now,
		ConstructionCompletesAt: now.Add(s.scaled(def.BuildTime)),
	}, cost)
	if err != nil {
		return nil, err
	}

	s.notifier.Push(playerID, ws.EvtGameStateUpdate, map[string]any{
		"buildings": []*domain.Building{building},
	})
	return building, nil
}

// Train 在指定建筑训练一个单位。
// 校验顺序：类型 → 建筑存在 → 建筑匹配 → 时代 → 资源 → 人口，
// 然后单条条件更新同时完成扣费与人口占位。
func (s *ActionService) Train(ctx context.Context, playerID int, req model.TrainReq) (*domain.Unit, error) {
	def, ok := gamedata.GetUnit(req.UnitType)
	if !ok {
		return nil, domain.ErrInvalidUnitType.WithData("unitType", req.UnitType)
	}

	building, err := s.buildingRepo.GetByID(ctx, req.BuildingID)
	if err != nil {
		return nil, err
	}
	if building.PlayerID != playerID {
		// 别人的建筑对本玩家不可见
		return nil, domain.ErrBuildingNotFound.WithData("buildingId", req.BuildingID)
	}
	if building.Type != def.RequiredBuilding {
		return nil, domain.ErrWrongBuilding.WithData("buildingType", building.Type).WithData("unitType", req.UnitType)
	}
	if !building.IsComplete {
		return nil, domain.ErrWrongBuilding.WithData("reason", "建筑尚未完工")
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if gamedata.AgeRank(player.CurrentAge) < gamedata.AgeRank(def.RequiredAge) {
		return nil, domain.ErrAgeLocked.WithData("requiredAge", def.RequiredAge)
	}

	cost := domain.Resources{Food: def.Cost.Food, Wood: def.Cost.Wood, Gold: def.Cost.Gold, Stone: def.Cost.Stone}
	if !player.Resources.Covers(cost) {
		return nil, domain.ErrInsufficientResources.WithData("unitType", req.UnitType)
	}
	if player.Population+def.PopulationCost > player.MaxPopulation {
		return nil, domain.ErrPopulationCapReached.WithData("population", player.Population)
	}

	now := s.now()
	// 零耗时单位直接练成置为空闲，其余以 TRAINING 状态等引擎翻转
	trained := def.TrainingTime == 0
	task := domain.TaskTraining
	if trained {
		task = domain.TaskIdle
	}
	// 扣费 + 人口占位是一条条件更新，与落库同一事务，并发下不会突破上限
	unit, err := s.unitRepo.CreateWithDebit(ctx, &domain.Unit{
		PlayerID:            playerID,
		Type:                def.Type,
		IsTrained:           trained,
		HealthCurrent:       gamedata.DefaultUnitHealth,
		HealthMax:           gamedata.DefaultUnitHealth,
		Attack:              gamedata.DefaultUnitAttack,
		CurrentTask:         task,
		TrainingStartedAt:   now,
		TrainingCompletesAt: now.Add(s.scaled(def.TrainingTime)),
	}, cost)
	if err != nil {
		return nil, err
	}

	s.notifier.Push(playerID, ws.EvtGameStateUpdate, map[string]any{
		"units": []*domain.Unit{unit},
	})
	return unit, nil
}

// AssignTask 给已训练的村民派任务。
// 校验顺序：任务合法 → 单位存在且属于本人 → 已训练 → 是村民。
func (s *ActionService) AssignTask(ctx context.Context, playerID, unitID int, req model.AssignTaskReq) (*domain.Unit, error) {
	task := domain.Task(req.Task)
	if !task.IsAssignable() {
		return nil, domain.ErrInvalidTask.WithData("task", req.Task)
	}

	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit.PlayerID != playerID {
		return nil, domain.ErrUnitNotFound.WithData("unitId", unitID)
	}
	if !unit.IsTrained {
		return nil, domain.ErrUnitNotTrained.WithData("unitId", unitID)
	}
	if !unit.IsVillager() {
		return nil, domain.ErrNotAVillager.WithData("unitType", unit.Type)
	}

	if err = s.unitRepo.UpdateTask(ctx, unitID, task, req.TaskTargetID); err != nil {
		return nil, err
	}

	unit.CurrentTask = task
	unit.TaskTargetID = req.TaskTargetID
	s.notifier.Push(playerID, ws.EvtUnitTaskUpdated, unit)
	return unit, nil
}
