// Package engine 实现进度引擎：单协程定时扫描三件事——
// 建造完工、训练完成、村民采集产出——并把结果推给在线玩家。
package engine

import (
	"context"
	"time"

	"DawnEmpire/internal/game/app/model"
	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/shared/gamedata"
	"DawnEmpire/internal/shared/transport/ws"
	"DawnEmpire/modules/kit/logx"

	"go.uber.org/zap"
)

type BuildingRepo interface {
	DueConstructions(ctx context.Context, now time.Time) ([]*domain.Building, error)
	CompleteConstruction(ctx context.Context, buildingID, playerID, popBonus int) (bool, error)
}

type UnitRepo interface {
	DueTrainings(ctx context.Context, now time.Time) ([]*domain.Unit, error)
	CompleteTraining(ctx context.Context, unitID int) (bool, error)
	GatherCounts(ctx context.Context) (map[int]map[domain.Task]int, error)
}

type PlayerRepo interface {
	GetByID(ctx context.Context, playerID int) (*domain.Player, error)
	CreditResources(ctx context.Context, playerID int, delta domain.Resources) error
}

type Notifier interface {
	Push(playerID int, name string, data any)
}

type Clock func() time.Time

// Engine 的循环跑在单个协程里：一拍做完三次扫描再等下一拍，
// 拍与拍之间不会重叠。任何一行的失败只记日志，下一拍自然重试。
type Engine struct {
	buildingRepo BuildingRepo
	unitRepo     UnitRepo
	playerRepo   PlayerRepo
	notifier     Notifier
	log          logx.Logger
	interval     time.Duration
	now          Clock
}

func New(buildingRepo BuildingRepo, unitRepo UnitRepo, playerRepo PlayerRepo,
	notifier Notifier, log logx.Logger, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = time.Second
	}
	return &Engine{
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
		playerRepo:   playerRepo,
		notifier:     notifier,
		log:          log,
		interval:     interval,
		now:          time.Now,
	}
}

// Run 阻塞运行引擎循环，直到 ctx 被取消。
func (e *Engine) Run(ctx context.Context) {
	e.log.Info("engine started", zap.Duration("interval", e.interval))
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopped")
			return
		case <-ticker.C:
			e.TickOnce(ctx, e.now())
		}
	}
}

// TickOnce 执行一拍：三次扫描相互隔离，一个扫描挂了不影响其余两个。
func (e *Engine) TickOnce(ctx context.Context, now time.Time) {
	e.sweepConstructions(ctx, now)
	e.sweepTrainings(ctx, now)
	e.accrueResources(ctx)
}

// sweepConstructions 把到期的建筑翻转为完工并入账人口加成。
// 翻转是条件更新：只有真正生效的那次才推送事件，重复扫描安全。
func (e *Engine) sweepConstructions(ctx context.Context, now time.Time) {
	due, err := e.buildingRepo.DueConstructions(ctx, now)
	if err != nil {
		e.log.Error("sweep constructions: list due failed", zap.Error(err))
		return
	}
	for _, b := range due {
		popBonus := 0
		if def, ok := gamedata.GetBuilding(b.Type); ok {
			popBonus = def.PopulationProvided
		}
		flipped, err := e.buildingRepo.CompleteConstruction(ctx, b.ID, b.PlayerID, popBonus)
		if err != nil {
			e.log.Error("sweep constructions: complete failed",
				zap.Int("buildingId", b.ID), zap.Error(err))
			continue
		}
		if !flipped {
			continue
		}
		b.IsComplete = true
		e.notifier.Push(b.PlayerID, ws.EvtBuildingCompleted, b)
		e.log.Info("building completed",
			zap.Int("playerId", b.PlayerID),
			zap.String("type", b.Type),
			zap.Int("buildingId", b.ID))
	}
}

// sweepTrainings 把到期的单位翻转为已训练（TRAINING → IDLE）。
func (e *Engine) sweepTrainings(ctx context.Context, now time.Time) {
	due, err := e.unitRepo.DueTrainings(ctx, now)
	if err != nil {
		e.log.Error("sweep trainings: list due failed", zap.Error(err))
		return
	}
	for _, u := range due {
		flipped, err := e.unitRepo.CompleteTraining(ctx, u.ID)
		if err != nil {
			e.log.Error("sweep trainings: complete failed",
				zap.Int("unitId", u.ID), zap.Error(err))
			continue
		}
		if !flipped {
			continue
		}
		u.IsTrained = true
		u.CurrentTask = domain.TaskIdle
		e.notifier.Push(u.PlayerID, ws.EvtUnitCompleted, u)
		e.log.Info("unit completed",
			zap.Int("playerId", u.PlayerID),
			zap.String("type", u.Type),
			zap.Int("unitId", u.ID))
	}
}

// accrueResources 按采集中的村民数给每个玩家入账：每个村民每拍产 1。
// 没有村民在采集的玩家直接跳过，不产生写入也不推送。
func (e *Engine) accrueResources(ctx context.Context) {
	counts, err := e.unitRepo.GatherCounts(ctx)
	if err != nil {
		e.log.Error("accrue resources: gather counts failed", zap.Error(err))
		return
	}
	for playerID, byTask := range counts {
		delta := domain.Resources{
			Food:  byTask[domain.TaskGatherFood],
			Wood:  byTask[domain.TaskGatherWood],
			Gold:  byTask[domain.TaskGatherGold],
			Stone: byTask[domain.TaskGatherStone],
		}
		if delta.IsZero() {
			continue
		}
		if err := e.playerRepo.CreditResources(ctx, playerID, delta); err != nil {
			e.log.Error("accrue resources: credit failed",
				zap.Int("playerId", playerID), zap.Error(err))
			continue
		}
		// 推送入账后的余额，客户端直接覆盖本地值
		player, err := e.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			e.log.Error("accrue resources: read back failed",
				zap.Int("playerId", playerID), zap.Error(err))
			continue
		}
		e.notifier.Push(playerID, ws.EvtResourceUpdate, model.ResourceSnapshot{
			Food:  player.Resources.Food,
			Wood:  player.Resources.Wood,
			Gold:  player.Resources.Gold,
			Stone: player.Resources.Stone,
		})
	}
}
