package app

import (
	"context"
	"sort"
	"time"

	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/shared/gamedata"
	"DawnEmpire/modules/kit/logx"

	opensimplex "github.com/ojrac/opensimplex-go"
	"go.uber.org/zap"
)

// 每种资源点的铺设数量。储量取数值表的 maxAmount。
var resourcePlacements = map[string]int{
	"TREE":      20,
	"SHEEP":     8,
	"GOLD_ORE":  5,
	"STONE_ORE": 5,
}

// InitService 初始化新玩家的局面：网格中心一座已完工的城镇中心、
// 三个已训练的空闲村民、按噪声分布铺设的初始资源点。
type InitService struct {
	buildingRepo    BuildingRepo
	unitRepo        UnitRepo
	mapResourceRepo MapResourceRepo
	log             logx.Logger
	now             Clock
}

func NewInitService(buildingRepo BuildingRepo, unitRepo UnitRepo,
	mapResourceRepo MapResourceRepo, log logx.Logger, now Clock) *InitService {
	if now == nil {
		now = time.Now
	}
	return &InitService{
		buildingRepo:    buildingRepo,
		unitRepo:        unitRepo,
		mapResourceRepo: mapResourceRepo,
		log:             log,
		now:             now,
	}
}

// SetupNewPlayer 在注册事务之后调用，写入玩家的初始局面。
func (s *InitService) SetupNewPlayer(ctx context.Context, playerID int) error {
	now := s.now()
	center := gamedata.GridSize / 2

	// 城镇中心直接落成，不走建造流程
	if _, err := s.buildingRepo.Create(ctx, &domain.Building{
		PlayerID:                playerID,
		Type:                    gamedata.BuildingTownCenter,
		GridX:                   center,
		GridY:                   center,
		Level:                   1,
		IsComplete:              true,
		HealthCurrent:           gamedata.TownCenterHealth,
		HealthMax:               gamedata.TownCenterHealth,
		ConstructionStartedAt:   now,
		ConstructionCompletesAt: now,
	}); err != nil {
		return err
	}

	for i := 0; i < gamedata.StartingPopulation; i++ {
		if _, err := s.unitRepo.Create(ctx, &domain.Unit{
			PlayerID:            playerID,
			Type:                domain.UnitTypeVillager,
			IsTrained:           true,
			HealthCurrent:       gamedata.VillagerHealth,
			HealthMax:           gamedata.VillagerHealth,
			Attack:              gamedata.VillagerAttack,
			CurrentTask:         domain.TaskIdle,
			TrainingStartedAt:   now,
			TrainingCompletesAt: now,
		}); err != nil {
			return err
		}
	}

	resources := s.seedMapResources(playerID)
	if err := s.mapResourceRepo.BatchCreate(ctx, resources); err != nil {
		return err
	}

	s.log.WithContext(ctx).Info("player initialized",
		zap.Int("playerId", playerID),
		zap.Int("mapResources", len(resources)))
	return nil
}

// seedMapResources 用噪声为每种资源类型挑选落点：每层独立的
// simplex 噪声按格子打分，取分值最高的若干格，聚成自然的资源簇。
// 种子由 playerId 派生，同一玩家重复初始化得到相同布局。
func (s *InitService) seedMapResources(playerID int) []*domain.MapResource {
	type cell struct {
		x, y  int
		score float64
	}
	center := gamedata.GridSize / 2
	out := make([]*domain.MapResource, 0, 64)
	used := map[[2]int]struct{}{
		{center, center}: {}, // 城镇中心所在格不铺资源
	}

	defs := gamedata.MapResourceTypes()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Type < defs[j].Type })

	for layer, def := range defs {
		count := resourcePlacements[def.Type]
		if count == 0 {
			continue
		}
		noise := opensimplex.NewNormalized(int64(playerID)*1000 + int64(layer))

		cells := make([]cell, 0, gamedata.GridSize*gamedata.GridSize)
		for x := 0; x < gamedata.GridSize; x++ {
			for y := 0; y < gamedata.GridSize; y++ {
				// 采样步长 0.1：相邻格子分值相近，选出的落点自然成簇
				cells = append(cells, cell{x: x, y: y, score: noise.Eval2(float64(x)*0.1, float64(y)*0.1)})
			}
		}
		sort.Slice(cells, func(i, j int) bool { return cells[i].score > cells[j].score })

		placed := 0
		for _, c := range cells {
			if placed >= count {
				break
			}
			key := [2]int{c.x, c.y}
			if _, taken := used[key]; taken {
				continue
			}
			used[key] = struct{}{}
			out = append(out, &domain.MapResource{
				PlayerID:  playerID,
				Type:      def.Type,
				GridX:     c.x,
				GridY:     c.y,
				Amount:    def.MaxAmount,
				MaxAmount: def.MaxAmount,
			})
			placed++
		}
	}
	return out
}
