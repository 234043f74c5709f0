package app

import (
	"context"

	"DawnEmpire/internal/game/app/model"
	"DawnEmpire/internal/game/domain"
)

// StateService 组装玩家的全量游戏快照。
type StateService struct {
	playerRepo      PlayerRepo
	buildingRepo    BuildingRepo
	unitRepo        UnitRepo
	mapResourceRepo MapResourceRepo
}

func NewStateService(playerRepo PlayerRepo, buildingRepo BuildingRepo,
	unitRepo UnitRepo, mapResourceRepo MapResourceRepo) *StateService {
	return &StateService{
		playerRepo:      playerRepo,
		buildingRepo:    buildingRepo,
		unitRepo:        unitRepo,
		mapResourceRepo: mapResourceRepo,
	}
}

// GameState 返回玩家 + 建筑 + 单位 + 地图资源的快照。
// 各表分别读取，不加事务：快照允许微小的时间差，客户端靠增量事件追平。
func (s *StateService) GameState(ctx context.Context, playerID int) (*model.GameState, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	buildings, err := s.buildingRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	units, err := s.unitRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	mapResources, err := s.mapResourceRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &model.GameState{
		Player:       player,
		Buildings:    buildings,
		Units:        units,
		MapResources: mapResources,
	}, nil
}

func (s *StateService) Buildings(ctx context.Context, playerID int) ([]*domain.Building, error) {
	return s.buildingRepo.ListByPlayer(ctx, playerID)
}

func (s *StateService) Units(ctx context.Context, playerID int) ([]*domain.Unit, error) {
	return s.unitRepo.ListByPlayer(ctx, playerID)
}
