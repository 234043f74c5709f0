package model

import "DawnEmpire/internal/game/domain"

type BuildReq struct {
	BuildingType string `json:"buildingType"`
	GridX        int    `json:"gridX"`
	GridY        int    `json:"gridY"`
}

type TrainReq struct {
	UnitType   string `json:"unitType"`
	BuildingID int    `json:"buildingId"`
}

type AssignTaskReq struct {
	Task         string `json:"task"`
	TaskTargetID *int   `json:"taskTargetId"`
}

// GameState 是玩家的全量快照，login 后与 join-game 时下发。
type GameState struct {
	Player       *domain.Player        `json:"player"`
	Buildings    []*domain.Building    `json:"buildings"`
	Units        []*domain.Unit        `json:"units"`
	MapResources []*domain.MapResource `json:"mapResources"`
}

// ResourceSnapshot 是 resource-update 事件的载荷。
type ResourceSnapshot struct {
	Food  int `json:"food"`
	Wood  int `json:"wood"`
	Gold  int `json:"gold"`
	Stone int `json:"stone"`
}
