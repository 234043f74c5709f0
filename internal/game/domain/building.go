package domain

import "time"

// Building 的生命周期只有一次状态迁移：建造中 → 已完成，
// 由进度引擎在 now >= ConstructionCompletesAt 时翻转，不可逆。
type Building struct {
	ID                      int       `json:"id"`
	PlayerID                int       `json:"playerId"`
	Type                    string    `json:"type"`
	GridX                   int       `json:"gridX"`
	GridY                   int       `json:"gridY"`
	Level                   int       `json:"level"`
	IsComplete              bool      `json:"isComplete"`
	HealthCurrent           int       `json:"healthCurrent"`
	HealthMax               int       `json:"healthMax"`
	ConstructionStartedAt   time.Time `json:"constructionStartedAt"`
	ConstructionCompletesAt time.Time `json:"constructionCompletesAt"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}
