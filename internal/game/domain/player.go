package domain

import "time"

// Player 是聚合根：资源与人口字段同时被请求侧（扣减）和引擎侧（累加）
// 修改，两条路径都必须走仓储的条件更新，保证 population <= maxPopulation
// 且资源不为负。
type Player struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	CurrentAge    string    `json:"currentAge"`
	Resources     Resources `json:"resources"`
	Population    int       `json:"population"`
	MaxPopulation int       `json:"maxPopulation"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AgeDawn 是新玩家的起始时代。
const AgeDawn = "DAWN"
