package domain

// MapResource 是地图上的采集点，注册时按噪声分布播种，当前不参与消耗。
type MapResource struct {
	ID       int    `json:"id"`
	PlayerID int    `json:"playerId"`
	Type     string `json:"type"`
	GridX     int    `json:"gridX"`
	GridY     int    `json:"gridY"`
	Amount    int    `json:"amount"`
	MaxAmount int    `json:"maxAmount"`
}
