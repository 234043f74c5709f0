package model

// model
type MapResource struct {
	Id        int    `gorm:"column:id;type:int;comment:id;primaryKey;autoIncrement;not null;" json:"id"` // id
	PlayerId  int    `gorm:"column:player_id;type:int;comment:玩家id;index;not null;" json:"playerId"`     // 玩家id
	Type      string `gorm:"column:type;type:varchar(32);comment:资源点类型;not null;" json:"type"`           // 资源点类型
	GridX     int    `gorm:"column:grid_x;type:int;comment:格子x;not null;" json:"gridX"`                  // 格子x
	GridY     int    `gorm:"column:grid_y;type:int;comment:格子y;not null;" json:"gridY"`                  // 格子y
	Amount    int    `gorm:"column:amount;type:int;comment:储量;not null;" json:"amount"`                  // 储量
	MaxAmount int    `gorm:"column:max_amount;type:int;comment:储量上限;not null;" json:"maxAmount"`         // 储量上限
}

func (m *MapResource) TableName() string {
	return "map_resources"
}
