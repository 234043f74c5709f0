package model

import "time"

// model
type Building struct {
	Id                      int       `gorm:"column:id;type:int;comment:id;primaryKey;autoIncrement;not null;" json:"id"`                            // id
	PlayerId                int       `gorm:"column:player_id;type:int;comment:玩家id;index;not null;" json:"playerId"`                                // 玩家id
	Type                    string    `gorm:"column:type;type:varchar(32);comment:建筑类型;not null;" json:"type"`                                       // 建筑类型
	GridX                   int       `gorm:"column:grid_x;type:int;comment:格子x;not null;" json:"gridX"`                                             // 格子x
	GridY                   int       `gorm:"column:grid_y;type:int;comment:格子y;not null;" json:"gridY"`                                             // 格子y
	Level                   int       `gorm:"column:level;type:int;comment:等级;not null;" json:"level"`                                               // 等级
	IsComplete              bool      `gorm:"column:is_complete;type:tinyint(1);comment:是否完工;index;not null;" json:"isComplete"`                     // 是否完工
	HealthCurrent           int       `gorm:"column:health_current;type:int;comment:当前血量;not null;" json:"healthCurrent"`                            // 当前血量
	HealthMax               int       `gorm:"column:health_max;type:int;comment:血量上限;not null;" json:"healthMax"`                                    // 血量上限
	ConstructionStartedAt   time.Time `gorm:"column:construction_started_at;type:datetime;comment:开工时间;not null;" json:"constructionStartedAt"`      // 开工时间
	ConstructionCompletesAt time.Time `gorm:"column:construction_completes_at;type:datetime;comment:完工时间;not null;" json:"constructionCompletesAt"`  // 完工时间
	CreatedAt               time.Time `gorm:"column:created_at;type:datetime;comment:创建时间;not null;autoCreateTime;" json:"createdAt"`                // 创建时间
	UpdatedAt               time.Time `gorm:"column:updated_at;type:datetime;comment:更新时间;not null;autoUpdateTime;" json:"updatedAt"`                // 更新时间
}

func (b *Building) TableName() string {
	return "buildings"
}
