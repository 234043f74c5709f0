package model

import "time"

// model
type Player struct {
	Id            int       `gorm:"column:id;type:int;comment:id;primaryKey;autoIncrement;not null;" json:"id"`          // id
	Username      string    `gorm:"column:username;type:varchar(32);comment:用户名;uniqueIndex;not null;" json:"username"`  // 用户名
	Email         string    `gorm:"column:email;type:varchar(128);comment:邮箱;uniqueIndex;not null;" json:"email"`        // 邮箱
	PasswordHash  string    `gorm:"column:password_hash;type:varchar(128);comment:密码散列;not null;" json:"-"`              // 密码散列
	CurrentAge    string    `gorm:"column:current_age;type:varchar(16);comment:时代;not null;" json:"currentAge"`          // 时代
	Food          int       `gorm:"column:food;type:int;comment:食物;not null;" json:"food"`                               // 食物
	Wood          int       `gorm:"column:wood;type:int;comment:木材;not null;" json:"wood"`                               // 木材
	Gold          int       `gorm:"column:gold;type:int;comment:金币;not null;" json:"gold"`                               // 金币
	Stone         int       `gorm:"column:stone;type:int;comment:石料;not null;" json:"stone"`                             // 石料
	Population    int       `gorm:"column:population;type:int;comment:人口;not null;" json:"population"`                   // 人口
	MaxPopulation int       `gorm:"column:max_population;type:int;comment:人口上限;not null;" json:"maxPopulation"`          // 人口上限
	CreatedAt     time.Time `gorm:"column:created_at;type:datetime;comment:创建时间;not null;autoCreateTime;" json:"createdAt"` // 创建时间
	UpdatedAt     time.Time `gorm:"column:updated_at;type:datetime;comment:更新时间;not null;autoUpdateTime;" json:"updatedAt"` // 更新时间
}

func (p *Player) TableName() string {
	return "players"
}
