package model

import "time"

// model
type Unit struct {
	Id                  int       `gorm:"column:id;type:int;comment:id;primaryKey;autoIncrement;not null;" json:"id"`                       // id
	PlayerId            int       `gorm:"column:player_id;type:int;comment:玩家id;index;not null;" json:"playerId"`                           // 玩家id
	Type                string    `gorm:"column:type;type:varchar(32);comment:单位类型;not null;" json:"type"`                                  // 单位类型
	IsTrained           bool      `gorm:"column:is_trained;type:tinyint(1);comment:是否训练完成;index;not null;" json:"isTrained"`                // 是否训练完成
	HealthCurrent       int       `gorm:"column:health_current;type:int;comment:当前血量;not null;" json:"healthCurrent"`                       // 当前血量
	HealthMax           int       `gorm:"column:health_max;type:int;comment:血量上限;not null;" json:"healthMax"`                               // 血量上限
	Attack              int       `gorm:"column:attack;type:int;comment:攻击力;not null;" json:"attack"`                                       // 攻击力
	CurrentTask         string    `gorm:"column:current_task;type:varchar(16);comment:当前任务;not null;" json:"currentTask"`                   // 当前任务
	TaskTargetId        *int      `gorm:"column:task_target_id;type:int;comment:任务目标id;" json:"taskTargetId"`                               // 任务目标id
	TrainingStartedAt   time.Time `gorm:"column:training_started_at;type:datetime;comment:开始训练时间;not null;" json:"trainingStartedAt"`       // 开始训练时间
	TrainingCompletesAt time.Time `gorm:"column:training_completes_at;type:datetime;comment:训练完成时间;not null;" json:"trainingCompletesAt"`   // 训练完成时间
	CreatedAt           time.Time `gorm:"column:created_at;type:datetime;comment:创建时间;not null;autoCreateTime;" json:"createdAt"`           // 创建时间
	UpdatedAt           time.Time `gorm:"column:updated_at;type:datetime;comment:更新时间;not null;autoUpdateTime;" json:"updatedAt"`           // 更新时间
}

func (u *Unit) TableName() string {
	return "units"
}
