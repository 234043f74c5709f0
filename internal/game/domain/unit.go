package domain

import "time"

// Unit 训练完成前 IsTrained=false 且 CurrentTask=TRAINING，
// 引擎扫描翻转后才可被指派任务。
type Unit struct {
	ID                  int       `json:"id"`
	PlayerID            int       `json:"playerId"`
	Type                string    `json:"type"`
	IsTrained           bool      `json:"isTrained"`
	HealthCurrent       int       `json:"healthCurrent"`
	HealthMax           int       `json:"healthMax"`
	Attack              int       `json:"attack"`
	CurrentTask         Task      `json:"currentTask"`
	TaskTargetID        *int      `json:"taskTargetId"`
	TrainingStartedAt   time.Time `json:"trainingStartedAt"`
	TrainingCompletesAt time.Time `json:"trainingCompletesAt"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// IsVillager 只有村民可以被指派采集任务。
func (u *Unit) IsVillager() bool {
	return u.Type == UnitTypeVillager
}
