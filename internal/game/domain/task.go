package domain

// Task 是已训练村民的当前任务。
// TRAINING 是训练期间的占位值，训练完成扫描把它置为 IDLE；
// 之后任务只能由玩家指派在 IDLE 与四种采集之间切换。
type Task string

const (
	TaskTraining    Task = "TRAINING"
	TaskIdle        Task = "IDLE"
	TaskGatherFood  Task = "GATHER_FOOD"
	TaskGatherWood  Task = "GATHER_WOOD"
	TaskGatherGold  Task = "GATHER_GOLD"
	TaskGatherStone Task = "GATHER_STONE"
)

// AssignableTasks 是玩家可指派的任务全集。
var AssignableTasks = []Task{
	TaskIdle,
	TaskGatherFood,
	TaskGatherWood,
	TaskGatherGold,
	TaskGatherStone,
}

// IsAssignable 报告 task 是否允许由玩家指派。
func (t Task) IsAssignable() bool {
	switch t {
	case TaskIdle, TaskGatherFood, TaskGatherWood, TaskGatherGold, TaskGatherStone:
		return true
	default:
		return false
	}
}

// UnitTypeVillager 是唯一可采集的单位类型。
const UnitTypeVillager = "VILLAGER"
