package domain

import "DawnEmpire/modules/kit/errx"

// 游戏域业务错误码。校验失败一律返回业务错误，只有存储层故障才升级为系统错误。
const (
	CodeInvalidBuildingType  errx.Code = "INVALID_BUILDING_TYPE"
	CodeInvalidUnitType      errx.Code = "INVALID_UNIT_TYPE"
	CodeInvalidTask          errx.Code = "INVALID_TASK"
	CodeAgeLocked            errx.Code = "AGE_LOCKED"
	CodeInsufficientResource errx.Code = "INSUFFICIENT_RESOURCES"
	CodeLocationOccupied     errx.Code = "LOCATION_OCCUPIED"
	CodeBuildingNotFound     errx.Code = "BUILDING_NOT_FOUND"
	CodeWrongBuilding        errx.Code = "WRONG_BUILDING"
	CodePopulationCapped     errx.Code = "POPULATION_CAP_REACHED"
	CodeUnitNotFound         errx.Code = "UNIT_NOT_FOUND"
	CodeUnitNotTrained       errx.Code = "UNIT_NOT_TRAINED"
	CodeNotAVillager         errx.Code = "NOT_A_VILLAGER"
	CodePlayerNotFound       errx.Code = "PLAYER_NOT_FOUND"
)

var (
	ErrInvalidBuildingType   = errx.NewBiz(CodeInvalidBuildingType, "未知的建筑类型")
	ErrInvalidUnitType       = errx.NewBiz(CodeInvalidUnitType, "未知的单位类型")
	ErrInvalidTask           = errx.NewBiz(CodeInvalidTask, "无法指派该任务")
	ErrAgeLocked             = errx.NewBiz(CodeAgeLocked, "时代等级不足")
	ErrInsufficientResources = errx.NewBiz(CodeInsufficientResource, "资源不足")
	ErrLocationOccupied      = errx.NewBiz(CodeLocationOccupied, "该位置已被占用")
	ErrBuildingNotFound      = errx.NewBiz(CodeBuildingNotFound, "建筑不存在")
	ErrWrongBuilding         = errx.NewBiz(CodeWrongBuilding, "该建筑无法训练此单位")
	ErrPopulationCapReached  = errx.NewBiz(CodePopulationCapped, "人口已达上限")
	ErrUnitNotFound          = errx.NewBiz(CodeUnitNotFound, "单位不存在")
	ErrUnitNotTrained        = errx.NewBiz(CodeUnitNotTrained, "单位尚未完成训练")
	ErrNotAVillager          = errx.NewBiz(CodeNotAVillager, "只有村民可以执行采集任务")
	ErrPlayerNotFound        = errx.NewBiz(CodePlayerNotFound, "玩家不存在")

	// ErrSystemUnavailable 统一复用系统哨兵，存储层故障走这里。
	ErrSystemUnavailable = errx.ErrUnavailable
)
