package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 业务码约定：0 成功；1~499 业务拒绝（客户端可修复）；>=500 系统错误。
const (
	OK           = 0
	InvalidParam = 1
	BizReject    = 2
	NotFound     = 4
	AuthRequired = 401
	AuthInvalid  = 403
	SystemError  = 500
)
