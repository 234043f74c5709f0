package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/shared/transport"
	"DawnEmpire/modules/kit/errx"
)

// httpStatus 把游戏域错误映射到 HTTP 状态：
// 资源不存在类 → 404，其余业务拒绝 → 400，系统错误 → 500。
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrBuildingNotFound),
		errors.Is(err, domain.ErrUnitNotFound),
		errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound
	}
	var e *errx.Error
	if errors.As(err, &e) && e.IsBiz() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// bizCode 把错误折算成访问日志用的业务码。
func bizCode(status int) int {
	switch status {
	case http.StatusBadRequest:
		return transport.BizReject
	case http.StatusNotFound:
		return transport.NotFound
	default:
		return transport.SystemError
	}
}

// writeError 统一输出错误响应：{"code": ..., "error": ...}。
// 系统错误不向客户端透出内部细节。
func writeError(c *gin.Context, err error) {
	status := httpStatus(err)

	msg := "服务器内部错误"
	var e *errx.Error
	if errors.As(err, &e) && e.IsBiz() {
		msg = e.Msg()
	}
	c.JSON(status, gin.H{"code": bizCode(status), "error": msg})
}
