package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"DawnEmpire/internal/account/app"
	"DawnEmpire/internal/account/dto"
	"DawnEmpire/internal/shared/transport"
	"DawnEmpire/internal/shared/transport/http/middleware"
	"DawnEmpire/modules/kit/errx"
	"DawnEmpire/modules/kit/logx"
)

// 会话 cookie 与 JWT 同寿命。
const tokenCookieMaxAge = 7 * 24 * 60 * 60

// Auth 是注册/登录/登出的 HTTP 入口。
type Auth struct {
	authService *app.AuthService
	log         logx.Logger
}

func NewAuth(authService *app.AuthService, log logx.Logger) *Auth {
	return &Auth{
		authService: authService,
		log:         log,
	}
}

// RegisterRoutes 挂载认证路由；me 需要登录态，由调用方套 Auth 中间件。
func (h *Auth) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/auth/register", h.register)
	public.POST("/auth/login", h.login)
	public.POST("/auth/logout", h.logout)
	authed.GET("/auth/me", h.me)
}

func (h *Auth) register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "error": "请求参数错误"})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, "auth register", err)
		return
	}
	h.setTokenCookie(c, resp.Token)
	c.JSON(http.StatusCreated, resp)
}

func (h *Auth) login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "error": "请求参数错误"})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, "auth login", err)
		return
	}
	h.setTokenCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

func (h *Auth) logout(c *gin.Context) {
	// 令牌无状态，登出只需清掉 cookie
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"code": transport.OK})
}

func (h *Auth) me(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": transport.AuthRequired, "error": "未登录"})
		return
	}
	player, err := h.authService.Me(c.Request.Context(), playerID)
	if err != nil {
		h.writeError(c, "auth me", err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (h *Auth) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, true)
}

// writeError 业务拒绝回 400/401，系统错误回 500 并记录溯源日志。
func (h *Auth) writeError(c *gin.Context, action string, err error) {
	ctx := c.Request.Context()
	var e *errx.Error
	if errors.As(err, &e) && e.IsBiz() {
		transport.SetErrorReason(ctx, e.CodeText())
		logx.ReportBizError(ctx, h.log, logx.NewBizLog(action, e.CodeText(), e.Msg()))

		status := http.StatusBadRequest
		code := transport.BizReject
		if errors.Is(err, app.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
			code = transport.AuthRequired
		}
		c.JSON(status, gin.H{"code": code, "error": e.Msg()})
		return
	}
	transport.SetErrorReason(ctx, "system error")
	logx.ReportSysError(ctx, h.log, logx.NewSysLog(action, err))
	c.JSON(http.StatusInternalServerError, gin.H{"code": transport.SystemError, "error": "服务器内部错误"})
}
