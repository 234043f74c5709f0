package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"DawnEmpire/internal/game/app"
	"DawnEmpire/internal/game/app/model"
	"DawnEmpire/internal/shared/transport"
	"DawnEmpire/internal/shared/transport/http/middleware"
	"DawnEmpire/modules/kit/errx"
	"DawnEmpire/modules/kit/logx"
)

// Game 是游戏指令与查询的 HTTP 入口，所有路由都要求已登录。
type Game struct {
	actions *app.ActionService
	state   *app.StateService
	log     logx.Logger
}

func NewGame(actions *app.ActionService, state *app.StateService, log logx.Logger) *Game {
	return &Game{
		actions: actions,
		state:   state,
		log:     log,
	}
}

// RegisterRoutes 挂载游戏路由（调用方负责套 Auth 中间件）。
func (h *Game) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/buildings", h.build)
	rg.GET("/buildings", h.listBuildings)
	rg.POST("/units", h.train)
	rg.GET("/units", h.listUnits)
	rg.PATCH("/units/:unitId/task", h.assignTask)
	rg.GET("/game/state", h.gameState)
}

func (h *Game) build(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": transport.AuthRequired, "error": "未登录"})
		return
	}
	var req model.BuildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "error": "请求参数错误"})
		return
	}

	building, err := h.actions.Build(c.Request.Context(), playerID, req)
	if err != nil {
		h.reportError(c, "game build", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, building)
}

func (h *Game) listBuildings(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": transport.AuthRequired, "error": "未登录"})
		return
	}
	buildings, err := h.state.Buildings(c.Request.Context(), playerID)
	if err != nil {
		h.reportError(c, "game list buildings", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildings)
}

func (h *Game) train(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": transport.AuthRequired, "error": "未登录"})
		return
	}
	var req model.TrainReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "error": "请求参数错误"})
		return
	}

	unit, err := h.actions.Train(c.Request.Context(), playerID, req)
	if err != nil {
		h.reportError(c, "game train", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

func (h *Game) listUnits(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": transport.AuthRequired, "error": "未登录"})
		return
	}
	units, err := h.state.Units(c.Request.Context(), playerID)
	if err != nil {
		h.reportError(c, "game list units", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *Game) assignTask(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": transport.AuthRequired, "error": "未登录"})
		return
	}
	unitID, err := strconv.Atoi(c.Param("unitId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "error": "请求参数错误"})
		return
	}
	var req model.AssignTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "error": "请求参数错误"})
		return
	}

	unit, err := h.actions.AssignTask(c.Request.Context(), playerID, unitID, req)
	if err != nil {
		h.reportError(c, "game assign task", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *Game) gameState(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": transport.AuthRequired, "error": "未登录"})
		return
	}
	state, err := h.state.GameState(c.Request.Context(), playerID)
	if err != nil {
		h.reportError(c, "game state", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// reportError 区分业务拒绝与系统错误写日志：前者 WARN，后者 ERROR 带溯源。
func (h *Game) reportError(c *gin.Context, action string, err error) {
	ctx := c.Request.Context()
	var e *errx.Error
	if errors.As(err, &e) && e.IsBiz() {
		transport.SetErrorReason(ctx, e.CodeText())
		logx.ReportBizError(ctx, h.log, logx.NewBizLog(action, e.CodeText(), e.Msg()))
		return
	}
	transport.SetErrorReason(ctx, "system error")
	logx.ReportSysError(ctx, h.log, logx.NewSysLog(action, err))
}
