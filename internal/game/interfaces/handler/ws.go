package handler

import (
	"context"
	"errors"

	"DawnEmpire/internal/game/app"
	"DawnEmpire/internal/shared/transport"
	"DawnEmpire/internal/shared/transport/ws"
	"DawnEmpire/modules/kit/errx"
	"DawnEmpire/modules/kit/logx"
)

// GameWS 处理长连接上的游戏事件。目前只有 join-game：
// 客户端连上后发起加入，服务端回全量快照，之后靠引擎推增量。
type GameWS struct {
	state *app.StateService
	log   logx.Logger
}

func NewGameWS(state *app.StateService, log logx.Logger) *GameWS {
	return &GameWS{
		state: state,
		log:   log,
	}
}

// Register 把游戏事件挂到 ws 路由上。
func (h *GameWS) Register(r *ws.Router) {
	r.Handle(ws.EvtJoinGame, h.joinGame)
}

func (h *GameWS) joinGame(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	playerID, ok := req.Conn.GetProperty(ws.ConnKeyPlayerID).(int)
	if !ok {
		resp.Body.Code = transport.AuthRequired
		resp.Body.Msg = "未登录"
		return
	}

	state, err := h.state.GameState(ctx, playerID)
	if err != nil {
		var e *errx.Error
		if errors.As(err, &e) && e.IsBiz() {
			transport.SetErrorReason(ctx, e.CodeText())
			logx.ReportBizError(ctx, h.log, logx.NewBizLog("ws join-game", e.CodeText(), e.Msg()))
			resp.Body.Code = transport.BizReject
			resp.Body.Msg = e.Msg()
			return
		}
		logx.ReportSysError(ctx, h.log, logx.NewSysLog("ws join-game", err))
		resp.Body.Code = transport.SystemError
		resp.Body.Msg = "服务器内部错误"
		return
	}

	// 应答直接作为首个 game-state-update 下发
	resp.Body.Name = ws.EvtGameStateUpdate
	resp.Body.Code = transport.OK
	resp.Body.Msg = state
}
