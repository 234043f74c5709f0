package ws

import (
	"context"

	"DawnEmpire/internal/shared/transport"
	"DawnEmpire/modules/kit/logx"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Router 按事件名分发客户端消息（join-game 等）。
type Router struct {
	handlers map[string]HandlerFunc
	log      logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	return &Router{
		handlers: make(map[string]HandlerFunc),
		log:      l,
	}
}

func (r *Router) Handle(name string, h HandlerFunc) {
	r.handlers[name] = h
}

func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	ctx := r.prepareDispatchContext(req, resp)
	defer r.writeAccessLog(ctx, resp)

	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		r.setErrorResponse(resp, transport.InvalidParam, "参数有误")
		return
	}

	handlerFunc := r.handlers[req.Body.Name]
	if handlerFunc == nil {
		r.setErrorResponse(resp, transport.InvalidParam, "未知事件")
		return
	}

	handlerFunc(ctx, req, resp)
}

func (r *Router) prepareDispatchContext(req *WsMsgReq, resp *WsMsgResp) context.Context {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContext(action)

	if resp != nil && resp.Body != nil {
		// 先置系统错误，避免 handler 漏设时出现“成功假象”。
		resp.Body.Code = transport.SystemError
		resp.Body.Msg = nil
	}
	return ctx
}

func (r *Router) setErrorResponse(resp *WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	bizCode := transport.SystemError
	if resp != nil && resp.Body != nil {
		bizCode = resp.Body.Code
	}
	transport.SetBizCode(ctx, transport.BizCode(bizCode))
	transport.WriteAccessLog(ctx, r.log)
}
