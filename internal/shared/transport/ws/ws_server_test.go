package ws

import (
	"testing"

	"go.uber.org/zap"

	"DawnEmpire/modules/kit/logx"
)

func newTestWsServer(outCap int) *WsServer {
	return &WsServer{
		outChan:  make(chan *WsMsgResp, outCap),
		property: make(map[string]any),
		connID:   "test-conn",
		done:     make(chan struct{}),
		log:      logx.NewZapLogger(zap.NewNop()),
	}
}

func TestPush_出站缓冲满时丢弃不阻塞(t *testing.T) {
	s := newTestWsServer(1)

	s.Push(EvtResourceUpdate, map[string]int{"food": 1})
	// 缓冲已满，这一条应当被丢弃而不是卡住调用方
	s.Push(EvtResourceUpdate, map[string]int{"food": 2})

	if got := len(s.outChan); got != 1 {
		t.Fatalf("期望缓冲里只有第一条消息, got=%d", got)
	}
	msg := <-s.outChan
	if msg.Body.Name != EvtResourceUpdate {
		t.Fatalf("期望保留的是先入队的事件, got=%+v", msg.Body)
	}
	if body, ok := msg.Body.Msg.(map[string]int); !ok || body["food"] != 1 {
		t.Fatalf("期望后到的消息被丢弃, got=%+v", msg.Body.Msg)
	}
}

func TestPush_连接已关闭时静默丢弃(t *testing.T) {
	s := newTestWsServer(0)
	close(s.done)

	// done 已关闭且缓冲为零，Push 不应阻塞
	s.Push(EvtResourceUpdate, nil)

	if got := len(s.outChan); got != 0 {
		t.Fatalf("期望关闭后不再入队, got=%d", got)
	}
}
