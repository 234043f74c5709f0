package session

import (
	"sync"

	"DawnEmpire/internal/shared/transport/ws"
)

// Manager 按玩家分组管理长连接：引擎/校验器的每次推送都只命中
// 该玩家的会话组。一个玩家可以同时开多个标签页，所以是一对多。
type Manager interface {
	Bind(playerID int, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	Push(playerID int, name string, data any)
	ConnCount(playerID int) int
}

type Hub struct {
	sync.RWMutex
	player2conns map[int]map[ws.WSConn]struct{}
	conn2player  map[ws.WSConn]int
	watched      map[ws.WSConn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		player2conns: make(map[int]map[ws.WSConn]struct{}),
		conn2player:  make(map[ws.WSConn]int),
		watched:      make(map[ws.WSConn]struct{}),
	}
}

func (h *Hub) Bind(playerID int, conn ws.WSConn) {
	if conn == nil {
		return
	}
	h.Lock()
	defer h.Unlock()

	// 为每条连接只启动一次 watcher：连接关闭后自动解绑，避免映射膨胀
	if _, ok := h.watched[conn]; !ok {
		h.watched[conn] = struct{}{}
		go h.watchConnDone(conn)
	}

	conns := h.player2conns[playerID]
	if conns == nil {
		conns = make(map[ws.WSConn]struct{})
		h.player2conns[playerID] = conns
	}
	conns[conn] = struct{}{}
	h.conn2player[conn] = playerID
}

func (h *Hub) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	h.UnbindConn(conn)
}

func (h *Hub) UnbindConn(conn ws.WSConn) {
	h.Lock()
	defer h.Unlock()

	playerID, ok := h.conn2player[conn]
	delete(h.watched, conn)
	delete(h.conn2player, conn)
	if !ok {
		return
	}
	if conns := h.player2conns[playerID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.player2conns, playerID)
		}
	}
}

// Push 把事件投递到玩家的所有在线连接。底层 conn.Push 非阻塞，
// 慢客户端只会丢自己的消息，不会拖慢调用方（引擎扫描）。
func (h *Hub) Push(playerID int, name string, data any) {
	h.RLock()
	conns := make([]ws.WSConn, 0, len(h.player2conns[playerID]))
	for conn := range h.player2conns[playerID] {
		conns = append(conns, conn)
	}
	h.RUnlock()

	for _, conn := range conns {
		conn.Push(name, data)
	}
}

func (h *Hub) ConnCount(playerID int) int {
	h.RLock()
	defer h.RUnlock()
	return len(h.player2conns[playerID])
}
