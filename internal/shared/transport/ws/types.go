package ws

// ReqBody 是客户端消息：name 即事件名（例如 join-game）。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// RespBody 是服务端消息：推送时 seq 为 0。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 是一条已升级的长连接。Push 是非阻塞投递：
// 出站缓冲满（慢客户端）时消息被丢弃，绝不拖慢调用方。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	Push(name string, data any)
	Close()
	// Done 用于感知连接生命周期结束（连接关闭时该 channel 会被关闭）。
	Done() <-chan struct{}
}

type Handshake struct {
	Key string `json:"key"`
}

type Heartbeat struct {
	CTime int64 `json:"ctime"`
	STime int64 `json:"stime"`
}

const (
	HandshakeMsg = "handshake"
	HeartbeatMsg = "heartbeat"

	SecretKey       = "secretKey"
	ConnKeyPlayerID = "playerID"
)

// 客户端事件。
const (
	EvtJoinGame = "join-game"
)

// 服务端事件。
const (
	EvtGameStateUpdate   = "game-state-update"
	EvtResourceUpdate    = "resource-update"
	EvtBuildingCompleted = "building-completed"
	EvtUnitCompleted     = "unit-completed"
	EvtUnitTaskUpdated   = "unit-task-updated"
	EvtError             = "error"
)
