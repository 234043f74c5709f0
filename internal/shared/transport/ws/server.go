package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"DawnEmpire/internal/shared/security"
	"DawnEmpire/modules/kit/logx"
)

// Binder 把鉴权后的连接挂到所属玩家的会话组（由 session.Hub 实现）。
type Binder interface {
	Bind(playerID int, conn WSConn)
}

// Server 处理 /ws 升级请求：先用 token 鉴权，再把连接绑定到玩家分组。
type Server struct {
	router     *Router
	binder     Binder
	needSecret bool
	log        logx.Logger
}

func NewServer(r *Router, binder Binder, needSecret bool, l logx.Logger) *Server {
	return &Server{
		router:     r,
		binder:     binder,
		needSecret: needSecret,
		log:        l,
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("token")
	if token == "" {
		if c, err := req.Cookie("token"); err == nil {
			token = c.Value
		}
	}
	claims, err := security.ParseToken(token)
	if err != nil {
		http.Error(resp, "Invalid or expired token", http.StatusForbidden)
		return
	}

	upgrader := websocket.Upgrader{
		// 浏览器客户端跨域连接
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	wsConn, err := upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	s.log.Info("websocket connected", zap.Int("player_id", claims.PlayerID))

	wsServer := NewWsServer(wsConn, s.needSecret, s.log)
	wsServer.Router(s.router)
	wsServer.SetProperty(ConnKeyPlayerID, claims.PlayerID)
	wsServer.Run()

	if s.binder != nil {
		s.binder.Bind(claims.PlayerID, wsServer)
	}
}
