package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"DawnEmpire/internal/shared/security"
	"DawnEmpire/internal/shared/utils"
	"DawnEmpire/modules/kit/logx"
)

// WsServer 包装一条 websocket 连接：读循环分发、写循环串行发送。
type WsServer struct {
	conn       *websocket.Conn
	router     *Router
	outChan    chan *WsMsgResp
	property   map[string]any
	needSecret bool
	connID     string
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, needSecret bool, l logx.Logger) *WsServer {
	return &WsServer{
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, 256),
		property:   make(map[string]any),
		needSecret: needSecret,
		connID:     uuid.NewString(),
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 非阻塞投递：出站缓冲满时丢弃，慢客户端不能拖慢引擎扫描。
func (s *WsServer) Push(name string, data any) {
	rsp := &WsMsgResp{
		Body: &RespBody{
			Seq:  0,
			Name: name,
			Msg:  data,
		},
	}
	select {
	case s.outChan <- rsp:
	case <-s.done:
	default:
		s.log.Warn("ws push dropped, out channel full",
			zap.String("conn_id", s.connID),
			zap.String("event", name),
		)
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
	if s.needSecret {
		s.handshake()
	}
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.Debug("ws read msg end", zap.String("conn_id", s.connID), zap.Error(err))
			return
		}

		raw, ok := s.decodeFrame(data)
		if !ok {
			continue
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(raw, &reqBody); err != nil {
			s.log.Error("ws unmarshal json error", zap.Error(err))
			continue
		}

		// req 和 resp 的 Seq 必须一致
		req := WsMsgReq{Body: &reqBody, Conn: s}
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
			resp.Body.Code = 0
		} else {
			s.router.Dispatch(&req, &resp)
		}

		s.pushResp(&resp)
	}
}

func (s *WsServer) pushResp(resp *WsMsgResp) {
	select {
	case s.outChan <- resp:
	case <-s.done:
	default:
		s.log.Warn("ws response dropped, out channel full", zap.String("conn_id", s.connID))
	}
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg, ok := <-s.outChan:
			if ok {
				s.write(msg)
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	marshal, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws write marshal json error", zap.Error(err))
		return
	}

	if !s.needSecret {
		if err := s.conn.WriteMessage(websocket.TextMessage, marshal); err != nil {
			s.log.Error("ws write error", zap.Error(err))
		}
		return
	}

	secretKey := s.GetProperty(SecretKey)
	if secretKey == nil {
		s.log.Error("ws write before handshake", zap.Any("msg", msg))
		return
	}
	key := secretKey.(string)
	encrypted, err := security.AesCBCEncrypt(marshal, []byte(key), []byte(key))
	if err != nil {
		s.log.Error("ws write encrypt error", zap.Error(err))
		return
	}
	zipped, err := security.Zip(encrypted)
	if err != nil {
		s.log.Error("ws write zip error", zap.Error(err))
		return
	}

	// 密文是二进制字节流，必须走 BinaryMessage。
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipped); err != nil {
		s.log.Error("ws write error", zap.Error(err))
	}
}

// decodeFrame 还原一帧客户端数据：secret 模式下为 zlib+AES 密文，否则为明文 JSON。
func (s *WsServer) decodeFrame(data []byte) ([]byte, bool) {
	if !s.needSecret {
		return data, true
	}

	unzipped, err := security.UnZip(data)
	if err != nil {
		s.log.Error("ws unzip error", zap.Error(err))
		return nil, false
	}
	secretKey := s.GetProperty(SecretKey)
	if secretKey == nil {
		s.log.Error("ws frame before handshake", zap.String("conn_id", s.connID))
		return nil, false
	}
	key := secretKey.(string)
	decrypted, err := security.AesCBCDecrypt(unzipped, []byte(key), []byte(key))
	if err != nil {
		s.log.Error("ws decrypt error", zap.Error(err))
		// 出错后重新握手，让客户端换密钥重试。
		s.handshake()
		return nil, false
	}
	return decrypted, true
}

func (s *WsServer) handshake() {
	secretKey := ""
	if key := s.GetProperty(SecretKey); key != nil {
		secretKey = key.(string)
	} else {
		secretKey = utils.RandSeq(16)
	}

	body := &RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: secretKey}}
	data, err := json.Marshal(body)
	if err != nil {
		s.log.Error("ws handshake marshal json error", zap.Error(err))
		return
	}
	s.SetProperty(SecretKey, secretKey)

	// 握手帧只压缩不加密：客户端此刻还没有密钥。
	zipped, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws handshake zip error", zap.Error(err))
		return
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipped); err != nil {
		s.log.Error("ws handshake write error", zap.Error(err))
	}
}
