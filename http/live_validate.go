package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"insurecast/quote"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// liveMessage 实时校验结果
type liveMessage struct {
	Type     string          `json:"type"`
	BMI      *float64        `json:"bmi,omitempty"`
	Warnings []quote.Warning `json:"warnings"`
	Error    string          `json:"error,omitempty"`
}

// liveClient 单个实时校验连接
type liveClient struct {
	conn   *websocket.Conn
	send   chan []byte
	id     string
	logger *zap.Logger
}

// handleLiveValidate 处理实时校验 WebSocket 连接
func (h *Handlers) handleLiveValidate(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &liveClient{
		conn:   conn,
		send:   make(chan []byte, 16),
		id:     GetRequestID(r.Context()),
		logger: h.logger,
	}
	h.logger.Debug("live validation connected", zap.String("client", client.id))

	go client.writePump()
	client.readPump(h.quoter)
}

// readPump 读取表单快照并回复校验结果
func (c *liveClient) readPump(quoter *quote.Quoter) {
	defer func() {
		close(c.send)
		c.logger.Debug("live validation disconnected", zap.String("client", c.id))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		reply := liveMessage{Type: "validation", Warnings: []quote.Warning{}}
		var req QuoteRequest
		if err := json.Unmarshal(data, &req); err != nil {
			reply = liveMessage{Type: "error", Warnings: []quote.Warning{}, Error: "invalid message"}
		} else {
			check := quoter.Check(req.Form())
			reply.BMI = check.BMI
			if len(check.Warnings) > 0 {
				reply.Warnings = check.Warnings
			}
		}

		payload, err := json.Marshal(reply)
		if err != nil {
			c.logger.Error("marshal live validation", zap.Error(err))
			continue
		}
		select {
		case c.send <- payload:
		default:
			c.logger.Warn("live validation queue full, dropping reply", zap.String("client", c.id))
		}
	}
}

// writePump WebSocket写入泵
func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn("websocket write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
