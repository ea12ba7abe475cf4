package view

import (
	"context"
	"log/slog"
	"rgb-controller/internal/ports"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 20
	sendBuffer = 256

	// Requests per second accepted from one view.
	requestRate  = 50
	requestBurst = 100
)

// client is one websocket connection to the view.
type client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newClient(h *Hub, conn *websocket.Conn) *client {
	id := uuid.New().String()
	return &client{
		id:      id,
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(requestRate), requestBurst),
		logger:  h.logger.With("client", id),
	}
}

// readPump hands every inbound request to dispatcher until the connection
// closes.
func (c *client) readPump(ctx context.Context, dispatcher ports.Dispatcher) {
	defer func() {
		c.hub.detach(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			return
		}
		req, err := DecodeRequest(message)
		if err != nil {
			c.logger.Warn("invalid request frame", "error", err)
			continue
		}
		if !c.limiter.Allow() {
			c.logger.Warn("request rate exceeded, dropping request", "request", req.Request)
			continue
		}
		dispatcher.Dispatch(ctx, req.Request, req.Data)
	}
}

func (c *client) writePump() {
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

// queue enqueues an encoded frame. Frames for a client that stopped reading
// are dropped.
func (c *client) queue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping frame")
	}
}
