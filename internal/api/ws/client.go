package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 1 << 16
	sendQueueSize  = 64
)

// Client wraps one WebSocket connection with a buffered send queue drained
// by a single write pump, so broadcasts never block on a slow socket.
type Client struct {
	ID      string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

func newClient(id string, conn *websocket.Conn) *Client {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &Client{
		ID:      id,
		conn:    conn,
		send:    make(chan []byte, sendQueueSize),
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// enqueue queues a frame for the write pump. A full queue drops the frame;
// the next snapshot supersedes it anyway.
func (c *Client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *Client) close() {
	close(c.send)
}
