package collab

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// Time allowed to write a message to the peer.
const writeWait = 10 * time.Second

var errClientClosed = errors.New("collab: client closed")

// Conn is the duplex transport handle the hub operates on. *websocket.Conn
// satisfies it; tests plug in fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client pairs one connection with the display name it joined under. Writes
// are serialized through a mutex because broadcasts send from many goroutines
// while the read loop may be closing the connection.
type Client struct {
	conn     Conn
	userName string

	mu     sync.Mutex
	closed bool
}

func NewClient(conn Conn, userName string) *Client {
	return &Client{conn: conn, userName: userName}
}

func (c *Client) UserName() string { return c.userName }

// Send writes one text frame. It fails once the client has been closed, so a
// broadcast racing a teardown cannot write to a dead connection.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClientClosed
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Close performs a best-effort close handshake and releases the transport.
// Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
	_ = c.conn.Close()
}
