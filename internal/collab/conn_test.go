package collab

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// fakeConn is an in-memory Conn. Inbound frames are fed through a channel;
// closing the channel simulates the peer going away.
type fakeConn struct {
	inbound chan []byte

	mu         sync.Mutex
	writes     [][]byte
	closeSent  bool
	closed     bool
	failWrites bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan []byte, 16)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	frame, ok := <-c.inbound
	if !ok {
		return 0, nil, io.EOF
	}
	return websocket.TextMessage, frame, nil
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return errors.New("broken pipe")
	}
	if messageType == websocket.CloseMessage {
		c.closeSent = true
		return nil
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	c.writes = append(c.writes, buf)
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) push(frame string) { c.inbound <- []byte(frame) }

func (c *fakeConn) disconnect() { close(c.inbound) }

func (c *fakeConn) setFailWrites(fail bool) {
	c.mu.Lock()
	c.failWrites = fail
	c.mu.Unlock()
}

func (c *fakeConn) sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.writes))
	for i, w := range c.writes {
		out[i] = string(w)
	}
	return out
}

func (c *fakeConn) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}
