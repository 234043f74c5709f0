package session

import (
	"testing"
	"time"
)

type fakeConn struct {
	pushed []string
	done   chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{done: make(chan struct{})}
}

func (c *fakeConn) SetProperty(key string, value any) {}
func (c *fakeConn) GetProperty(key string) any        { return nil }
func (c *fakeConn) RemoveProperty(key string)         {}
func (c *fakeConn) Addr() string                      { return "fake" }
func (c *fakeConn) Push(name string, data any)        { c.pushed = append(c.pushed, name) }
func (c *fakeConn) Close()                            { close(c.done) }
func (c *fakeConn) Done() <-chan struct{}             { return c.done }

func TestPush_只命中目标玩家的全部连接(t *testing.T) {
	hub := NewHub()
	c1 := newFakeConn()
	c2 := newFakeConn()
	other := newFakeConn()
	hub.Bind(1, c1)
	hub.Bind(1, c2)
	hub.Bind(2, other)

	hub.Push(1, "resource-update", nil)

	if len(c1.pushed) != 1 || len(c2.pushed) != 1 {
		t.Fatalf("期望玩家1的两条连接各收到一次, got=%d/%d", len(c1.pushed), len(c2.pushed))
	}
	if len(other.pushed) != 0 {
		t.Fatalf("玩家2不应收到推送, got=%d", len(other.pushed))
	}
}

func TestBind_连接关闭后自动解绑(t *testing.T) {
	hub := NewHub()
	conn := newFakeConn()
	hub.Bind(1, conn)

	conn.Close()

	// watcher 是异步的，轮询等待解绑完成。
	deadline := time.Now().Add(time.Second)
	for hub.ConnCount(1) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("期望连接关闭后被解绑")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPush_无连接时为空操作(t *testing.T) {
	hub := NewHub()
	hub.Push(42, "unit-completed", nil)
}
