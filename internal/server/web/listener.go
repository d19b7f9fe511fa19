package web

import (
	"net"
	"sync"

	"httpshare/internal/server/stats"
)

// trackedListener wraps a net.Listener so every accepted connection is
// registered with the stats set and has its bytes counted.
type trackedListener struct {
	net.Listener
	set *stats.Set
}

func newTrackedListener(ln net.Listener, set *stats.Set) net.Listener {
	return &trackedListener{Listener: ln, set: set}
}

func (l *trackedListener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}

	track := l.set.Register(c.RemoteAddr().String())
	return &trackedConn{Conn: c, set: l.set, track: track}, nil
}

// trackedConn counts bytes in both directions and unregisters itself from
// the stats set on close.
type trackedConn struct {
	net.Conn
	set   *stats.Set
	track *stats.Connection
	once  sync.Once
}

func (c *trackedConn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	if n > 0 {
		c.track.AddReceived(n)
	}
	return n, err
}

func (c *trackedConn) Write(p []byte) (int, error) {
	n, err := c.Conn.Write(p)
	if n > 0 {
		c.track.AddSent(n)
	}
	return n, err
}

func (c *trackedConn) Close() error {
	c.once.Do(func() { c.set.Unregister(c.track) })
	return c.Conn.Close()
}
