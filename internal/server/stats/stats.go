// Package stats tracks per-connection transfer accounting for the live
// monitor: bytes moved in each direction, the last requested URI, and an
// estimated transfer speed smoothed over the last three refresh ticks.
package stats

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// speedSamples is the size of the moving-average window.
const speedSamples = 3

// SpeedMeasurement keeps a small ring of speed samples and averages them.
type SpeedMeasurement struct {
	speeds [speedSamples]float64
	ind    int
}

// Update records one speed sample in bytes per second.
func (m *SpeedMeasurement) Update(speed float64) {
	m.speeds[m.ind] = speed
	m.ind = (m.ind + 1) % speedSamples
}

// Avg returns the mean over the window.
func (m *SpeedMeasurement) Avg() float64 {
	var total float64
	for _, s := range m.speeds {
		total += s
	}
	return total / speedSamples
}

// Connection accounts for a single accepted TCP connection. Byte counters
// are updated from the connection's Read/Write path and therefore atomic;
// everything else is touched only under the owning Set's lock or from the
// single serving goroutine.
type Connection struct {
	addr string

	sent     atomic.Int64
	received atomic.Int64

	requested atomic.Int64

	mu      sync.Mutex
	lastURI string

	prevMoved int64
	prevTime  time.Time
	speed     SpeedMeasurement
}

// AddSent counts bytes written to the peer.
func (c *Connection) AddSent(n int) { c.sent.Add(int64(n)) }

// AddReceived counts bytes read from the peer.
func (c *Connection) AddReceived(n int) { c.received.Add(int64(n)) }

// AddRequested grows the expected total for the current exchange (response
// size for downloads, Content-Length for uploads).
func (c *Connection) AddRequested(n int64) {
	if n > 0 {
		c.requested.Add(n)
	}
}

// SetLastURI records the most recent request target.
func (c *Connection) SetLastURI(uri string) {
	c.mu.Lock()
	c.lastURI = uri
	c.mu.Unlock()
}

// estimatedSpeed computes the instantaneous speed since the previous call
// and folds it into the moving average.
func (c *Connection) estimatedSpeed(now time.Time) float64 {
	moved := c.sent.Load() + c.received.Load()

	elapsed := now.Sub(c.prevTime)
	if elapsed > 0 {
		c.speed.Update(float64(moved-c.prevMoved) / elapsed.Seconds())
	}
	c.prevMoved = moved
	c.prevTime = now

	return c.speed.Avg()
}

// Snapshot is an immutable view of one connection for rendering.
type Snapshot struct {
	Addr      string
	LastURI   string
	Sent      int64
	Received  int64
	Requested int64
	// Percent is progress toward Requested, 0 when nothing was requested.
	Percent int
	// Speed is the smoothed transfer rate in bytes per second.
	Speed float64
}

// Set is the live collection of tracked connections.
type Set struct {
	mu    sync.Mutex
	conns map[*Connection]struct{}
}

func NewSet() *Set {
	return &Set{conns: make(map[*Connection]struct{})}
}

// Register starts tracking a connection from addr.
func (s *Set) Register(addr string) *Connection {
	c := &Connection{addr: addr, lastURI: "[reading...]", prevTime: time.Now()}

	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()

	return c
}

// Unregister stops tracking c. Safe to call more than once.
func (s *Set) Unregister(c *Connection) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// Len returns the number of live connections.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Snapshot captures every live connection, updating speed estimates as a
// side effect. Rows come back sorted by peer address for stable rendering.
func (s *Set) Snapshot() []Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Snapshot, 0, len(s.conns))
	for c := range s.conns {
		c.mu.Lock()
		uri := c.lastURI
		c.mu.Unlock()

		sent := c.sent.Load()
		received := c.received.Load()
		requested := c.requested.Load()

		percent := 0
		if requested > 0 {
			moved := sent
			if received > moved {
				moved = received
			}
			percent = int(100 * moved / requested)
			if percent > 100 {
				percent = 100
			}
		}

		result = append(result, Snapshot{
			Addr:      c.addr,
			LastURI:   uri,
			Sent:      sent,
			Received:  received,
			Requested: requested,
			Percent:   percent,
			Speed:     c.estimatedSpeed(now),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Addr < result[j].Addr })
	return result
}
