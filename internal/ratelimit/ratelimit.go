// Package ratelimit provides the per-client request quota for the contact
// endpoint. State lives in process memory and resets on restart.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits or rejects a request for the given client key.
type Limiter interface {
	Allow(key string) bool
}

// entry tracks one client's request count inside the current window.
type entry struct {
	count       int
	windowStart time.Time
}

// Memory is a fixed-window Limiter backed by a mutex-guarded map.
type Memory struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string]*entry
	now     func() time.Time
}

// NewMemory creates a Memory limiter admitting up to max requests per key
// within each window.
func NewMemory(max int, window time.Duration) *Memory {
	return &Memory{
		max:     max,
		window:  window,
		clients: make(map[string]*entry),
		now:     time.Now,
	}
}

var _ Limiter = (*Memory)(nil)

// Allow counts a request for key and reports whether it is within quota.
// The window resets once more than the window duration has elapsed since
// its start.
func (m *Memory) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.clients[key]
	if !ok {
		m.clients[key] = &entry{count: 1, windowStart: now}
		return true
	}

	if now.Sub(e.windowStart) > m.window {
		e.count = 0
		e.windowStart = now
	}

	e.count++
	return e.count <= m.max
}

// Sweep drops entries whose window expired more than the given age ago.
// Call periodically to keep the map from growing without bound.
func (m *Memory) Sweep(age time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, e := range m.clients {
		if now.Sub(e.windowStart) > m.window+age {
			delete(m.clients, key)
		}
	}
}
