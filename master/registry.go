// Package master is the server browser: combat servers register and
// heartbeat here, clients list them.
package master

import (
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ServerInfo describes a combat server visible to clients.
type ServerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Actors     int    `json:"actors"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

type serverRecord struct {
	ServerInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active servers with TTL-based expiry.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*serverRecord
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRegistry starts a registry that forgets servers silent for ttl.
func NewRegistry(ttl time.Duration, logger *zap.Logger) *Registry {
	r := newRegistry(ttl, logger, time.Now)
	go r.cleanupLoop()
	return r
}

func newRegistry(ttl time.Duration, logger *zap.Logger, now func() time.Time) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		servers: make(map[string]*serverRecord),
		ttl:     ttl,
		now:     now,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *Registry) Register(info ServerInfo) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	id := fmt.Sprintf("%x", b)

	info.ID = id

	r.mu.Lock()
	r.servers[id] = &serverRecord{
		ServerInfo: info,
		LastSeen:   r.now(),
	}
	r.mu.Unlock()

	return id
}

// Heartbeat refreshes a server's counts. It returns false for unknown ids so
// the server knows to register again.
func (r *Registry) Heartbeat(id string, players, actors int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.servers[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = players
	rec.Actors = actors
	return true
}

// List returns the live servers sorted by name. An empty region lists all.
func (r *Registry) List(region string) []ServerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ServerInfo, 0, len(r.servers))
	for _, rec := range r.servers {
		if region != "" && rec.Region != region {
			continue
		}
		result = append(result, rec.ServerInfo)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// expire drops every server not seen within the TTL.
func (r *Registry) expire() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, rec := range r.servers {
		if now.Sub(rec.LastSeen) >= r.ttl {
			r.logger.Info("expired server",
				zap.String("name", rec.Name),
				zap.String("id", id),
				zap.Duration("silent", now.Sub(rec.LastSeen).Round(time.Second)))
			delete(r.servers, id)
		}
	}
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.expire()
		}
	}
}
