package core

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// GameLoop drives the server tick at a fixed rate from one goroutine.
type GameLoop struct {
	server   *Server
	tickRate int
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int, logger *zap.Logger) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks until Stop is called. The arena advances by the real time between
// ticks, clamped by the arena itself.
func (g *GameLoop) Run() {
	g.started.Store(true)
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.logger.Info("game loop started", zap.Int("tick_rate", g.tickRate))

	last := time.Now()
	for {
		select {
		case <-g.stopChan:
			g.logger.Info("game loop stopped")
			return
		case now := <-ticker.C:
			g.server.tick(now.Sub(last))
			last = now
		}
	}
}

// Stop ends Run and waits for the current tick to finish. Safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() {
		close(g.stopChan)
	})
	if g.started.Load() {
		<-g.done
	}
}
