package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/messages"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"go.uber.org/zap"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoined
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client manages a WebSocket connection to the combat server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu     sync.RWMutex
	logger *zap.Logger

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	actorID    string
	serverName string
	tickRate   int
	conn       *websocket.Conn

	commands CommandLog

	snapshotCh     chan esync.WorldSnapshot // size-1 buffered; latest wins
	notificationCh chan messages.Notification
}

func NewClient(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		logger:         logger,
		state:          StateDisconnected,
		snapshotCh:     make(chan esync.WorldSnapshot, 1),
		notificationCh: make(chan messages.Notification, 64),
	}
}

// Connect dials the server in a background goroutine and requests an actor
// with the given profile. An empty profile takes the server default.
func (c *Client) Connect(address, playerName, profile string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.logger.Info("connected to server", zap.String("address", address))
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(messages.JoinRequest{PlayerName: playerName, Profile: profile}); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.logger.Info("join accepted",
			zap.Uint("network_id", uint(msg.NetworkID)),
			zap.String("server", msg.ServerName),
			zap.Int("tick_rate", msg.TickRate))
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.actorID = msg.ActorID
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.state = StateJoined
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.logger.Warn("join rejected", zap.String("reason", msg.Reason))
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, n messages.Notification) {
		select {
		case c.notificationCh <- n:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.logger.Info("disconnected", zap.Error(err))
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.logger.Warn("client error", zap.Error(err))
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ActorID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.actorID
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendCommand sends one button edge and records it until the server
// acknowledges its sequence.
func (c *Client) SendCommand(action config.ActionID, pressed bool) error {
	if c.State() != StateJoined {
		return fmt.Errorf("not joined")
	}
	c.mu.Lock()
	input := c.commands.Next(action, pressed)
	c.mu.Unlock()
	return c.SendMessage(input)
}

// Unacknowledged returns the commands the server has not applied yet, given
// the LastSequence replicated for our actor.
func (c *Client) Unacknowledged(lastApplied uint32) []messages.CommandInput {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.commands.Unacknowledged(lastApplied)
}

// AppliedSequence finds our actor in snapshot and returns the last command
// sequence the server applied for it.
func (c *Client) AppliedSequence(snapshot esync.WorldSnapshot) (uint32, bool) {
	myID := c.NetworkID()
	for _, ent := range snapshot {
		if ent.Id != myID {
			continue
		}
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			if actor, ok := instance.(netcomponents.NetActorData); ok {
				return actor.LastSequence, true
			}
		}
	}
	return 0, false
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainNotifications returns all pending combat notifications, non-blocking.
func (c *Client) DrainNotifications() []messages.Notification {
	return drainChan(c.notificationCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
