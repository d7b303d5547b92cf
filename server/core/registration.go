package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/doomerang-combat/config"
	"go.uber.org/zap"
)

// Version is reported to the server browser.
const Version = "0.1.0"

// Registration handles registering and heartbeating with the master server.
type Registration struct {
	settings config.ServerSettings
	status   StatusProvider
	logger   *zap.Logger
	client   *http.Client

	mu       sync.Mutex
	serverID string

	stopCh   chan struct{}
	stopOnce sync.Once
}

type regRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

type regResponse struct {
	ID string `json:"id"`
}

type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Actors  int    `json:"actors"`
}

func NewRegistration(settings config.ServerSettings, status StatusProvider, logger *zap.Logger) *Registration {
	return &Registration{
		settings: settings,
		status:   status,
		logger:   logger,
		client:   &http.Client{Timeout: 5 * time.Second},
		stopCh:   make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		r.logger.Warn("initial registration failed", zap.Error(err))
	}
	go r.heartbeatLoop()
}

func (r *Registration) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// ServerID returns the id handed out by the master, empty until registered.
func (r *Registration) ServerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.serverID
}

func (r *Registration) register() error {
	st := r.status.Status()
	body, err := json.Marshal(regRequest{
		Name:       r.settings.Name,
		Address:    r.settings.AdvertiseAddr,
		Players:    st.Players,
		MaxPlayers: r.settings.MaxPlayers,
		Version:    Version,
		Region:     r.settings.Region,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.settings.MasterURL+"/servers/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result regResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r.mu.Lock()
	r.serverID = result.ID
	r.mu.Unlock()
	r.logger.Info("registered with master", zap.String("id", result.ID))
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(r.settings.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(); err != nil {
				r.logger.Warn("heartbeat failed", zap.Error(err))
			}
		}
	}
}

func (r *Registration) sendHeartbeat() error {
	st := r.status.Status()
	body, err := json.Marshal(heartbeatRequest{
		ID:      r.ServerID(),
		Players: st.Players,
		Actors:  st.Actors,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.settings.MasterURL+"/servers/heartbeat", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		r.logger.Info("master lost our registration, re-registering")
		return r.register()
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
