package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/scenes"
	"github.com/automoto/doomerang-combat/shared/messages"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

const (
	playerTeam = 0
	enemyTeam  = 1
)

// Server runs one arena and replicates it to websocket clients.
type Server struct {
	cfg        config.Config
	logger     *zap.Logger
	arena      *scenes.Arena
	loop       *GameLoop
	limiter    *CommandLimiter
	difficulty config.BotDifficulty

	transport    *transports.WsServerTransport
	httpServer   *http.Server
	registration *Registration

	// worldMu guards the arena world between the game loop and network callbacks.
	worldMu sync.Mutex
	outbox  []messages.Notification // filled during a tick, game loop only

	// Track which network client owns which actor
	sessions map[*router.NetworkClient]*session
	mu       sync.RWMutex

	status atomic.Pointer[Status]
}

type session struct {
	id      string
	entity  donburi.Entity
	joined  bool
	lastSeq atomic.Uint32
}

// NewServer creates the arena, spawns the configured AI actors and hooks up
// the network router.
func NewServer(cfg config.Config, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	difficulty, _ := config.ParseBotDifficulty(cfg.Arena.BotDifficulty)

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		arena:      scenes.NewArena(logger.Named("arena")),
		difficulty: difficulty,
		sessions:   make(map[*router.NetworkClient]*session),
		limiter: NewCommandLimiter(RateLimitConfig{
			CommandsPerSecond: cfg.Server.MaxCommandsPerSecond,
			Burst:             cfg.Server.CommandBurst,
			CleanupInterval:   5 * time.Minute,
		}),
	}
	s.loop = NewGameLoop(s, cfg.Server.TickRate, logger)
	s.status.Store(&Status{Name: cfg.Server.Name, MaxPlayers: cfg.Server.MaxPlayers})

	// Set up the world for esync
	srvsync.UseEsync(s.arena.World())
	s.arena.Subscribe(s.onNotification)

	for i, name := range cfg.Arena.Enemies {
		if _, ok := config.Profiles[name]; !ok {
			return nil, fmt.Errorf("arena.enemies[%d]: unknown profile %q", i, name)
		}
		if _, err := s.spawn(config.Profiles[name], enemySpawnX(i), factory.ActorOptions{
			Team:   enemyTeam,
			Role:   factory.RoleEnemy,
			FaceX:  -1,
			Bot:    systems.NewRangeBot(difficulty),
			BotDif: difficulty,
		}); err != nil {
			return nil, err
		}
	}

	s.setupRouterCallbacks()
	return s, nil
}

// Start runs the game loop, the metrics endpoint and the websocket transport.
// It blocks until the transport stops.
func (s *Server) Start() error {
	go s.loop.Run()

	s.httpServer = &http.Server{
		Addr:              s.cfg.Server.MetricsAddr,
		Handler:           NewRouter(s),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics endpoint failed", zap.Error(err))
		}
	}()

	if s.cfg.Server.MasterURL != "" {
		s.registration = NewRegistration(s.cfg.Server, s, s.logger.Named("registration"))
		s.registration.Start()
	}

	s.logger.Info("server listening",
		zap.String("name", s.cfg.Server.Name),
		zap.Int("port", s.cfg.Server.Port),
		zap.String("metrics", s.cfg.Server.MetricsAddr))
	s.transport = transports.NewWsServerTransport(uint(s.cfg.Server.Port), "", nil)
	if err := s.transport.Start(); err != nil {
		return fmt.Errorf("websocket transport: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.loop.Stop()
	s.limiter.Stop()
	if s.registration != nil {
		s.registration.Stop()
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down metrics endpoint: %w", err)
		}
	}
	return nil
}

// Arena exposes the simulated arena.
func (s *Server) Arena() *scenes.Arena {
	return s.arena
}

// Status returns the latest tick summary.
func (s *Server) Status() Status {
	st := *s.status.Load()
	st.Players = s.PlayerCount()
	return st
}

// PlayerCount returns the number of joined players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.joined {
			n++
		}
	}
	return n
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.onConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoin(client, req)
	})

	router.On(func(client *router.NetworkClient, input messages.CommandInput) {
		s.onCommand(client, input)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.logger.Warn("client error", zap.Error(err))
	})
}

func (s *Server) onConnect(client *router.NetworkClient) {
	s.mu.Lock()
	s.sessions[client] = &session{id: client.Id()}
	s.mu.Unlock()
	clientCount.Inc()
	s.logger.Info("client connected", zap.String("client", client.Id()))
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	s.mu.Lock()
	sess, exists := s.sessions[client]
	delete(s.sessions, client)
	var joined bool
	var entity donburi.Entity
	if exists {
		joined, entity = sess.joined, sess.entity
	}
	s.mu.Unlock()
	if !exists {
		return
	}
	clientCount.Dec()
	s.limiter.Forget(sess.id)
	s.logger.Info("client disconnected", zap.String("client", sess.id), zap.Error(err))

	if joined {
		s.worldMu.Lock()
		s.arena.Remove(entity)
		s.worldMu.Unlock()
	}
}

func (s *Server) onJoin(client *router.NetworkClient, req messages.JoinRequest) {
	s.mu.RLock()
	sess, ok := s.sessions[client]
	joined := ok && sess.joined
	s.mu.RUnlock()
	if !ok || joined {
		return
	}
	if s.PlayerCount() >= s.cfg.Server.MaxPlayers {
		s.send(client, messages.JoinRejected{Reason: "server full"})
		return
	}

	name := s.cfg.Arena.PlayerProfile
	if req.Profile != "" {
		if _, known := config.Profiles[req.Profile]; !known {
			s.send(client, messages.JoinRejected{Reason: fmt.Sprintf("unknown profile %q", req.Profile)})
			return
		}
		name = req.Profile
	}

	e, err := s.spawn(config.Profile(name), playerSpawnX(s.PlayerCount()), factory.ActorOptions{
		Name: req.PlayerName,
		Team: playerTeam,
		Role: factory.RolePlayer,
	})
	if err != nil {
		s.logger.Error("spawning player failed", zap.String("client", sess.id), zap.Error(err))
		s.send(client, messages.JoinRejected{Reason: "spawn failed"})
		return
	}

	s.worldMu.Lock()
	netID := esync.GetNetworkId(e)
	actorID := components.Actor.Get(e).ID
	entity := e.Entity()
	s.worldMu.Unlock()

	s.mu.Lock()
	sess.entity = entity
	sess.joined = true
	s.mu.Unlock()

	accepted := messages.JoinAccepted{
		ActorID:    actorID,
		ServerName: s.cfg.Server.Name,
		TickRate:   s.cfg.Server.TickRate,
	}
	if netID != nil {
		accepted.NetworkID = *netID
	}
	s.send(client, accepted)
	s.logger.Info("player joined", zap.String("client", sess.id), zap.String("profile", name))
}

func (s *Server) onCommand(client *router.NetworkClient, input messages.CommandInput) {
	s.mu.RLock()
	sess, ok := s.sessions[client]
	var joined bool
	var entity donburi.Entity
	if ok {
		joined, entity = sess.joined, sess.entity
	}
	s.mu.RUnlock()

	switch {
	case !joined:
		commandsRejected.WithLabelValues(rejectNotJoined).Inc()
		return
	case input.Action <= config.ActionNone || input.Action >= config.ActionCount:
		commandsRejected.WithLabelValues(rejectInvalid).Inc()
		return
	case !s.limiter.Allow(sess.id):
		commandsRejected.WithLabelValues(rejectRateLimit).Inc()
		return
	}

	commandsAccepted.Inc()
	sess.lastSeq.Store(input.Sequence)
	s.arena.Submit(entity, components.Command{Action: input.Action, Pressed: input.Pressed})
}

// spawn places an actor with replication components and marks it for sync.
func (s *Server) spawn(profile config.ActorProfile, x float64, opts factory.ActorOptions) (*donburi.Entry, error) {
	opts.Extra = append(opts.Extra, netcomponents.NetPosition, netcomponents.NetVelocity, netcomponents.NetActor)

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	e := s.arena.Spawn(profile, x, config.Arena.FloorY-profile.CollisionHeight, opts)
	entity := e.Entity()
	err := srvsync.NetworkSync(s.arena.World(), &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetActor,
	)
	if err != nil {
		s.arena.Remove(entity)
		return nil, fmt.Errorf("network sync for %s: %w", profile.Name, err)
	}
	syncActor(e)
	return e, nil
}

// tick advances the arena and replicates the result. Runs on the game loop goroutine.
func (s *Server) tick(dt time.Duration) {
	start := time.Now()

	s.worldMu.Lock()
	s.arena.Update(dt)
	s.syncNetComponents()
	if err := srvsync.DoSync(); err != nil {
		s.logger.Warn("sync error", zap.Error(err))
	}
	actors := len(s.arena.Actors())
	st := &Status{
		Name:        s.cfg.Server.Name,
		MaxPlayers:  s.cfg.Server.MaxPlayers,
		Actors:      actors,
		Tick:        s.arena.Tick(),
		ArenaMillis: s.arena.Now().Milliseconds(),
	}
	outbox := s.outbox
	s.outbox = nil
	s.worldMu.Unlock()

	s.status.Store(st)
	actorCount.Set(float64(actors))
	s.broadcast(outbox)
	tickDuration.Observe(time.Since(start).Seconds())
}

func (s *Server) syncNetComponents() {
	seqs := make(map[donburi.Entity]uint32)
	s.mu.RLock()
	for _, sess := range s.sessions {
		if sess.joined {
			seqs[sess.entity] = sess.lastSeq.Load()
		}
	}
	s.mu.RUnlock()

	netcomponents.NetActor.Each(s.arena.World(), func(e *donburi.Entry) {
		syncActor(e)
		if seq, ok := seqs[e.Entity()]; ok {
			netcomponents.NetActor.Get(e).LastSequence = seq
		}
	})
}

// syncActor copies the authoritative rig into the replicated components.
func syncActor(e *donburi.Entry) {
	obj := components.Object.Get(e)
	physics := components.Physics.Get(e)
	actor := components.Actor.Get(e)
	res := components.Resources.Get(e)

	netcomponents.NetPosition.SetValue(e, netcomponents.NetPositionData{X: obj.X, Y: obj.Y})
	netcomponents.NetVelocity.SetValue(e, netcomponents.NetVelocityData{SpeedX: physics.SpeedX, SpeedY: physics.SpeedY})

	na := netcomponents.NetActor.Get(e)
	na.Name = actor.Name
	na.Team = actor.Team
	na.StateID = components.State.Get(e).CurrentState
	na.FacingX = actor.Facing.X
	na.Health = res.Health
	na.MaxHealth = res.MaxHealth
	na.Stamina = res.Stamina
	na.MaxStamina = res.MaxStamina
	na.Blocking = components.Defense.Get(e).IsBlocking
	na.Broken = res.Broken
	na.Dead = components.Death.Get(e).Dead
	na.ComboStep = components.Attack.Get(e).ComboStep
}

// onNotification runs inside Arena.Update, so the world lock is already held.
func (s *Server) onNotification(n systems.Notification) {
	notificationsTotal.WithLabelValues(n.Tag).Inc()
	s.outbox = append(s.outbox, messages.Notification{
		Tag:      n.Tag,
		SourceID: s.networkID(n.Source),
		TargetID: s.networkID(n.Target),
		Amount:   n.Amount,
		AtMillis: n.At.Milliseconds(),
	})
}

func (s *Server) networkID(entity donburi.Entity) uint {
	e, ok := s.arena.Entry(entity)
	if !ok {
		return 0
	}
	id := esync.GetNetworkId(e)
	if id == nil {
		return 0
	}
	return uint(*id)
}

func (s *Server) broadcast(msgs []messages.Notification) {
	if len(msgs) == 0 {
		return
	}
	s.mu.RLock()
	clients := make([]*router.NetworkClient, 0, len(s.sessions))
	for client, sess := range s.sessions {
		if sess.joined {
			clients = append(clients, client)
		}
	}
	s.mu.RUnlock()

	for _, client := range clients {
		for _, msg := range msgs {
			s.send(client, msg)
		}
	}
}

func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		s.logger.Debug("send failed", zap.String("client", client.Id()), zap.Error(err))
	}
}

func playerSpawnX(n int) float64 {
	return 64 + float64(n%8)*40
}

func enemySpawnX(n int) float64 {
	return float64(config.Arena.Width) - 96 - float64(n%8)*40
}
