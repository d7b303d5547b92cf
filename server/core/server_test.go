package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/scenes"
	"github.com/automoto/doomerang-combat/shared/messages"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// newTestServer builds a server around an arena without any network transport.
func newTestServer(burst int) *Server {
	s := &Server{
		cfg:      config.Config{Server: config.ServerSettings{Name: "test", MaxPlayers: 2}},
		logger:   zap.NewNop(),
		arena:    scenes.NewArena(nil),
		sessions: make(map[*router.NetworkClient]*session),
		limiter:  NewCommandLimiter(RateLimitConfig{CommandsPerSecond: 0.001, Burst: burst}),
	}
	s.status.Store(&Status{Name: "test", MaxPlayers: 2})
	return s
}

func (s *Server) spawnForTest(t *testing.T) *donburi.Entry {
	t.Helper()
	p := config.Profile(config.ProfilePlayer)
	e := s.arena.Spawn(p, 100, config.Arena.FloorY-p.CollisionHeight, factory.ActorOptions{
		Name:  "tester",
		FaceX: 1,
		Extra: []donburi.IComponentType{netcomponents.NetPosition, netcomponents.NetVelocity, netcomponents.NetActor},
	})
	require.NotNil(t, e)
	return e
}

func TestCommandFromUnjoinedClientIsDropped(t *testing.T) {
	s := newTestServer(5)
	defer s.limiter.Stop()
	e := s.spawnForTest(t)

	client := &router.NetworkClient{}
	s.onCommand(client, messages.CommandInput{Sequence: 1, Action: config.ActionBlock, Pressed: true})

	s.sessions[client] = &session{id: "c1", entity: e.Entity()}
	s.onCommand(client, messages.CommandInput{Sequence: 2, Action: config.ActionBlock, Pressed: true})

	s.arena.Update(10 * time.Millisecond)
	assert.False(t, components.Defense.Get(e).IsBlocking)
	assert.Zero(t, s.limiter.GetStats()["allowed"])
}

func TestCommandValidationAndRateLimit(t *testing.T) {
	s := newTestServer(1)
	defer s.limiter.Stop()
	e := s.spawnForTest(t)

	client := &router.NetworkClient{}
	sess := &session{id: "c1", entity: e.Entity(), joined: true}
	s.sessions[client] = sess

	s.onCommand(client, messages.CommandInput{Sequence: 1, Action: config.ActionCount, Pressed: true})
	s.onCommand(client, messages.CommandInput{Sequence: 2, Action: config.ActionNone, Pressed: true})
	assert.Zero(t, sess.lastSeq.Load())
	assert.Zero(t, s.limiter.GetStats()["allowed"])

	s.onCommand(client, messages.CommandInput{Sequence: 3, Action: config.ActionBlock, Pressed: true})
	assert.Equal(t, uint32(3), sess.lastSeq.Load())

	s.onCommand(client, messages.CommandInput{Sequence: 4, Action: config.ActionBlock, Pressed: false})
	assert.Equal(t, uint32(3), sess.lastSeq.Load())
	assert.Equal(t, uint64(1), s.limiter.GetStats()["rejected"])

	s.arena.Update(10 * time.Millisecond)
	assert.True(t, components.Defense.Get(e).IsBlocking)
}

func TestSyncNetComponentsCopiesRig(t *testing.T) {
	s := newTestServer(5)
	defer s.limiter.Stop()
	e := s.spawnForTest(t)

	client := &router.NetworkClient{}
	sess := &session{id: "c1", entity: e.Entity(), joined: true}
	sess.lastSeq.Store(9)
	s.sessions[client] = sess
	assert.Equal(t, 1, s.PlayerCount())

	systems.ApplyDamage(e, 25)
	components.Physics.Get(e).SpeedX = 2
	s.syncNetComponents()

	na := netcomponents.NetActor.Get(e)
	assert.Equal(t, "tester", na.Name)
	assert.Equal(t, 75.0, na.Health)
	assert.Equal(t, 100.0, na.MaxHealth)
	assert.Equal(t, 1.0, na.FacingX)
	assert.Equal(t, uint32(9), na.LastSequence)
	assert.False(t, na.Dead)

	obj := components.Object.Get(e)
	pos := netcomponents.NetPosition.Get(e)
	assert.Equal(t, obj.X, pos.X)
	assert.Equal(t, obj.Y, pos.Y)
	assert.Equal(t, 2.0, netcomponents.NetVelocity.Get(e).SpeedX)
}

func TestStatusReportsJoinedPlayers(t *testing.T) {
	s := newTestServer(5)
	defer s.limiter.Stop()

	s.sessions[&router.NetworkClient{}] = &session{id: "a", joined: true}
	s.sessions[&router.NetworkClient{}] = &session{id: "b"}

	st := s.Status()
	assert.Equal(t, "test", st.Name)
	assert.Equal(t, 1, st.Players)
	assert.Equal(t, 2, st.MaxPlayers)
}

func TestSpawnPositionsStayInArena(t *testing.T) {
	for i := 0; i < 16; i++ {
		assert.GreaterOrEqual(t, playerSpawnX(i), 0.0)
		assert.LessOrEqual(t, enemySpawnX(i)+32, float64(config.Arena.Width))
		assert.Greater(t, enemySpawnX(i), 0.0)
	}
}

func TestJoinRejectionReachesClient(t *testing.T) {
	s := newTestServer(5)
	defer s.limiter.Stop()
	s.sessions[&router.NetworkClient{}] = &session{id: "a", joined: true}
	s.sessions[&router.NetworkClient{}] = &session{id: "b", joined: true}

	accepted := make(chan *websocket.Conn, 1)
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		accepted <- conn
		<-done
	}))
	defer srv.Close()
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	peer, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer peer.CloseNow()

	client := router.NewNetworkClient(ctx, <-accepted)
	s.sessions[client] = &session{id: "c"}
	s.onJoin(client, messages.JoinRequest{PlayerName: "late"})

	typ, payload, err := peer.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageBinary, typ)
	want, err := router.Serialize(messages.JoinRejected{Reason: "server full"})
	require.NoError(t, err)
	assert.Equal(t, want, payload)
}

func TestCommandsDuringJoinAreSafe(t *testing.T) {
	s := newTestServer(1000)
	defer s.limiter.Stop()
	e := s.spawnForTest(t)

	client := &router.NetworkClient{}
	sess := &session{id: "c1"}
	s.sessions[client] = sess

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 200; i++ {
			s.onCommand(client, messages.CommandInput{Sequence: uint32(i), Action: config.ActionBlock, Pressed: i%2 == 1})
		}
	}()
	s.mu.Lock()
	sess.entity = e.Entity()
	sess.joined = true
	s.mu.Unlock()
	wg.Wait()

	s.onCommand(client, messages.CommandInput{Sequence: 201, Action: config.ActionBlock, Pressed: true})
	assert.Equal(t, uint32(201), sess.lastSeq.Load())
}
