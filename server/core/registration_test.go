package core

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/master"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSettings(url string) config.ServerSettings {
	return config.ServerSettings{
		Name:              "arena-test",
		MaxPlayers:        4,
		MasterURL:         url,
		AdvertiseAddr:     "127.0.0.1:7373",
		Region:            "eu",
		HeartbeatInterval: time.Hour,
	}
}

func TestRegistrationAgainstMaster(t *testing.T) {
	reg := master.NewRegistry(time.Minute, nil)
	defer reg.Stop()
	srv := httptest.NewServer(master.NewRouter(reg, nil))
	defer srv.Close()

	status := fixedStatus{Players: 1, Actors: 3}
	r := NewRegistration(testSettings(srv.URL), status, zap.NewNop())
	require.NoError(t, r.register())
	require.NotEmpty(t, r.ServerID())

	servers := reg.List("eu")
	require.Len(t, servers, 1)
	assert.Equal(t, "arena-test", servers[0].Name)
	assert.Equal(t, "127.0.0.1:7373", servers[0].Address)
	assert.Equal(t, Version, servers[0].Version)
	assert.Equal(t, 1, servers[0].Players)

	r.status = fixedStatus{Players: 2, Actors: 4}
	require.NoError(t, r.sendHeartbeat())
	servers = reg.List("")
	require.Len(t, servers, 1)
	assert.Equal(t, 2, servers[0].Players)
	assert.Equal(t, 4, servers[0].Actors)
}

func TestRegistrationReRegistersWhenForgotten(t *testing.T) {
	var registrations atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/servers/register", func(w http.ResponseWriter, _ *http.Request) {
		n := registrations.Add(1)
		w.WriteHeader(http.StatusCreated)
		if n == 1 {
			w.Write([]byte(`{"id":"first"}`))
			return
		}
		w.Write([]byte(`{"id":"second"}`))
	})
	mux.HandleFunc("/servers/heartbeat", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewRegistration(testSettings(srv.URL), fixedStatus{}, zap.NewNop())
	require.NoError(t, r.register())
	assert.Equal(t, "first", r.ServerID())

	require.NoError(t, r.sendHeartbeat())
	assert.Equal(t, "second", r.ServerID())
	assert.Equal(t, int32(2), registrations.Load())
}

func TestRegistrationRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRegistration(testSettings(srv.URL), fixedStatus{}, zap.NewNop())
	assert.Error(t, r.register())
	assert.Empty(t, r.ServerID())
	assert.Error(t, r.sendHeartbeat())
}

func TestRegistrationStopIsIdempotent(t *testing.T) {
	r := NewRegistration(testSettings("http://127.0.0.1:1"), fixedStatus{}, zap.NewNop())
	assert.NotPanics(t, func() {
		r.Stop()
		r.Stop()
	})
}
