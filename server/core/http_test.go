package core

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStatus Status

func (f fixedStatus) Status() Status { return Status(f) }

func TestRouterHealthz(t *testing.T) {
	srv := httptest.NewServer(NewRouter(fixedStatus{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterStatus(t *testing.T) {
	want := Status{Name: "arena-1", Players: 2, MaxPlayers: 8, Actors: 5, Tick: 1200, ArenaMillis: 20000}
	srv := httptest.NewServer(NewRouter(fixedStatus(want)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var got Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, want, got)
}

func TestRouterMetrics(t *testing.T) {
	commandsAccepted.Inc()

	srv := httptest.NewServer(NewRouter(fixedStatus{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "combat_commands_accepted_total")
}
