package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfigBuilder().
		WithAddr("127.0.0.1:0").
		WithTokenSecret("test-secret").
		Build()
	testutil.AssertNoError(t, cfg.Validate())
	return cfg
}

// startServer runs serve on a loopback listener and returns its base URL and
// a function that stops it and returns serve's error.
func startServer(t *testing.T, cfg *config.Config, logs *bytes.Buffer) (string, func() error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg, zerolog.New(zerolog.SyncWriter(logs)), ln)
	}()

	stop := func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after cancel")
			return nil
		}
	}
	return "http://" + ln.Addr().String(), stop
}

func TestServe_MemoryStore(t *testing.T) {
	var logs bytes.Buffer
	base, stop := startServer(t, newTestConfig(t), &logs)

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	resp, err = http.Post(base+"/games", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusCreated)

	testutil.AssertNoError(t, stop())
	testutil.AssertContains(t, logs.String(), `"message":"using in-memory session store"`)
	testutil.AssertContains(t, logs.String(), `"message":"server stopped"`)
}

func TestServe_SQLiteStore(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Store.DBPath = filepath.Join(t.TempDir(), "games.db")

	var logs bytes.Buffer
	base, stop := startServer(t, cfg, &logs)

	resp, err := http.Post(base+"/games", "application/json", nil)
	if err != nil {
		t.Skipf("sqlite store unavailable: %v (serve: %v)", err, stop())
	}
	resp.Body.Close()

	testutil.AssertNoError(t, stop())
	testutil.AssertEqual(t, resp.StatusCode, http.StatusCreated)
	testutil.AssertContains(t, logs.String(), `"message":"session store opened"`)
}

func TestServe_RandomSecretWarns(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Token.Secret = ""

	var logs bytes.Buffer
	_, stop := startServer(t, cfg, &logs)
	testutil.AssertNoError(t, stop())
	testutil.AssertContains(t, logs.String(), "no token secret configured")
}

func TestRunServe_BadAddr(t *testing.T) {
	cfg := newTestConfig(t)
	err := runServe(context.Background(), cfg, zerolog.Nop(), []string{"-addr", "256.0.0.1:bad"}, &bytes.Buffer{})
	testutil.AssertContains(t, err.Error(), "listen on")
}
