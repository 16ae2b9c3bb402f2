package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellandwilde/landing-be/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel: "info",
		HTTP: config.HTTP{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Store:  config.Store{Driver: config.DriverMemory},
		SMTP:   config.SMTP{TLS: "opportunistic"},
		Mail:   config.Mail{Brand: "Well & Wilde", From: "hello@wellandwilde.ie", Operator: "hello@wellandwilde.ie"},
		CORS:   config.CORS{AllowedOrigins: []string{"http://localhost:5173"}},
		Admin:  config.Admin{AuthRequired: true, Username: "admin", Password: "hunter2"},
		JWT:    config.JWT{Secret: "s3cret", TTL: time.Hour},
		Notify: config.Notify{QueueSize: 10, Workers: 1, SendTimeout: time.Second},
	}
}

func TestNew_MemoryStore(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, config.DriverMemory, a.stores.Name)
	assert.NotNil(t, a.tokens)
	assert.Nil(t, a.digest)

	_, err = a.users.AuthenticateUser(context.Background(), "admin", "hunter2")
	assert.NoError(t, err)
}

func TestNew_SQLiteStoreSeedsOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store = config.Store{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "landing.db")}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	a.Close()

	cfg.Admin.Password = "changed"
	a, err = New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.users.AuthenticateUser(context.Background(), "admin", "hunter2")
	assert.NoError(t, err)
}

func TestNew_InvalidDigestSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.DigestCron = "every tuesday"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestApp_Handlers(t *testing.T) {
	cfg := testConfig(t)
	cfg.DigestCron = "@daily"
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.digest)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"memory"`)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/subscribers", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))
	a.FunctionHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.DigestCron = "@daily"
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, a.Handler()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.False(t, a.dispatcher.Enqueue("late@b.com"))
}
