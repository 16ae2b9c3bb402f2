package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "Well & Wilde", cfg.Mail.Brand)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Admin.AuthRequired)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 100, cfg.Notify.QueueSize)
	assert.Equal(t, 2, cfg.Notify.Workers)
	assert.Equal(t, "", cfg.DigestCron)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "http override",
			envVars: map[string]string{
				"HTTP_HOST": "127.0.0.1",
				"HTTP_PORT": "9090",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr())
			},
		},
		{
			name: "cors override",
			envVars: map[string]string{
				"CORS_ALLOWED_ORIGINS":   "https://wellandwilde.ie,https://www.wellandwilde.ie",
				"CORS_ALLOW_CREDENTIALS": "false",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, []string{"https://wellandwilde.ie", "https://www.wellandwilde.ie"}, cfg.CORS.AllowedOrigins)
				assert.False(t, cfg.CORS.AllowCredentials)
			},
		},
		{
			name: "smtp override",
			envVars: map[string]string{
				"SMTP_HOST":     "smtp.example.com",
				"SMTP_PORT":     "2525",
				"SMTP_USERNAME": "user",
				"SMTP_PASSWORD": "pass",
				"SMTP_TLS":      "mandatory",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
				assert.Equal(t, 2525, cfg.SMTP.Port)
				assert.Equal(t, "user", cfg.SMTP.Username)
				assert.Equal(t, "pass", cfg.SMTP.Password)
				assert.Equal(t, "mandatory", cfg.SMTP.TLS)
			},
		},
		{
			name: "sqlite store",
			envVars: map[string]string{
				"STORE_DRIVER":      "sqlite",
				"STORE_SQLITE_PATH": "/tmp/subs.db",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, DriverSQLite, cfg.Store.Driver)
				assert.Equal(t, "/tmp/subs.db", cfg.Store.SQLitePath)
			},
		},
		{
			name: "notify override",
			envVars: map[string]string{
				"NOTIFY_QUEUE_SIZE":   "5",
				"NOTIFY_WORKERS":      "4",
				"NOTIFY_SEND_TIMEOUT": "3s",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 5, cfg.Notify.QueueSize)
				assert.Equal(t, 4, cfg.Notify.Workers)
				assert.Equal(t, 3*time.Second, cfg.Notify.SendTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tt.expected(cfg)
		})
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			envVars: map[string]string{},
			wantErr: "JWT_SECRET",
		},
		{
			name: "unknown driver",
			envVars: map[string]string{
				"JWT_SECRET":   "x",
				"STORE_DRIVER": "mongo",
			},
			wantErr: "unknown STORE_DRIVER",
		},
		{
			name: "postgres without dsn",
			envVars: map[string]string{
				"JWT_SECRET":   "x",
				"STORE_DRIVER": "postgres",
			},
			wantErr: "STORE_POSTGRES_DSN",
		},
		{
			name: "bad tls policy",
			envVars: map[string]string{
				"JWT_SECRET": "x",
				"SMTP_TLS":   "sometimes",
			},
			wantErr: "SMTP_TLS",
		},
		{
			name: "zero workers",
			envVars: map[string]string{
				"JWT_SECRET":     "x",
				"NOTIFY_WORKERS": "0",
			},
			wantErr: "NOTIFY_WORKERS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_AuthDisabledNeedsNoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_AUTH_REQUIRED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Admin.AuthRequired)
}
