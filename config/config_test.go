package config

import (
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		ServerPort:       8080,
		JWTSecret:        "a-secret-that-is-long-enough-for-prod",
		JWTExpiry:        time.Hour,
		EmailMaxAttempts:   5,
		EmailRetryInterval: time.Hour,
	}
}

func TestValidateConfig(t *testing.T) {
	log := logger.New("config_test")

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.ServerPort = 0 }, wantErr: true},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{
			name: "short secret in production",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.JWTSecret = "short"
			},
			wantErr: true,
		},
		{
			name:   "short secret outside production",
			mutate: func(c *Config) { c.JWTSecret = "short" },
		},
		{name: "zero jwt expiry", mutate: func(c *Config) { c.JWTExpiry = 0 }, wantErr: true},
		{
			name:    "minio without credentials",
			mutate:  func(c *Config) { c.MinioEndpoint = "localhost:9000" },
			wantErr: true,
		},
		{
			name: "minio with credentials",
			mutate: func(c *Config) {
				c.MinioEndpoint = "localhost:9000"
				c.MinioAccessKey = "access"
				c.MinioSecretKey = "secret"
			},
		},
		{
			name: "smtp host without port",
			mutate: func(c *Config) {
				c.SMTPHost = "smtp.local"
				c.SMTPPort = 0
			},
			wantErr: true,
		},
		{
			name:    "retry interval too short",
			mutate:  func(c *Config) { c.EmailRetryInterval = time.Second },
			wantErr: true,
		},
		{name: "no email attempts", mutate: func(c *Config) { c.EmailMaxAttempts = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			err := validateConfig(config, log)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, Config{Environment: "Production"}.IsProduction())
	assert.False(t, Config{Environment: "development"}.IsProduction())
}
