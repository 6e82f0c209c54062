package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("Server.Port = %q, want 5000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.JWT.ExpireHour != 720 {
		t.Errorf("JWT.ExpireHour = %d, want 720", cfg.JWT.ExpireHour)
	}
	if cfg.Notifications.FeedLimit != 50 {
		t.Errorf("Notifications.FeedLimit = %d, want 50", cfg.Notifications.FeedLimit)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled should default to false")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`server:
  port: "8080"
  mode: release
database:
  driver: postgres
  dsn: "host=localhost user=taskman dbname=taskman"
notifications:
  retention_days: 7
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Notifications.RetentionDays != 7 {
		t.Errorf("Notifications.RetentionDays = %d, want 7", cfg.Notifications.RetentionDays)
	}
	// Unset fields still get defaults
	if cfg.JWT.ExpireHour != 720 {
		t.Errorf("JWT.ExpireHour = %d, want default 720", cfg.JWT.ExpireHour)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "0")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("Server.Port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env-secret", cfg.JWT.Secret)
	}
	if cfg.Notifications.RetentionDays != 0 {
		t.Errorf("Notifications.RetentionDays = %d, want 0", cfg.Notifications.RetentionDays)
	}
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		addr     string
		password string
		db       int
	}{
		{"full", "redis://:secret@redis.example.com:6380/2", "redis.example.com:6380", "secret", 2},
		{"no auth", "redis://localhost:6379/0", "localhost:6379", "", 0},
		{"user and password", "redis://user:pw@10.0.0.5:6379/1", "10.0.0.5:6379", "pw", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.parseRedisURL(tt.url)
			if cfg.Redis.Addr != tt.addr {
				t.Errorf("Addr = %q, want %q", cfg.Redis.Addr, tt.addr)
			}
			if cfg.Redis.Password != tt.password {
				t.Errorf("Password = %q, want %q", cfg.Redis.Password, tt.password)
			}
			if cfg.Redis.DB != tt.db {
				t.Errorf("DB = %d, want %d", cfg.Redis.DB, tt.db)
			}
		})
	}
}
