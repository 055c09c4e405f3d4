package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Telegram:  TelegramConfig{Token: "t", OwnerChatID: 42},
		Database:  DatabaseConfig{Driver: "sqlite3", DSN: "data/revision.db"},
		Scheduler: SchedulerConfig{Enabled: true, ReminderHour: 8, NotificationStartHour: 7, NotificationEndHour: 22},
		Planner:   PlannerConfig{StorageKey: "planner-config", FocusMinutes: 25, UpcomingDays: 7},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres", mutate: func(c *Config) { c.Database.Driver = "postgres" }},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "unsupported driver"},
		{name: "empty dsn", mutate: func(c *Config) { c.Database.DSN = " " }, wantErr: "database.dsn"},
		{name: "bad hour", mutate: func(c *Config) { c.Scheduler.ReminderHour = 24 }, wantErr: "scheduler.reminder_hour"},
		{name: "no storage key", mutate: func(c *Config) { c.Planner.StorageKey = "" }, wantErr: "planner.storage_key"},
		{name: "zero focus", mutate: func(c *Config) { c.Planner.FocusMinutes = 0 }, wantErr: "planner.focus_minutes"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAIEnabled(t *testing.T) {
	t.Parallel()

	assert.False(t, OpenAIConfig{}.Enabled())
	assert.False(t, OpenAIConfig{APIKey: "  "}.Enabled())
	assert.True(t, OpenAIConfig{APIKey: "sk-test"}.Enabled())
}

func TestValidateBot(t *testing.T) {
	t.Parallel()

	ok := TelegramConfig{Token: "t", OwnerChatID: 42, StopTimeout: time.Second}
	assert.NoError(t, ok.ValidateBot())

	err := TelegramConfig{StopTimeout: time.Second}.ValidateBot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token")
	assert.Contains(t, err.Error(), "telegram.owner_chat_id")
}

func TestLoad_FromYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
telegram:
  token: yaml-token
  owner_chat_id: 7
database:
  driver: sqlite3
  dsn: ` + filepath.Join(dir, "planner.db") + `
planner:
  focus_minutes: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, int64(7), cfg.Telegram.OwnerChatID)
	assert.Equal(t, 50, cfg.Planner.FocusMinutes)
	assert.Equal(t, "planner-config", cfg.Planner.StorageKey)
	assert.Equal(t, 8, cfg.Scheduler.ReminderHour)
	assert.Equal(t, 5*time.Second, cfg.Telegram.StopTimeout)
}

func TestLoad_WithoutTelegramCredentials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "database:\n  dsn: " + filepath.Join(dir, "planner.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("CONFIG_PATH", path)
	for _, key := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_OWNER_CHAT_ID"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Telegram.ValidateBot())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}
