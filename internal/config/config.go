package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Planner   PlannerConfig   `yaml:"planner"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Log       LogConfig       `yaml:"log"`
}

// TelegramConfig holds bot credentials. Only the owner chat may drive the
// planner; notifications and digests are delivered there. The credentials
// are checked by ValidateBot so one-shot CLI runs work without them.
type TelegramConfig struct {
	Token         string        `yaml:"token"          env:"TELEGRAM_BOT_TOKEN"`
	OwnerChatID   int64         `yaml:"owner_chat_id"  env:"TELEGRAM_OWNER_CHAT_ID"`
	UpdateTimeout int           `yaml:"update_timeout" env:"TELEGRAM_UPDATE_TIMEOUT" env-default:"60"`
	StopTimeout   time.Duration `yaml:"stop_timeout"   env:"TELEGRAM_STOP_TIMEOUT"   env-default:"5s"`
}

// DatabaseConfig selects the key-value store backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"sqlite3"`
	DSN    string `yaml:"dsn"    env:"DATABASE_DSN"    env-default:"data/revision.db"`
}

// SchedulerConfig controls the daily digest.
type SchedulerConfig struct {
	Enabled               bool `yaml:"enabled"                 env:"ENABLE_SCHEDULER"         env-default:"true"`
	ReminderHour          int  `yaml:"reminder_hour"           env:"SCHEDULER_REMINDER_HOUR"  env-default:"8"`
	NotificationStartHour int  `yaml:"notification_start_hour" env:"NOTIFICATION_START_HOUR"  env-default:"7"`
	NotificationEndHour   int  `yaml:"notification_end_hour"   env:"NOTIFICATION_END_HOUR"    env-default:"22"`
}

// PlannerConfig holds planner behaviour that is not part of the persisted
// planner record.
type PlannerConfig struct {
	StorageKey   string `yaml:"storage_key"   env:"PLANNER_STORAGE_KEY"   env-default:"planner-config"`
	FocusMinutes int    `yaml:"focus_minutes" env:"PLANNER_FOCUS_MINUTES" env-default:"25"`
	UpcomingDays int    `yaml:"upcoming_days" env:"PLANNER_UPCOMING_DAYS" env-default:"7"`
}

// OpenAIConfig enables revision prompts. An empty key disables them.
type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"  env:"OPENAI_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model   string        `yaml:"model"    env:"OPENAI_MODEL"    env-default:"gpt-4o-mini"`
	Timeout time.Duration `yaml:"timeout"  env:"OPENAI_TIMEOUT"  env-default:"20s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Enabled reports whether revision prompts should be generated.
func (c OpenAIConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Validate checks value ranges that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn: must not be empty"))
	}

	for name, h := range map[string]int{
		"scheduler.reminder_hour":           c.Scheduler.ReminderHour,
		"scheduler.notification_start_hour": c.Scheduler.NotificationStartHour,
		"scheduler.notification_end_hour":   c.Scheduler.NotificationEndHour,
	} {
		if h < 0 || h > 23 {
			errs = append(errs, fmt.Errorf("%s: %d is not an hour of the day", name, h))
		}
	}

	if strings.TrimSpace(c.Planner.StorageKey) == "" {
		errs = append(errs, errors.New("planner.storage_key: must not be empty"))
	}
	if c.Planner.FocusMinutes <= 0 {
		errs = append(errs, fmt.Errorf("planner.focus_minutes: must be positive, got %d", c.Planner.FocusMinutes))
	}
	if c.Planner.UpcomingDays <= 0 {
		errs = append(errs, fmt.Errorf("planner.upcoming_days: must be positive, got %d", c.Planner.UpcomingDays))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: unsupported format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ValidateBot checks the settings needed to run the Telegram bot.
func (c TelegramConfig) ValidateBot() error {
	var errs []error
	if strings.TrimSpace(c.Token) == "" {
		errs = append(errs, errors.New("telegram.token: must not be empty"))
	}
	if c.OwnerChatID == 0 {
		errs = append(errs, errors.New("telegram.owner_chat_id: must be set"))
	}
	if c.StopTimeout <= 0 {
		errs = append(errs, fmt.Errorf("telegram.stop_timeout: must be positive, got %s", c.StopTimeout))
	}
	return errors.Join(errs...)
}
