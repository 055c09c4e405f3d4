package bot

import (
	"time"

	"github.com/example/revisionbot/internal/config"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Only this chat may use the bot; notifications and digests go here
	OwnerChatID int64
	// Long-polling timeout in seconds
	UpdateTimeout int
	// How long Stop waits for in-flight handlers
	StopTimeout time.Duration
	// Length of a focus session
	FocusDuration time.Duration
	// Days shown by /upcoming without an argument
	UpcomingDays int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() BotConfig {
	return BotConfig{
		UpdateTimeout: 60,
		StopTimeout:   5 * time.Second,
		FocusDuration: 25 * time.Minute,
		UpcomingDays:  7,
	}
}

// ConfigFrom builds the bot configuration from the application config.
func ConfigFrom(cfg *config.Config) BotConfig {
	return BotConfig{
		OwnerChatID:   cfg.Telegram.OwnerChatID,
		UpdateTimeout: cfg.Telegram.UpdateTimeout,
		StopTimeout:   cfg.Telegram.StopTimeout,
		FocusDuration: time.Duration(cfg.Planner.FocusMinutes) * time.Minute,
		UpcomingDays:  cfg.Planner.UpcomingDays,
	}
}
