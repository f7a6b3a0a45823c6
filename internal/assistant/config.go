package assistant

import (
	"time"

	"kirana-assistant/internal/common/config"
)

type Config struct {
	ReplyTimeout   time.Duration
	MaxSearchHits  int
	SpeakReplies   bool
	HistoryEnabled bool
}

func NewConfig(cfg config.AssistantConfig) *Config {
	maxHits := cfg.MaxSearchHits
	if maxHits <= 0 {
		maxHits = 20
	}
	return &Config{
		ReplyTimeout:   config.GetDuration(cfg.ReplyTimeout),
		MaxSearchHits:  maxHits,
		SpeakReplies:   cfg.SpeakReplies,
		HistoryEnabled: cfg.HistoryEnabled,
	}
}
