package models

import "time"

// EngineConfig is the per-engine runtime policy the registry reads at the
// start of every dispatch. It is read-mostly: a configuration reload
// replaces the whole map the registry holds a snapshot of (see
// engine/config.Store), it never mutates a config value in place.
type EngineConfig struct {
	Enabled          bool              `yaml:"enabled" json:"enabled"`
	Weight           float64           `yaml:"weight" json:"weight"`
	TimeoutS         uint64            `yaml:"timeout_s" json:"timeout_s"`
	ThrottleMS       uint64            `yaml:"throttle_ms" json:"throttle_ms"`
	FailureThreshold uint32            `yaml:"failure_threshold" json:"failure_threshold"`
	CooldownS        uint64            `yaml:"cooldown_s" json:"cooldown_s"`
	Tokens           []string          `yaml:"tokens" json:"tokens"`
	Extra            map[string]string `yaml:"extra" json:"extra"`
}

// DefaultEngineConfig returns the field defaults named in spec.md §3.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Enabled:          true,
		Weight:           1.0,
		TimeoutS:         2,
		ThrottleMS:       500,
		FailureThreshold: 3,
		CooldownS:        30,
	}
}

// Timeout returns TimeoutS as a time.Duration.
func (c EngineConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// Throttle returns ThrottleMS as a time.Duration.
func (c EngineConfig) Throttle() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}

// Cooldown returns CooldownS as a time.Duration.
func (c EngineConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownS) * time.Second
}
