package exam

import "time"

// Config holds optional constraints for an attempt.
type Config struct {
	MaxDuration *time.Duration   // nil = no time limit
	Now         func() time.Time // nil = time.Now
}

// DefaultConfig returns a config with no constraints.
func DefaultConfig() Config {
	return Config{
		MaxDuration: nil,
		Now:         time.Now,
	}
}
