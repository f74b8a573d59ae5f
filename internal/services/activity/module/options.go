package module

import (
	"time"

	"deploytrack/internal/platform/config"
)

// Options controls the activity sink
type Options struct {
	Batch  int
	Flush  time.Duration
	Buffer int
}

// FromConfig reads with ACTIVITY_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ACTIVITY_")
	return Options{
		Batch:  c.MayInt("BATCH", 100),
		Flush:  c.MayDuration("FLUSH", 2*time.Second),
		Buffer: c.MayInt("BUFFER", 1024),
	}
}
