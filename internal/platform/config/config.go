// Package config reads typed settings from the environment. Bad values fall
// back to the default with a warning, missing required ones panic at boot
package config

import (
	"strconv"
	"strings"
	"time"

	"deploytrack/internal/platform/config/raw"
	"deploytrack/internal/platform/logger"
)

// Conf is a prefixed view, e.g. New().Prefix("CORE_API_")
type Conf struct{ env raw.Conf }

// New is the root view over the process environment
func New() Conf { return Conf{env: raw.New()} }

// FromMap is a root view over m instead of the environment
func FromMap(m map[string]string) Conf { return Conf{env: raw.FromMap(m)} }

func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

// Has reports whether key is set to something other than blanks
func (c Conf) Has(key string) bool { return c.env.Value(key) != "" }

func (c Conf) invalid(key, value string) *logger.Event {
	return logger.Named("config").Warn().Str("key", c.env.Key(key)).Str("value", value)
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v := c.env.Value(key)
	if v == "" {
		logger.Named("config").Panic().Str("key", c.env.Key(key)).Msg("missing required env")
	}
	return v
}

func (c Conf) MayString(key, def string) string { return c.env.Get(key, def) }

func (c Conf) MayInt(key string, def int) int {
	s := c.env.Value(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.invalid(key, s).Int("default", def).Msg("not an integer, using default")
		return def
	}
	return v
}

// MayBool takes strconv.ParseBool's spellings
func (c Conf) MayBool(key string, def bool) bool {
	s := c.env.Value(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.invalid(key, s).Bool("default", def).Msg("not a bool, using default")
		return def
	}
	return v
}

// MayDuration rejects zero and negative durations
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.env.Value(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		c.invalid(key, s).Dur("default", def).Msg("not a positive duration, using default")
		return def
	}
	return d
}

// MayPort normalises "4000", ":4000" and "host:4000" to a listen address.
// Port 0 is allowed; a port outside 0..65535 panics
func (c Conf) MayPort(key, def string) string {
	s := c.MayString(key, def)
	host, port := "", s
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		host, port = s[:i], s[i+1:]
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		logger.Named("config").Panic().Str("key", c.env.Key(key)).Str("value", s).Msg("invalid TCP port")
	}
	return host + ":" + port
}

// MayCSV splits on commas and drops blank items. All blank means def
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for item := range strings.SplitSeq(c.env.Value(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
