// Package time holds small time helpers shared by the store and services
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// UTC returns t in UTC with monotonic clock data stripped, so stored and
// compared values agree
func UTC(t time.Time) time.Time { return t.Round(0).UTC() }
