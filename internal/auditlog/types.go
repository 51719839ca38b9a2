package auditlog

import "time"

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Result captures the observable outcome of recording an audit entry.
type Result struct {
	Timestamp     time.Time
	LogGroupName  string
	LogStreamName string
	Message       string
}
