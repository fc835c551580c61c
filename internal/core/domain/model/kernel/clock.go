package kernel

import "time"

// Clock returns the current time. Handlers and adapters take a Clock so that tests
// can pin timestamps and token expiry.
type Clock func() time.Time

// SystemClock returns time.Now in UTC.
func SystemClock() Clock {
	return func() time.Time {
		return time.Now().UTC()
	}
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// Now calls the clock, falling back to the system clock for a nil Clock.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
