package clock

import "time"

// Clock supplies the current time. Injected wherever "now" matters so that
// time-dependent behavior (expiry, reminder cutoffs) is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}
