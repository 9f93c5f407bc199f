// Package reminder computes when a medication notification should fire and
// hands it to a scheduler. The trigger repeats daily at the same wall-clock
// time once armed.
package reminder

import (
	"fmt"
	"time"
)

// DefaultMinDelay keeps a freshly saved reminder from firing while the user
// is still on the form.
const DefaultMinDelay = 5 * time.Minute

// Trigger is a resolved notification time: the absolute first firing moment
// plus the wall-clock hour/minute it repeats at.
type Trigger struct {
	Hour    int
	Minute  int
	At      time.Time
	Repeats bool
}

// NextTrigger resolves the "HH:MM" (24-hour) intake time against now:
// today at that time, or tomorrow if it already passed, and never closer
// than minDelay from now. A non-positive minDelay means no minimum.
func NextTrigger(now time.Time, hhmm string, minDelay time.Duration) (Trigger, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return Trigger{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}

	at := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())

	// Already passed today: fire tomorrow.
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}

	if minDelay > 0 && at.Sub(now) < minDelay {
		at = now.Add(minDelay)
	}

	return Trigger{
		Hour:    at.Hour(),
		Minute:  at.Minute(),
		At:      at,
		Repeats: true,
	}, nil
}
