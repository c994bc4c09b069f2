package domain

import "github.com/jonboulle/clockwork"

// clock stamps Dataset.LoadedAt. Tests and the export command freeze it via
// SetClock for reproducible output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
