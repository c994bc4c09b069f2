package presentation

import "sync"

// WholeCountry is the selection index of the national view.
const WholeCountry = -1

// Selection is the dashboard's one piece of mutable state: the index of the
// record shown in the donut and bar charts. It is safe for concurrent use.
type Selection struct {
	mu    sync.RWMutex
	index int
}

// NewSelection starts on the national view.
func NewSelection() *Selection {
	return &Selection{index: WholeCountry}
}

// Current returns the selected record index, or WholeCountry.
func (s *Selection) Current() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Set selects a record index. Callers validate the index.
func (s *Selection) Set(index int) {
	s.mu.Lock()
	s.index = index
	s.mu.Unlock()
}

// Reset returns to the national view.
func (s *Selection) Reset() {
	s.Set(WholeCountry)
}
