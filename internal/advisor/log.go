package advisor

import (
	"time"

	"github.com/google/uuid"
)

// DecisionLogEntry is a logged Strategy plus its audit identity.
type DecisionLogEntry struct {
	ID       string    `json:"id"`
	Strategy Strategy  `json:"strategy"`
	LoggedAt time.Time `json:"logged_at"`
}

// logDecision appends to the bounded in-memory log. The log is FIFO: once
// it exceeds MaxLogSize the oldest entries are dropped. Guarded by a mutex
// because Recommend runs on concurrent request goroutines.
func (a *Advisor) logDecision(strategy Strategy) {
	entry := DecisionLogEntry{
		ID:       uuid.NewString(),
		Strategy: strategy,
		LoggedAt: time.Now().UTC(),
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.decisions = append(a.decisions, entry)
	if len(a.decisions) > a.cfg.MaxLogSize {
		drop := len(a.decisions) - a.cfg.MaxLogSize
		a.decisions = append(a.decisions[:0:0], a.decisions[drop:]...)
	}
}

// RecentDecisions returns up to RecentWindow most recent entries in
// insertion order (oldest of the window first), as a copy.
func (a *Advisor) RecentDecisions() []DecisionLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	start := 0
	if len(a.decisions) > a.cfg.RecentWindow {
		start = len(a.decisions) - a.cfg.RecentWindow
	}
	out := make([]DecisionLogEntry, len(a.decisions)-start)
	copy(out, a.decisions[start:])
	return out
}
