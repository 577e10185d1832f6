package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"datalens/domain/dataset"
)

// Session owns the state of one exploration: the loaded dataset and its
// identity. A session is built once per successful load and replaced
// wholesale; it is never mutated mid-analysis.
type Session struct {
	ID       string
	Name     string
	Split    string
	Dataset  *dataset.Dataset
	Card     string // dataset card markdown, may be empty
	LoadedAt time.Time
}

// New creates a session for a freshly loaded dataset.
func New(name, split string, ds *dataset.Dataset) *Session {
	return &Session{
		ID:       newID(),
		Name:     name,
		Split:    split,
		Dataset:  ds,
		LoadedAt: time.Now(),
	}
}

// newID returns a time-ordered UUID, falling back to v4 if v7 fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// Holder guards the current session for handler access. Replace swaps the
// whole session atomically; readers never observe a partial load.
type Holder struct {
	mu      sync.RWMutex
	current *Session
}

// NewHolder creates an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the active session, or nil before the first load.
func (h *Holder) Current() *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Replace installs a new session, discarding the previous one.
func (h *Holder) Replace(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = s
}
