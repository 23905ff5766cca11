package session

import (
	"time"

	"github.com/securefab/traincore/cache"
)

const (
	// DefaultIdleTTL is how long an untouched session stays resident.
	DefaultIdleTTL = 30 * time.Minute
	// DefaultSweepInterval is how often expired sessions are evicted.
	DefaultSweepInterval = time.Minute
)

// Store keeps live sessions by id, evicting ones idle longer than the TTL.
// Unlike Session itself the store is safe for concurrent use; the headset
// shell looks sessions up from its own callbacks.
type Store struct {
	sessions *cache.Cache[string, *Session]
	idleTTL  time.Duration
}

// NewStore creates a Store with the given idle TTL and eviction sweep
// interval; non-positive arguments use the defaults.
func NewStore(idleTTL, sweepInterval time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	return &Store{
		sessions: cache.New[string, *Session](
			cache.WithDefaultTTL[string, *Session](idleTTL),
			cache.WithJanitorInterval[string, *Session](sweepInterval),
		),
		idleTTL: idleTTL,
	}
}

// Put registers a session, starting its idle clock.
func (st *Store) Put(s *Session) {
	st.sessions.Set(s.ID(), s)
}

// Get looks a session up by id and, when found, refreshes its idle TTL.
func (st *Store) Get(id string) (*Session, bool) {
	s, ok := st.sessions.Get(id)
	if ok {
		st.sessions.Touch(id, st.idleTTL)
	}
	return s, ok
}

// Remove drops the session with the given id.
func (st *Store) Remove(id string) {
	if s, ok := st.sessions.Get(id); ok {
		s.Close()
	}
	st.sessions.Delete(id)
}

// ActiveIDs returns the ids of all live sessions.
func (st *Store) ActiveIDs() []string {
	return st.sessions.Keys()
}

// Len returns the number of resident sessions.
func (st *Store) Len() int {
	return st.sessions.Len()
}

// Close stops the background eviction sweep.
func (st *Store) Close() {
	st.sessions.Close()
}
