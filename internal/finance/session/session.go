package session

import (
	"sync"

	"github.com/amfajardoo/investment-manager/internal/finance/domain"
)

// State is a point-in-time snapshot of the auth session. IsAuthenticated is
// derived: it is true exactly when User is set.
type State struct {
	User            *domain.UserProfile `json:"user"`
	IsLoading       bool                `json:"isLoading"`
	Err             *domain.AuthError   `json:"error"`
	IsAuthenticated bool                `json:"isAuthenticated"`
}

// Listener receives a snapshot after every state change.
type Listener func(State)

// Store holds the session state machine. All mutations are serialized under a
// mutex and listeners observe each change in order.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Snapshot returns a copy of the current state. The User pointer is cloned so
// callers cannot mutate the store through it.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Subscribe registers a listener and returns a cancel func. The listener is
// immediately invoked with the current state.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	snap := cloneState(s.state)
	s.mu.Unlock()

	fn(snap)
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetLoading marks an auth operation in flight and clears any previous error.
func (s *Store) SetLoading() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Err = nil
	s.publishLocked()
}

// SetUser records a successful sign-in: user set, loading off, error cleared.
func (s *Store) SetUser(u domain.UserProfile) {
	s.mu.Lock()
	s.state.User = &u
	s.state.IsAuthenticated = true
	s.state.IsLoading = false
	s.state.Err = nil
	s.publishLocked()
}

// SetError records a failed operation. The current user (if any) is kept; a
// failed display-name update must not log the user out.
func (s *Store) SetError(e *domain.AuthError) {
	s.mu.Lock()
	s.state.Err = e
	s.state.IsLoading = false
	s.publishLocked()
}

// ClearError drops the current error without touching the rest of the state.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.state.Err = nil
	s.publishLocked()
}

// UpdateDisplayName rewrites the signed-in user's display name. No-op when
// signed out.
func (s *Store) UpdateDisplayName(displayName string) {
	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return
	}
	u := *s.state.User
	u.DisplayName = displayName
	s.state.User = &u
	s.publishLocked()
}

// Clear resets the session to the anonymous state.
func (s *Store) Clear() {
	s.mu.Lock()
	s.state = State{}
	s.publishLocked()
}

// publishLocked snapshots state and notifies listeners outside the lock. The
// caller must hold mu; the lock is released here.
func (s *Store) publishLocked() {
	snap := cloneState(s.state)
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func cloneState(st State) State {
	out := st
	if st.User != nil {
		u := *st.User
		out.User = &u
	}
	return out
}
