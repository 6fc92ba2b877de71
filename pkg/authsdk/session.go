package authsdk

import (
	"context"
	"reflect"
	"sync"
)

// State is the client's view of the session.
type State int

const (
	StateRestoring State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// SessionState tracks whether the client is signed in.
//
// It starts in StateRestoring. Restore settles it to StateAuthenticated or
// StateAnonymous. A session-expired broadcast from the transport moves it
// to StateAnonymous and forgets the cached user.
type SessionState struct {
	client *Client

	mu    sync.RWMutex
	state State
	user  *User

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(State, *User)

	unsubscribe func()
}

// NewSessionState binds a state machine to c.
func NewSessionState(c *Client) *SessionState {
	s := &SessionState{
		client: c,
		state:  StateRestoring,
		subs:   make(map[int]func(State, *User)),
	}
	s.unsubscribe = c.Transport().OnSessionExpired(func() {
		s.set(StateAnonymous, nil)
	})
	return s
}

// Close detaches s from the transport.
func (s *SessionState) Close() {
	s.unsubscribe()
}

// State returns the current state.
func (s *SessionState) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user, or nil.
func (s *SessionState) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionState) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Subscribe calls fn after every state change. The returned func stops it.
func (s *SessionState) Subscribe(fn func(State, *User)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Restore probes the server for an existing session. Whatever the outcome,
// it makes sure a CSRF token is held so later mutations succeed.
func (s *SessionState) Restore(ctx context.Context) State {
	s.set(StateRestoring, nil)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.set(StateAnonymous, nil)
	} else {
		s.set(StateAuthenticated, user)
	}

	if !s.client.HasCSRFToken() {
		// Failure leaves the state as is; the transport reacquires the
		// token on the first rejected mutation.
		_ = s.client.FetchCSRF(ctx)
	}

	return s.State()
}

// SignIn authenticates and moves to StateAuthenticated on success.
func (s *SessionState) SignIn(ctx context.Context, email, password string) (*User, error) {
	user, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.set(StateAuthenticated, user)
	return user, nil
}

// SignOut ends the session. The state becomes anonymous even when the
// server call fails.
func (s *SessionState) SignOut(ctx context.Context) error {
	err := s.client.Logout(ctx)
	s.set(StateAnonymous, nil)
	return err
}

// set stores the new state and notifies subscribers when it changed.
func (s *SessionState) set(state State, user *User) {
	s.mu.Lock()
	if s.state == state && reflect.DeepEqual(s.user, user) {
		s.mu.Unlock()
		return
	}
	s.state = state
	s.user = user
	s.mu.Unlock()

	var u *User
	if user != nil {
		cp := *user
		u = &cp
	}

	s.subMu.Lock()
	fns := make([]func(State, *User), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state, u)
	}
}
