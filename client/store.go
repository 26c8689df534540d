package client

import (
	"context"
	"sync"
)

// State is a snapshot of the session.
type State struct {
	User        *User
	AccessToken string
	Loading     bool
}

// Authenticated reports whether the snapshot carries a usable session.
func (s State) Authenticated() bool {
	return s.AccessToken != ""
}

// Listener receives state snapshots after every change.
type Listener func(State)

// Store holds the client-side session state: the current user, the token
// pair, and a loading flag. Mutations go through its methods; subscribers are
// notified after each change. Concurrent mutations resolve last-write-wins.
type Store struct {
	mu        sync.Mutex
	api       *Client
	storage   TokenStorage
	state     State
	refresh   string
	listeners map[int]Listener
	nextID    int
}

// NewStore wires the store to an API client and token storage. The store
// registers itself as the client's token source.
func NewStore(api *Client, storage TokenStorage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{
		api:       api,
		storage:   storage,
		listeners: map[int]Listener{},
	}
	if api != nil {
		api.tokens = s
	}
	return s
}

// AccessToken implements TokenSource.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and returns an unsubscribe func. The
// listener immediately receives the current state.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// notify snapshots listeners under the lock, then calls them outside it so a
// listener can re-enter the store.
func (s *Store) notify() {
	s.mu.Lock()
	current := s.state
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(current)
	}
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setSession(resp AuthResponse) error {
	s.mu.Lock()
	user := resp.User
	s.state.User = &user
	s.state.AccessToken = resp.Tokens.AccessToken
	s.refresh = resp.Tokens.RefreshToken
	s.state.Loading = false
	s.mu.Unlock()
	s.notify()
	return s.storage.Save(resp.Tokens)
}

func (s *Store) clearSession() error {
	s.mu.Lock()
	s.state = State{}
	s.refresh = ""
	s.mu.Unlock()
	s.notify()
	return s.storage.Clear()
}

// Login authenticates and stores the session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.setLoading(false)
		return err
	}
	return s.setSession(resp)
}

// Register creates an account; the server logs the user straight in.
func (s *Store) Register(ctx context.Context, email, password, username string) error {
	s.setLoading(true)
	resp, err := s.api.Register(ctx, email, password, username)
	if err != nil {
		s.setLoading(false)
		return err
	}
	return s.setSession(resp)
}

// Restore rebuilds a session from persisted tokens: it refreshes the pair and
// fetches the profile. A failure clears both memory and storage so a stale
// session cannot linger.
func (s *Store) Restore(ctx context.Context) error {
	pair, err := s.storage.Load()
	if err != nil {
		return err
	}
	if pair.RefreshToken == "" {
		return nil
	}

	s.setLoading(true)
	resp, err := s.api.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		s.clearSession()
		return err
	}
	return s.setSession(resp)
}

// FetchUser re-reads the profile. Without a token it is a no-op; any fetch
// failure tears the session down so the app never renders a half-dead session.
func (s *Store) FetchUser(ctx context.Context) error {
	if s.AccessToken() == "" {
		return nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.clearSession()
		return err
	}

	s.mu.Lock()
	s.state.User = &user
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateProfile pushes profile changes and refreshes the cached user.
func (s *Store) UpdateProfile(ctx context.Context, fields map[string]any) error {
	user, err := s.api.UpdateProfile(ctx, fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.User = &user
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout notifies the server best-effort, then unconditionally drops the
// session. The server holds no session state, so a failed round trip changes
// nothing; tokens simply stop being presented.
func (s *Store) Logout(ctx context.Context) error {
	if s.api != nil && s.AccessToken() != "" {
		_ = s.api.Logout(ctx)
	}
	return s.clearSession()
}
