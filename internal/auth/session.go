package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNoSession means nobody is signed in on this machine.
var ErrNoSession = errors.New("auth: no active session, run `shopctl login` first")

// Session is the locally cached sign-in state, the CLI's stand-in for the
// browser's persisted Firebase auth session.
type Session struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s Session) expired() bool {
	// refresh a minute early so in-flight calls don't race the expiry
	return time.Now().After(s.ExpiresAt.Add(-time.Minute))
}

// SessionStore persists the session to a state file.
type SessionStore struct {
	path string
	mu   sync.Mutex
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

func (s *SessionStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("auth: reading session file: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("auth: corrupt session file: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("auth: creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("auth: writing session file: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("auth: removing session file: %w", err)
	}
	return nil
}

// Manager resolves the current session and keeps its token fresh. It
// implements api.TokenSource.
type Manager struct {
	firebase *Firebase
	store    *SessionStore
	mu       sync.Mutex
}

func NewManager(firebase *Firebase, store *SessionStore) *Manager {
	return &Manager{firebase: firebase, store: store}
}

// Current returns the active session, refreshing the token if needed.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.store.Load()
	if err != nil {
		return Session{}, err
	}
	if !session.expired() {
		return session, nil
	}

	refreshed, err := m.firebase.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return Session{}, err
	}
	// the refresh response has no email/display name, carry them over
	refreshed.Email = session.Email
	refreshed.DisplayName = session.DisplayName
	if err := m.store.Save(refreshed); err != nil {
		return Session{}, err
	}
	return refreshed, nil
}

// Token implements api.TokenSource.
func (m *Manager) Token(ctx context.Context) (string, error) {
	session, err := m.Current(ctx)
	if err != nil {
		return "", err
	}
	return session.IDToken, nil
}
