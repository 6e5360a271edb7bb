package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// PrefsStore keeps per-machine display preferences, currently just the theme.
type PrefsStore struct {
	path string
	mu   sync.Mutex
}

type prefs struct {
	Theme string `json:"theme"`
}

func NewPrefsStore(path string) *PrefsStore {
	return &PrefsStore{path: path}
}

func (s *PrefsStore) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.read()
	if err != nil || p.Theme == "" {
		return "light"
	}
	return p.Theme
}

func (s *PrefsStore) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("store: creating state dir: %w", err)
	}
	data, err := json.Marshal(prefs{Theme: theme})
	if err != nil {
		return fmt.Errorf("store: encoding prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("store: writing prefs file: %w", err)
	}
	return nil
}

func (s *PrefsStore) read() (prefs, error) {
	var p prefs
	data, err := os.ReadFile(s.path)
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(data, &p)
	return p, err
}
