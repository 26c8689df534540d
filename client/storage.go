package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenStorage persists the refresh credentials across process restarts, the
// way a browser app would use localStorage.
type TokenStorage interface {
	Load() (TokenPair, error)
	Save(pair TokenPair) error
	Clear() error
}

// MemoryStorage keeps tokens for the lifetime of the process.
type MemoryStorage struct {
	mu   sync.Mutex
	pair TokenPair
	set  bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return TokenPair{}, nil
	}
	return s.pair, nil
}

func (s *MemoryStorage) Save(pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.set = true
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
	s.set = false
	return nil
}

// FileStorage writes the token pair as JSON to one file with user-only
// permissions.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStorage{path: path}, nil
}

func (s *FileStorage) Load() (TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return TokenPair{}, nil
		}
		return TokenPair{}, fmt.Errorf("read token storage: %w", err)
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		// A corrupt file behaves like an empty one; the session just
		// requires a fresh login.
		return TokenPair{}, nil
	}
	return pair, nil
}

func (s *FileStorage) Save(pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token storage: %w", err)
	}
	return nil
}

func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear token storage: %w", err)
	}
	return nil
}
