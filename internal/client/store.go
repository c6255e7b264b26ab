package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"paintingstore/internal/cart"
	auth "paintingstore/internal/usecase/auth_usecase"
)

// 永続化するクライアント状態
type SessionState struct {
	Token string           `json:"token,omitempty"`
	User  *auth.UserOutput `json:"user,omitempty"`
	Cart  []cart.Line      `json:"cart"`
}

// Sessionの保存先。Loadは起動時に1回、Saveは変更のたび
type SessionStore interface {
	Load() (SessionState, error)
	Save(SessionState) error
}

// JSONファイルに保存する
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ファイルが無い・壊れている場合は空の状態から始める
func (s *FileStore) Load() (SessionState, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return SessionState{}, nil
	}
	if err != nil {
		return SessionState{}, fmt.Errorf("read session: %w", err)
	}

	var st SessionState
	if err := json.Unmarshal(b, &st); err != nil {
		return SessionState{}, nil
	}
	return st, nil
}

// 一時ファイルに書いてからrenameする（途中で落ちても壊れない）
func (s *FileStore) Save(st SessionState) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}

// メモリ上だけで持つ
type MemoryStore struct {
	mu    sync.Mutex
	state SessionState
}

func (s *MemoryStore) Load() (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *MemoryStore) Save(st SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	return nil
}
