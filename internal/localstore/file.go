package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"simplemarket/internal/logger"

	"go.uber.org/zap"
)

// FileStore is the persistent scope: one JSON file holding the whole key
// set, rewritten on every mutation. Mutations are flushed synchronously so
// a restart observes the last completed operation.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFileStore loads the store from path. A missing or unparsable file
// yields an empty store; corruption is logged and otherwise ignored.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.values); err != nil {
		logger.L().Warn("discarding corrupt state file",
			zap.String("path", path),
			zap.Error(err),
		)
		s.values = make(map[string]string)
	}

	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flush()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return s.flush()
}

// flush writes via a temp file and rename so a crash mid-write cannot
// leave a half-written state file. Caller holds the lock.
func (s *FileStore) flush() error {
	raw, err := json.Marshal(s.values)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
