package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal"
)

// FileStorage keeps every scope's records in one JSON document on disk.
// Writes land in memory immediately and are flushed by a debounced
// background worker using an atomic tmp+rename.
type FileStorage struct {
	records   map[string]map[string]json.RawMessage // scope -> key -> raw value
	mu        sync.RWMutex
	path      string
	saveChan  chan struct{}
	shutdown  chan struct{}
	saveDelay time.Duration
	logger    internal.Logger
}

func NewFileStorage(path string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		records:   make(map[string]map[string]json.RawMessage),
		path:      path,
		saveChan:  make(chan struct{}, 1),
		shutdown:  make(chan struct{}),
		saveDelay: 500 * time.Millisecond,
		logger:    logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load %s: %v", path, err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var records map[string]map[string]json.RawMessage
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		// Corrupt data file starts the store empty rather than failing boot.
		s.logger.Warnf("storage: discarding undecodable data file %s: %v", s.path, err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	if s.records == nil {
		s.records = make(map[string]map[string]json.RawMessage)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) save() error {
	s.mu.RLock()
	snapshot := make(map[string]map[string]json.RawMessage, len(s.records))
	for scope, keys := range s.records {
		cp := make(map[string]json.RawMessage, len(keys))
		for k, v := range keys {
			cp[k] = v
		}
		snapshot[scope] = cp
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.path, snapshot)
}

// saveWorker batches save operations to avoid frequent disk writes
func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving records: %v", err)
			}
		case <-s.shutdown:
			return
		}
	}
}

func (s *FileStorage) Load(ctx context.Context, scope, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys, ok := s.records[scope]
	if !ok {
		return nil, ErrNotFound
	}
	v, ok := keys[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *FileStorage) Save(ctx context.Context, scope, key string, value []byte) error {
	s.mu.Lock()
	if s.records[scope] == nil {
		s.records[scope] = make(map[string]json.RawMessage)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.records[scope][key] = cp
	s.mu.Unlock()

	// Signal the save worker (non-blocking)
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
	return nil
}

// Close storage and stop the background worker gracefully
func (s *FileStorage) Close() error {
	close(s.shutdown)
	return s.save()
}

var _ KV = (*FileStorage)(nil)
