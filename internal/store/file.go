package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// FileStore keeps all saved resumes in one JSON document on disk. Writes go
// through a temp file and rename so readers never see a half-written file.
// When watching is enabled the store reloads after external edits, debounced
// because editors fire several events per save.
type FileStore struct {
	path    string
	logger  *errors.Logger
	mu      sync.RWMutex
	records map[string]types.SavedResume

	watcher  *fsnotify.Watcher
	debounce time.Duration
	reload   *time.Timer
	done     chan struct{}
}

// NewFileStore opens (or creates) the backing file and optionally starts the
// change watcher.
func NewFileStore(cfg *config.StorageConfig, logger *errors.Logger) (*FileStore, error) {
	s := &FileStore{
		path:     cfg.Path,
		logger:   logger,
		records:  make(map[string]types.SavedResume),
		debounce: cfg.DebounceDelay,
		done:     make(chan struct{}),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		if err := s.startWatcher(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.records = make(map[string]types.SavedResume)
		return nil
	}
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to read resume store", err)
	}

	var records []types.SavedResume
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return errors.NewStorageError(errors.ErrCodeStoreFailed,
				"Resume store file is corrupt", err)
		}
	}

	s.records = make(map[string]types.SavedResume, len(records))
	for _, r := range records {
		s.records[r.ID] = r
	}
	return nil
}

// flushLocked writes the full record set atomically. Caller holds mu.
func (s *FileStore) flushLocked() error {
	records := make([]types.SavedResume, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to encode resume store", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to create storage directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".resumes-*.json")
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to stage resume store write", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to write resume store", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to write resume store", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to replace resume store", err)
	}
	return nil
}

// List returns the user's resumes ordered by recency.
func (s *FileStore) List(ctx context.Context, userID string) ([]types.SavedResume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.SavedResume, 0)
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Save upserts a record for its user. A missing id is assigned; an existing
// id is updated in place. Saving an id owned by another user is not-found.
func (s *FileStore) Save(ctx context.Context, record types.SavedResume) (types.SavedResume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	} else if existing, ok := s.records[record.ID]; !ok || existing.UserID != record.UserID {
		return types.SavedResume{}, notFoundError(record.ID)
	}
	record.UpdatedAt = time.Now().UTC()

	previous, hadPrevious := s.records[record.ID]
	s.records[record.ID] = record
	if err := s.flushLocked(); err != nil {
		// Keep memory consistent with the file on a failed write.
		if hadPrevious {
			s.records[record.ID] = previous
		} else {
			delete(s.records, record.ID)
		}
		return types.SavedResume{}, err
	}
	return record, nil
}

// Delete removes the user's record. Unknown or foreign ids are not-found.
func (s *FileStore) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok || existing.UserID != userID {
		return notFoundError(id)
	}

	delete(s.records, id)
	if err := s.flushLocked(); err != nil {
		s.records[id] = existing
		return err
	}
	return nil
}

// Close stops the watcher, if any.
func (s *FileStore) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *FileStore) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to start storage watcher", err)
	}
	// Watch the directory, not the file: the atomic rename replaces the
	// file inode, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to watch storage directory", err)
	}
	s.watcher = watcher

	go s.watchLoop()
	return nil
}

func (s *FileStore) watchLoop() {
	base := filepath.Base(s.path)
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.scheduleReload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Storage watcher error", "error", err)
		}
	}
}

func (s *FileStore) scheduleReload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reload != nil {
		s.reload.Stop()
	}
	s.reload = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.loadLocked(); err != nil {
			s.logger.Warn("Failed to reload resume store after external change", "error", err)
			return
		}
		s.logger.Debug("Reloaded resume store after external change",
			"path", s.path, "records", len(s.records))
	})
}
