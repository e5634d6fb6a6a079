// Package store is the persistent key-value layer. Each key is a JSON file
// in a data directory; writes are debounced and coalesced, and external
// changes to the directory (another fluentdeck process) are pushed to
// subscribers via fsnotify.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a write is held back waiting for more writes
const DefaultDebounce = 300 * time.Millisecond

// selfWriteWindow suppresses watcher events caused by our own writes
const selfWriteWindow = time.Second

// pendingWrite holds the latest serialized value for a key while its
// debounce timer runs. Only the last value before the timer fires is written.
type pendingWrite struct {
	timer *time.Timer
	data  []byte
}

// Store is a debounced, watchable JSON key-value store
type Store struct {
	dir      string
	debounce time.Duration
	logger   *zap.SugaredLogger

	mu        sync.Mutex
	loaded    map[string]bool
	pending   map[string]*pendingWrite
	selfWrite map[string]time.Time
	subs      map[string]map[uint64]func()
	nextSubID uint64
	closed    bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a store rooted at dir, creating it if needed
func New(dir string, debounce time.Duration, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create store directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create store watcher")
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrap(err, "watch store directory")
	}

	s := &Store{
		dir:       dir,
		debounce:  debounce,
		logger:    logger,
		loaded:    make(map[string]bool),
		pending:   make(map[string]*pendingWrite),
		selfWrite: make(map[string]time.Time),
		subs:      make(map[string]map[uint64]func()),
		watcher:   watcher,
		done:      make(chan struct{}),
	}

	go s.watch()

	return s, nil
}

// path maps a key to its backing file
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the value for key into the provided destination. It returns
// false when the key is absent or unreadable; the caller keeps its default
// in that case. Read failures are logged, never propagated.
func (s *Store) Load(key string, into interface{}) bool {
	s.mu.Lock()
	// A load attempt, successful or not, completes hydration for the key
	// so later saves cannot clobber data that was never read.
	s.loaded[key] = true
	s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warnw("store read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, into); err != nil {
		s.logger.Warnw("store value corrupt", "key", key, "error", err)
		return false
	}

	return true
}

// Has reports whether a value is persisted for key without loading it
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Save schedules a debounced write of value under key. Repeated saves within
// the debounce window coalesce; only the last value is written. Saving a key
// that was never loaded is refused to protect persisted data during startup.
func (s *Store) Save(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Errorw("store marshal failed", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if !s.loaded[key] {
		s.logger.Warnw("store save before load ignored", "key", key)
		return
	}

	if pw, ok := s.pending[key]; ok {
		pw.data = data
		pw.timer.Reset(s.debounce)
		return
	}

	pw := &pendingWrite{data: data}
	pw.timer = time.AfterFunc(s.debounce, func() {
		s.flushKey(key)
	})
	s.pending[key] = pw
}

// Delete removes the key's persisted value and any pending write
func (s *Store) Delete(key string) {
	s.mu.Lock()
	if pw, ok := s.pending[key]; ok {
		pw.timer.Stop()
		delete(s.pending, key)
	}
	s.selfWrite[key] = time.Now()
	s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warnw("store delete failed", "key", key, "error", err)
	}
}

// flushKey writes the pending value for key to disk
func (s *Store) flushKey(key string) {
	s.mu.Lock()
	pw, ok := s.pending[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	data := pw.data
	s.selfWrite[key] = time.Now()
	s.mu.Unlock()

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		// In-memory state stays usable; persistence degrades to ephemeral.
		s.logger.Errorw("store write failed", "key", key, "error", err)
	}
}

// Flush forces all pending writes to disk immediately
func (s *Store) Flush() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.pending))
	for key, pw := range s.pending {
		pw.timer.Stop()
		keys = append(keys, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.flushKey(key)
	}
}

// Subscribe registers fn to run when another process changes key.
// Returns an unsubscribe function. Subscriptions are keyed by a monotonic
// id so unsubscribing one never disturbs the others.
func (s *Store) Subscribe(key string, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[key] == nil {
		s.subs[key] = make(map[uint64]func())
	}
	id := s.nextSubID
	s.nextSubID++
	s.subs[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subs[key], id)
	}
}

// Close flushes pending writes best-effort and stops the watcher
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Flush()
	close(s.done)
	return s.watcher.Close()
}

// watch forwards external file changes to subscribers
func (s *Store) watch() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			key := strings.TrimSuffix(name, ".json")
			s.notifyExternal(key)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warnw("store watcher error", "error", err)

		case <-s.done:
			return
		}
	}
}

// notifyExternal invokes subscribers for key unless the change was our own
func (s *Store) notifyExternal(key string) {
	s.mu.Lock()
	if last, ok := s.selfWrite[key]; ok && time.Since(last) < selfWriteWindow {
		s.mu.Unlock()
		return
	}
	subs := make([]func(), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
