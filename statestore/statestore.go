// Package statestore implements a JSON-persisted key/value store with
// channel-triggered autosave. It has no original_source counterpart --
// it's a supplemented feature (see SPEC_FULL.md §6.2 and DESIGN.md):
// spec.md's note that a persistent state layer takes "any Wait-satisfying
// channel" as its autosave trigger names the boundary; this package fills
// in a concrete implementation of that boundary collaborator, in the
// teacher's idiom (functional options, an async watch loop shaped like
// dispatch.runAsync's 1-second poll-and-check loop, github.com/stretchr/
// testify tests).
package statestore

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/joeycumines/go-rscore/channel"
	"github.com/joeycumines/go-rscore/internal/rslog"
)

// Store is an in-memory key/value map of json.RawMessage values,
// persisted as a single JSON object file. All read/write access is
// synchronized; persistence is explicit (Save) or driven by Watch.
type Store struct {
	path string
	log  rslog.Logger

	mu     sync.RWMutex
	values map[string]json.RawMessage
	dirty  bool

	watchOnce sync.Once
	stopWatch chan struct{}
	watchDone chan struct{}
}

// Option configures a Store at construction.
type Option func(*Store)

// WithLogger attaches a structured logger (see internal/rslog), used to
// report autosave errors from Watch. The default is a no-op logger.
func WithLogger(log rslog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open loads path into a new Store if it exists, or starts empty if it
// doesn't. path's parent directory must already exist.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, values: make(map[string]json.RawMessage), log: rslog.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get unmarshals the value stored under key into out. ok is false if key
// is absent.
func (s *Store) Get(key string, out any) (ok bool, err error) {
	s.mu.RLock()
	raw, present := s.values[key]
	s.mu.RUnlock()
	if !present {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

// Set marshals value and stores it under key, marking the store dirty.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = raw
	s.dirty = true
	s.mu.Unlock()
	return nil
}

// Delete removes key, marking the store dirty if it was present.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	if _, present := s.values[key]; present {
		delete(s.values, key)
		s.dirty = true
	}
	s.mu.Unlock()
}

// Keys returns the current set of keys, in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// Dirty reports whether any Set/Delete has happened since the last Save.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Save persists the current contents to path, atomically (write to a
// temp file, then rename), and clears the dirty flag. A no-op if
// nothing has changed since the last Save.
func (s *Store) Save() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.dirty = false
	s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Watch starts a background goroutine that calls Save every time trigger
// becomes ready, until Close is called. trigger is typically a
// channel.TimerChannel or channel.ThrottleChannel (any channel.Wait
// works); Watch itself owns no clock. Calling Watch more than once on
// the same Store is a no-op beyond the first call.
func (s *Store) Watch(trigger channel.Wait) {
	s.watchOnce.Do(func() {
		s.stopWatch = make(chan struct{})
		s.watchDone = make(chan struct{})
		go s.watchLoop(trigger)
	})
}

func (s *Store) watchLoop(trigger channel.Wait) {
	defer close(s.watchDone)
	for {
		select {
		case <-s.stopWatch:
			return
		default:
		}
		if !trigger.WaitFor(time.Second) {
			continue
		}
		if err := s.Save(); err != nil {
			s.log.Error().Err(err).Log("statestore: autosave failed")
		}
	}
}

// Close stops any running Watch loop (waiting for it to exit) and
// performs a final Save.
func (s *Store) Close() error {
	if s.stopWatch != nil {
		close(s.stopWatch)
		<-s.watchDone
	}
	return s.Save()
}
