// Package namedmutex implements a process-wide named mutex, grounded on
// original_source/rs-core/ipc.hpp/ipc.cpp's NamedMutex: the lock name is
// hashed into a filesystem path (the original uses SHA-256 via sem_open
// on POSIX / CreateMutexW on Windows), and here that path is locked with
// github.com/gofrs/flock -- an flock(2)-backed advisory file lock, the
// pack's own such dependency (pulled in transitively by moby-moby),
// taking the place of sem_open the way the original intends a single
// named OS primitive per unique name.
package namedmutex

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/joeycumines/go-rscore/digest"
)

// NamedMutex is a process-wide (and, if dir is on a shared filesystem,
// machine-wide) mutex identified by name. Two NamedMutex values
// constructed with the same name and dir lock against each other even
// across separate processes.
type NamedMutex struct {
	name string
	path string
	fl   *flock.Flock
}

// New derives a lock-file path from name (via digest.SHA256Hex, matching
// ipc.cpp's `path = '/' + hex(Sha256()(name))`) under dir, and returns a
// NamedMutex ready to lock. dir must already exist; an empty dir uses
// os.TempDir().
func New(name string, dir string) (*NamedMutex, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, digest.SHA256Hex([]byte(name))+".lock")
	return &NamedMutex{name: name, path: path, fl: flock.New(path)}, nil
}

// Name returns the original name the mutex was constructed with,
// matching NamedMutex::name.
func (m *NamedMutex) Name() string { return m.name }

// Lock blocks until the mutex is acquired, matching NamedMutex::lock.
func (m *NamedMutex) Lock() error {
	return m.fl.Lock()
}

// TryLock attempts to acquire the mutex without blocking, matching
// NamedMutex::try_lock.
func (m *NamedMutex) TryLock() (bool, error) {
	return m.fl.TryLock()
}

// TryLockFor attempts to acquire the mutex, retrying until d elapses,
// matching NamedMutex::try_lock_for's poll-with-backoff fallback (used
// by the original on platforms without sem_timedwait).
func (m *NamedMutex) TryLockFor(d time.Duration) (bool, error) {
	if d <= 0 {
		return m.TryLock()
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return m.fl.TryLockContext(ctx, time.Millisecond)
}

// Unlock releases the mutex, matching NamedMutex::unlock.
func (m *NamedMutex) Unlock() error {
	return m.fl.Unlock()
}
