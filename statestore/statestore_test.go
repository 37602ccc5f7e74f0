package statestore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-rscore/channel"
)

func TestSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("count", 42))
	var n int
	ok, err := s.Get("count", &n)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, n)

	s.Delete("count")
	_, ok = s.Get("count", &n)
	assert.False(t, ok)
}

func TestSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("name", "alice"))
	require.True(t, s.Dirty())
	require.NoError(t, s.Save())
	assert.False(t, s.Dirty())

	reopened, err := Open(path)
	require.NoError(t, err)
	var name string
	ok, err := reopened.Get("name", &name)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", name)
}

func TestWatchAutosavesOnTrigger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	trigger := channel.NewQueueChannel[struct{}]()
	s.Watch(trigger)

	require.NoError(t, s.Set("k", "v"))
	trigger.Write(struct{}{})

	require.Eventually(t, func() bool { return !s.Dirty() }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	var v string
	ok, err := reopened.Get("k", &v)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", v)
}
