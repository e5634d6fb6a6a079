package store

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, 10*time.Millisecond, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

type prefs struct {
	Query string `json:"query"`
	Tab   int    `json:"tab"`
}

func TestLoadMissingKeepsDefault(t *testing.T) {
	s, _ := newTestStore(t)

	p := prefs{Query: "default", Tab: 2}
	assert.False(t, s.Load("no-such-key", &p))
	assert.Equal(t, prefs{Query: "default", Tab: 2}, p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, dir := newTestStore(t)

	var p prefs
	s.Load("prefs", &p)
	s.Save("prefs", prefs{Query: "rocket", Tab: 1})
	s.Flush()

	// A fresh instance over the same directory sees the value
	s2, err := New(dir, 10*time.Millisecond, nil)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	var back prefs
	require.True(t, s2.Load("prefs", &back))
	assert.Equal(t, prefs{Query: "rocket", Tab: 1}, back)
}

func TestSaveBeforeLoadIsRefused(t *testing.T) {
	s, dir := newTestStore(t)

	s.Save("never-loaded", prefs{Query: "clobber"})
	s.Flush()

	_, err := os.Stat(filepath.Join(dir, "never-loaded.json"))
	assert.True(t, os.IsNotExist(err), "write must not happen before hydration")
}

func TestLoadFailureStillCompletesHydration(t *testing.T) {
	s, dir := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("{not json"), 0644))

	var p prefs
	assert.False(t, s.Load("corrupt", &p))

	// The failed load still unlocks saving
	s.Save("corrupt", prefs{Query: "replacement"})
	s.Flush()

	var back prefs
	require.True(t, s.Load("corrupt", &back))
	assert.Equal(t, "replacement", back.Query)
}

func TestSavesCoalesceToLastValue(t *testing.T) {
	s, _ := newTestStore(t)

	var p prefs
	s.Load("prefs", &p)
	for i := 0; i < 20; i++ {
		s.Save("prefs", prefs{Tab: i})
	}
	s.Flush()

	var back prefs
	require.True(t, s.Load("prefs", &back))
	assert.Equal(t, 19, back.Tab)
}

func TestDebouncedWriteLandsWithoutFlush(t *testing.T) {
	s, dir := newTestStore(t)

	var p prefs
	s.Load("prefs", &p)
	s.Save("prefs", prefs{Query: "late"})

	path := filepath.Join(dir, "prefs.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)

	var p prefs
	s.Load("prefs", &p)
	s.Save("prefs", prefs{Query: "x"})
	s.Flush()
	require.True(t, s.Has("prefs"))

	s.Delete("prefs")
	assert.False(t, s.Has("prefs"))

	// A pending write for the key is cancelled too
	s.Save("prefs", prefs{Query: "y"})
	s.Delete("prefs")
	s.Flush()
	assert.False(t, s.Has("prefs"))
}

func TestSubscribeSeesExternalChange(t *testing.T) {
	s, dir := newTestStore(t)

	var fired atomic.Int32
	s.Subscribe("shared", func() { fired.Add(1) })

	// Simulate another process writing the key directly
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.json"), []byte(`{"tab":3}`), 0644))

	require.Eventually(t, func() bool {
		return fired.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscribeIgnoresOwnWrites(t *testing.T) {
	s, _ := newTestStore(t)

	var fired atomic.Int32
	s.Subscribe("mine", func() { fired.Add(1) })

	var p prefs
	s.Load("mine", &p)
	s.Save("mine", prefs{Tab: 1})
	s.Flush()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load(), "own writes must not echo back")
}

func TestUnsubscribe(t *testing.T) {
	s, dir := newTestStore(t)

	var fired atomic.Int32
	unsub := s.Subscribe("shared", func() { fired.Add(1) })
	unsub()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.json"), []byte(`{}`), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestUnsubscribeOutOfOrder(t *testing.T) {
	s, dir := newTestStore(t)

	var aFired, bFired, cFired atomic.Int32
	unsubA := s.Subscribe("shared", func() { aFired.Add(1) })
	unsubB := s.Subscribe("shared", func() { bFired.Add(1) })
	s.Subscribe("shared", func() { cFired.Add(1) })

	// Removing an earlier subscriber must not invalidate a later one's handle
	unsubA()
	unsubB()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.json"), []byte(`{}`), 0644))

	require.Eventually(t, func() bool {
		return cFired.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(0), aFired.Load())
	assert.Equal(t, int32(0), bFired.Load())
}

func TestCloseFlushesPending(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, time.Hour, nil)
	require.NoError(t, err)

	var p prefs
	s.Load("prefs", &p)
	s.Save("prefs", prefs{Query: "persisted"})
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, "prefs.json"))
	assert.NoError(t, err, "Close must flush writes still inside the debounce window")
}
