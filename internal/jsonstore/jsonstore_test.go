package jsonstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCollection(t *testing.T) *Collection[entry] {
	t.Helper()
	c, err := NewCollection(filepath.Join(t.TempDir(), "entries.json"),
		func(e entry) string { return e.ID })
	require.NoError(t, err)
	return c
}

func TestNewCollection_InitializesEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "entries.json")
	c, err := NewCollection(path, func(e entry) string { return e.ID })
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	list, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCollection_CRUD(t *testing.T) {
	t.Parallel()

	c := newTestCollection(t)

	require.NoError(t, c.Insert(entry{ID: "1", Name: "first"}))
	require.NoError(t, c.Insert(entry{ID: "2", Name: "second"}))

	got, ok, err := c.Get("1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)

	updated, ok, err := c.Replace("1", func(e *entry) { e.Name = "renamed" })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "renamed", updated.Name)

	removed, ok, err := c.Delete("2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", removed.Name)

	list, err := c.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "renamed", list[0].Name)
}

func TestCollection_InsertDuplicateID(t *testing.T) {
	t.Parallel()

	c := newTestCollection(t)
	require.NoError(t, c.Insert(entry{ID: "1"}))
	assert.Error(t, c.Insert(entry{ID: "1"}))
}

func TestCollection_MissingID(t *testing.T) {
	t.Parallel()

	c := newTestCollection(t)

	_, ok, err := c.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Replace("nope", func(e *entry) {})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Delete("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Concurrent writers must not lose each other's updates; the
// per-collection mutex serializes the read-modify-write cycle.
func TestCollection_ConcurrentInserts(t *testing.T) {
	t.Parallel()

	c := newTestCollection(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Insert(entry{ID: fmt.Sprintf("id-%d", i)}))
		}(i)
	}
	wg.Wait()

	list, err := c.List()
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestNextTimestampID_Monotonic(t *testing.T) {
	t.Parallel()

	seen := make(map[int64]bool)
	prev := int64(0)
	for i := 0; i < 1000; i++ {
		id := NextTimestampID()
		assert.Greater(t, id, prev)
		assert.False(t, seen[id])
		seen[id] = true
		prev = id
	}
}
