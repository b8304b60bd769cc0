package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- pool sizing ---

func TestGetOptimalPoolSizeBounds(t *testing.T) {
	size := GetOptimalPoolSize()
	assert.GreaterOrEqual(t, size, 4)
	assert.LessOrEqual(t, size, 32)
}

func TestGetOptimalPoolSizeWithOverride(t *testing.T) {
	assert.Equal(t, 7, GetOptimalPoolSizeWithOverride(7))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(0))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(-1))
}

// --- WriteJSON ---

func TestWriteJSONCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "data.json")

	require.NoError(t, WriteJSON(path, map[string]int{"a": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded["a"])
}

func TestWriteJSONDeterministicKeyOrder(t *testing.T) {
	dir := t.TempDir()
	v := map[string]string{"b": "2", "a": "1", "c": "3"}

	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, WriteJSON(first, v))
	require.NoError(t, WriteJSON(second, v))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// --- FileCache ---

func TestFileCacheReadAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decl.d.ts")
	require.NoError(t, os.WriteFile(path, []byte("export {};"), 0644))

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "export {};", string(data))
	assert.Equal(t, 1, fc.Size())

	// Second read is a cache hit.
	again, err := fc.ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
	assert.EqualValues(t, 1, fc.Stats().CacheHits)
}

func TestFileCacheMissingFile(t *testing.T) {
	fc := NewFileCache(nil)
	defer fc.Close()

	_, err := fc.ReadAll(filepath.Join(t.TempDir(), "absent.ts"))
	assert.Error(t, err)
}

func TestFileCacheEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.js")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.ReadAll(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileCacheConcurrentReads(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 8)
	for i := range paths {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".js")
		require.NoError(t, os.WriteFile(paths[i], []byte("dt('x.y')"), 0644))
	}

	fc := NewFileCache(nil)
	defer fc.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range paths {
				_, err := fc.ReadAll(p)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(paths), fc.Size())
}
