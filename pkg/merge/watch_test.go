package merge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherRemergesOnInputChange(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		APIPath: writeJSONFile(t, dir, "api.json", `{"button": {"props": {}}}`),
	}
	out := filepath.Join(dir, "components.json")

	w, err := NewWatcher(in, out, 50*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	// Start runs the initial merge.
	require.FileExists(t, out)

	writeJSONFile(t, dir, "api.json", `{"button": {"props": {}}, "tag": {"props": {}}}`)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		if err != nil {
			return false
		}
		var combined map[string]any
		if err := json.Unmarshal(data, &combined); err != nil {
			return false
		}
		_, ok := combined["tag"]
		return ok
	}, 3*time.Second, 25*time.Millisecond)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		APIPath: writeJSONFile(t, dir, "api.json", `{"button": {}}`),
	}
	out := filepath.Join(dir, "components.json")

	w, err := NewWatcher(in, out, 50*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	info, err := os.Stat(out)
	require.NoError(t, err)

	writeJSONFile(t, dir, "unrelated.json", `{"x": 1}`)
	time.Sleep(300 * time.Millisecond)

	after, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{APIPath: writeJSONFile(t, dir, "api.json", `{}`)}

	w, err := NewWatcher(in, filepath.Join(dir, "out.json"), 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
