package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytesSplitsTokens(t *testing.T) {
	data := []byte(`{
		"button": {"title": "Button", "props": {"label": "string"}},
		"_tokens": {"--p-button-gap": "dt('button.gap')"}
	}`)

	ds, err := LoadFromBytes(data)
	require.NoError(t, err)

	assert.Len(t, ds.Components, 1)
	assert.Contains(t, ds.Components, "button")
	assert.NotContains(t, ds.Components, ReservedTokensKey)
	assert.Equal(t, "dt('button.gap')", ds.Tokens["--p-button-gap"])
}

func TestLoadFromBytesRejectsInvalidJSON(t *testing.T) {
	_, err := LoadFromBytes([]byte(`{"button": `))
	assert.Error(t, err)
}

func TestLoadFromBytesRejectsNonObjectRecord(t *testing.T) {
	_, err := LoadFromBytes([]byte(`{"button": ["not", "an", "object"]}`))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tag": {"description": "categorize"}}`), 0644))

	ds, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"tag"}, ds.Names())
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestServiceLazyLoadError(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "absent.json"), nil)

	_, err := svc.ListComponents("")
	assert.Error(t, err)

	// The load error is sticky across queries.
	_, err = svc.GetTokens("")
	assert.Error(t, err)
}
