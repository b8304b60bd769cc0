package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Key ---

func TestKey(t *testing.T) {
	assert.Equal(t, "--p-button-primary-background", Key("button.primary.background"))
	assert.Equal(t, "--p-surface-0", Key("surface.0"))
	assert.Equal(t, "--p-radius", Key("radius"))
}

// --- ExtractInto ---

func TestExtractIntoBothQuoteStyles(t *testing.T) {
	tokens := make(TokenMap)
	ExtractInto(tokens, `
		background: dt('button.primary.background');
		color: dt("button.primary.color");
	`)

	require.Len(t, tokens, 2)
	assert.Equal(t, "dt('button.primary.background')", tokens["--p-button-primary-background"])
	assert.Equal(t, `dt("button.primary.color")`, tokens["--p-button-primary-color"])
}

func TestExtractIntoLastWriteWins(t *testing.T) {
	tokens := make(TokenMap)
	ExtractInto(tokens, `dt('tag.gap')`)
	ExtractInto(tokens, `dt("tag.gap")`)

	require.Len(t, tokens, 1)
	assert.Equal(t, `dt("tag.gap")`, tokens["--p-tag-gap"])
}

func TestExtractIntoIgnoresNonLookups(t *testing.T) {
	tokens := make(TokenMap)
	ExtractInto(tokens, `const dt = (path) => path; update(value); dt(variable);`)
	assert.Empty(t, tokens)
}

// --- Run ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunWalksRootsInOrder(t *testing.T) {
	themes := t.TempDir()
	library := t.TempDir()
	writeFile(t, themes, "aura/button.js", `dt('button.gap')`)
	writeFile(t, library, "button/style.mjs", `dt("button.gap")`)

	e := NewExtractor(nil)
	defer e.Close()

	tokens, err := e.Run([]string{themes, library}, nil)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	// The later root wins the collision.
	assert.Equal(t, `dt("button.gap")`, tokens["--p-button-gap"])
}

func TestRunSkipsNonScriptFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "style.js", `dt('a.b')`)
	writeFile(t, root, "style.js.map", `dt('c.d')`)
	writeFile(t, root, "readme.md", `dt('e.f')`)

	e := NewExtractor(nil)
	defer e.Close()

	tokens, err := e.Run([]string{root}, nil)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Contains(t, tokens, "--p-a-b")
}

func TestRunSkipsMissingRoot(t *testing.T) {
	present := t.TempDir()
	writeFile(t, present, "theme.ts", `dt('x.y')`)

	e := NewExtractor(nil)
	defer e.Close()

	tokens, err := e.Run([]string{filepath.Join(present, "absent"), present}, nil)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestRunHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "aura/button.js", `dt('button.gap')`)
	writeFile(t, root, "vendor/extra.js", `dt('vendor.gap')`)

	e := NewExtractor(nil)
	defer e.Close()

	tokens, err := e.Run([]string{root}, []string{"vendor/**"})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Contains(t, tokens, "--p-button-gap")
}
