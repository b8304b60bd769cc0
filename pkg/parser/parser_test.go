package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, LanguageTypeScript, DetectLanguage("index.d.ts"))
	assert.Equal(t, LanguageTypeScript, DetectLanguage("Button.tsx"))
	assert.Equal(t, LanguageJavaScript, DetectLanguage("style.mjs"))
	assert.Equal(t, LanguageJavaScript, DetectLanguage("Button.js"))
	assert.Equal(t, LanguageUnknown, DetectLanguage("README.md"))
}

func TestParseTypeScript(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	tree, err := pm.Parse([]byte(`export interface ButtonProps { label?: string; }`), LanguageTypeScript, false)
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, "program", tree.RootNode().Kind())
	assert.False(t, tree.RootNode().HasError())
}

func TestParseJavaScript(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	tree, err := pm.Parse([]byte(`const x = dt('button.gap');`), LanguageJavaScript, false)
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
}

func TestParseReturnsPartialTreeOnSyntaxError(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	tree, err := pm.Parse([]byte(`export interface {{{`), LanguageTypeScript, false)
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.RootNode().HasError())
}

func TestParseFileDetectsGrammar(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	tree, err := pm.ParseFile([]byte("export {};"), "index.d.ts")
	require.NoError(t, err)
	defer tree.Close()
	assert.False(t, tree.RootNode().HasError())

	_, err = pm.ParseFile([]byte("# readme"), "README.md")
	assert.Error(t, err)
}

func TestParserPoolReuse(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	for i := 0; i < 10; i++ {
		tree, err := pm.Parse([]byte("export {};"), LanguageTypeScript, false)
		require.NoError(t, err)
		tree.Close()
	}

	stats := pm.GetStats()
	assert.LessOrEqual(t, stats.ParsersCreated, 10)
	assert.GreaterOrEqual(t, stats.ParsersCreated, 1)
}
