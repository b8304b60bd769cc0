package merge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func testSources() (docs, api, logic map[string]map[string]any, tokens map[string]string) {
	docs = map[string]map[string]any{
		"button": {
			"title":       "Button docs title",
			"description": "From docs",
			"props":       "docs placeholder",
		},
		"tag": {
			"title": "Tag",
		},
	}
	api = map[string]map[string]any{
		"button": {
			"props": map[string]any{"label": "string | undefined"},
			"emits": map[string]any{"click": "(event: MouseEvent) => void"},
		},
		"Carousel": {
			"props": map[string]any{"value": "any[]"},
		},
	}
	logic = map[string]map[string]any{
		"button": {
			"composables": []any{"useStyle"},
		},
	}
	tokens = map[string]string{
		"--p-button-gap": "dt('button.gap')",
	}
	return docs, api, logic, tokens
}

// --- Combine ---

func TestCombineUnionsComponentKeys(t *testing.T) {
	docs, api, logic, tokens := testSources()

	combined := Combine(docs, api, logic, tokens)

	assert.Contains(t, combined, "button")
	assert.Contains(t, combined, "tag")
	assert.Contains(t, combined, "Carousel")
	assert.Contains(t, combined, "_tokens")
	assert.Len(t, combined, 4)
}

func TestCombineSignaturesOverrideDocs(t *testing.T) {
	docs, api, logic, tokens := testSources()

	combined := Combine(docs, api, logic, tokens)

	button := combined["button"].(map[string]any)
	assert.Equal(t, "Button docs title", button["title"])
	assert.Equal(t, map[string]any{"label": "string | undefined"}, button["props"])
	assert.Equal(t, map[string]any{"composables": []any{"useStyle"}}, button["logic"])
}

func TestCombineOmitsLogicWhenAbsent(t *testing.T) {
	docs, api, logic, tokens := testSources()

	combined := Combine(docs, api, logic, tokens)

	tag := combined["tag"].(map[string]any)
	assert.NotContains(t, tag, "logic")
}

func TestCombineOmitsEmptyTokenMap(t *testing.T) {
	docs, api, logic, _ := testSources()

	combined := Combine(docs, api, logic, nil)
	assert.NotContains(t, combined, "_tokens")
}

func TestCombineIsIdempotent(t *testing.T) {
	docs, api, logic, tokens := testSources()

	first, err := json.Marshal(Combine(docs, api, logic, tokens))
	require.NoError(t, err)
	second, err := json.Marshal(Combine(docs, api, logic, tokens))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

// --- Run ---

func writeJSONFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunMergesFiles(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		DocsPath:   writeJSONFile(t, dir, "docs.json", `{"button": {"title": "Button"}}`),
		APIPath:    writeJSONFile(t, dir, "api.json", `{"button": {"props": {"label": "string"}}}`),
		LogicPath:  writeJSONFile(t, dir, "logic.json", `{"button": {"emits": ["click"]}}`),
		TokensPath: writeJSONFile(t, dir, "tokens.json", `{"--p-button-gap": "dt('button.gap')"}`),
	}
	out := filepath.Join(dir, "components.json")

	require.NoError(t, Run(in, out, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var combined map[string]any
	require.NoError(t, json.Unmarshal(data, &combined))

	button := combined["button"].(map[string]any)
	assert.Equal(t, "Button", button["title"])
	assert.Contains(t, button, "props")
	assert.Contains(t, button, "logic")
	assert.Contains(t, combined, "_tokens")
}

func TestRunTreatsMissingInputAsEmpty(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		DocsPath:   filepath.Join(dir, "absent.json"),
		APIPath:    writeJSONFile(t, dir, "api.json", `{"tag": {"props": {}}}`),
		LogicPath:  filepath.Join(dir, "also-absent.json"),
		TokensPath: filepath.Join(dir, "gone.json"),
	}
	out := filepath.Join(dir, "components.json")

	require.NoError(t, Run(in, out, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var combined map[string]any
	require.NoError(t, json.Unmarshal(data, &combined))
	assert.Len(t, combined, 1)
	assert.Contains(t, combined, "tag")
}

func TestRunTreatsMalformedInputAsEmpty(t *testing.T) {
	dir := t.TempDir()
	in := Inputs{
		DocsPath: writeJSONFile(t, dir, "docs.json", `{"button": broken`),
		APIPath:  writeJSONFile(t, dir, "api.json", `{"button": {"props": {}}}`),
	}
	out := filepath.Join(dir, "components.json")

	require.NoError(t, Run(in, out, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var combined map[string]any
	require.NoError(t, json.Unmarshal(data, &combined))

	button := combined["button"].(map[string]any)
	assert.NotContains(t, button, "title")
	assert.Contains(t, button, "props")
}
