// Package merge deep-combines the four extractor outputs into the single
// dataset document served by the HTTP and MCP servers.
package merge

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/dataset"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/util"
)

// Inputs names the four source files consumed by one merge run.
type Inputs struct {
	APIPath    string
	DocsPath   string
	LogicPath  string
	TokensPath string
}

// Combine builds the merged dataset from the four already-decoded sources.
//
// For the union of component keys across docs, api, and logic (tokens are
// never part of this union), each record is an explicit ordered shallow
// merge: documentation fields first, then signature fields overriding on
// key collision, then (only when present) the logic sub-record nested
// under "logic". A non-empty token map is attached whole under the reserved
// key. Combine is pure: same inputs, same output.
func Combine(
	docs map[string]map[string]any,
	api map[string]map[string]any,
	logic map[string]map[string]any,
	tokens map[string]string,
) map[string]any {
	combined := make(map[string]any)

	for name := range docs {
		combined[name] = nil
	}
	for name := range api {
		combined[name] = nil
	}
	for name := range logic {
		combined[name] = nil
	}

	for name := range combined {
		record := make(map[string]any)
		// Ordered merge contract: later sources win per top-level field.
		copyFields(record, docs[name])
		copyFields(record, api[name])
		if lg, ok := logic[name]; ok {
			record["logic"] = lg
		}
		combined[name] = record
	}

	if len(tokens) > 0 {
		combined[dataset.ReservedTokensKey] = tokens
	}

	return combined
}

func copyFields(dst map[string]any, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

// Run reads the four input files and writes the combined dataset to outPath.
// A missing, unreadable, or malformed input is logged and treated as an
// empty object; every failure mode is skip-and-continue.
func Run(in Inputs, outPath string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	var docs, api, logic map[string]map[string]any
	var tokens map[string]string

	readObject(in.DocsPath, &docs, log)
	readObject(in.APIPath, &api, log)
	readObject(in.LogicPath, &logic, log)
	readObject(in.TokensPath, &tokens, log)

	combined := Combine(docs, api, logic, tokens)
	if err := util.WriteJSON(outPath, combined); err != nil {
		return err
	}

	log.Info("merge complete",
		"components", len(combined)-tokensKeyCount(combined),
		"tokens", len(tokens),
		"out", outPath)
	return nil
}

func tokensKeyCount(combined map[string]any) int {
	if _, ok := combined[dataset.ReservedTokensKey]; ok {
		return 1
	}
	return 0
}

// readObject decodes a JSON object file into out. Missing or malformed
// files leave out empty; both cases are logged and never fatal.
func readObject[T any](path string, out *T, log *slog.Logger) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("input file unreadable, treating as empty", "file", path, "error", err)
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		var zero T
		*out = zero
		log.Warn("input file malformed, treating as empty", "file", path, "error", err)
	}
}
