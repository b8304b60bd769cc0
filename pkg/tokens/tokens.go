// Package tokens collects design-token lookup calls from the compiled theme
// packages and maps each dotted token path to a CSS-variable-style key.
package tokens

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/util"
)

// TokenMap maps a generated `--p-` key to a placeholder value reproducing
// the originating lookup call.
type TokenMap map[string]string

// dtCallRe matches dt('some.dotted.path') lookup calls with either quote
// style.
var dtCallRe = regexp.MustCompile(`dt\(\s*['"]([^'"]+)['"]\s*\)`)

// scriptExtensions are the file types scanned for lookup calls. Everything
// else, including source maps, is skipped.
var scriptExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
}

// Extractor walks theme package roots and collects token lookups.
type Extractor struct {
	fc  util.FileCache
	log *slog.Logger
}

// NewExtractor creates a token extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{fc: util.NewFileCache(logger), log: logger}
}

// Run walks every root in order and collects all dt() lookups. Tokens are
// library-global: on key collision the match from the later-visited file
// wins (last-write-wins across the full visit order). Unreadable roots or
// files are logged and skipped, never fatal.
func (e *Extractor) Run(roots []string, excludes []string) (TokenMap, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	tokens := make(TokenMap)
	filesScanned := 0

	for _, root := range roots {
		files, err := discoverScriptFiles(root, excludes)
		if err != nil {
			e.log.Warn("failed to walk theme root, skipping", "root", root, "error", err)
			continue
		}

		for _, path := range files {
			data, err := e.fc.ReadAll(path)
			if err != nil {
				e.log.Warn("failed to read theme file, skipping", "file", path, "error", err)
				continue
			}
			ExtractInto(tokens, string(data))
			filesScanned++
		}
	}

	e.log.Info("token extraction complete", "files", filesScanned, "tokens", len(tokens))
	return tokens, nil
}

// ExtractInto scans one file's text and merges its lookups into tokens,
// overwriting existing keys.
func ExtractInto(tokens TokenMap, source string) {
	for _, m := range dtCallRe.FindAllStringSubmatch(source, -1) {
		tokens[Key(m[1])] = m[0]
	}
}

// Key converts a dotted token path into its CSS-variable-style key:
// `--p-` prefix, dots replaced with hyphens.
func Key(path string) string {
	return "--p-" + strings.ReplaceAll(path, ".", "-")
}

// discoverScriptFiles walks root collecting script files in deterministic
// directory order, skipping source maps, non-script files, and anything
// matching an exclude pattern.
func discoverScriptFiles(root string, excludes []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve theme root: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // keep walking past unreadable entries
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range excludes {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".map") {
			return nil
		}
		if !scriptExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Close releases the file cache.
func (e *Extractor) Close() {
	e.fc.Close()
}

// WriteOutput writes the token map as one JSON file.
func WriteOutput(path string, tokens TokenMap) error {
	return util.WriteJSON(path, tokens)
}
