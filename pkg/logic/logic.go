// Package logic surfaces implementation signals from component source with
// plain pattern matching. It is a deliberately best-effort heuristic layer:
// matches are recorded in order of first appearance and deduplicated, and no
// attempt is made to understand the surrounding code. Plain-JS sources are
// parsed once only to warn when syntax errors may leave the matches
// incomplete.
package logic

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/parser"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/scanner"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/util"
)

// Signals holds the pattern-matched implementation signals for one
// component. Every slice preserves first-seen order with duplicates removed.
type Signals struct {
	Composables []string `json:"composables,omitempty"`
	VueImports  []string `json:"vueImports,omitempty"`
	Methods     []string `json:"methods,omitempty"`
	Emits       []string `json:"emits,omitempty"`
}

// Empty reports whether no signal of any category was found.
func (s Signals) Empty() bool {
	return len(s.Composables) == 0 && len(s.VueImports) == 0 &&
		len(s.Methods) == 0 && len(s.Emits) == 0
}

var (
	composableRe = regexp.MustCompile(`\buse[A-Z]\w*`)
	methodRe     = regexp.MustCompile(`\b([A-Za-z_$][A-Za-z0-9_$]*)\s*\([^)]*\)\s*\{`)
	emitRe       = regexp.MustCompile(`\bemit\(\s*['"]([^'"]+)['"]`)
)

// vuePrimitives is the fixed whitelist of reactivity primitives searched for
// in component source.
var vuePrimitives = []string{
	"ref",
	"reactive",
	"computed",
	"watch",
	"watchEffect",
	"toRefs",
	"provide",
	"inject",
	"nextTick",
	"onMounted",
	"onBeforeMount",
	"onUpdated",
	"onBeforeUnmount",
	"onUnmounted",
}

// primitiveRe matches bare occurrences of the whitelisted identifiers, so
// both import lists and call sites count as a sighting.
var primitiveRe = regexp.MustCompile(`\b(` + joinAlternatives(vuePrimitives) + `)\b`)

// reservedMethodNames are never reported as declared methods.
var reservedMethodNames = map[string]bool{
	"setup":  true,
	"render": true,
}

// Extract pattern-matches one component's raw source text.
func Extract(source string) Signals {
	var sig Signals

	sig.Composables = dedupe(composableRe.FindAllString(source, -1))

	var prims []string
	for _, m := range primitiveRe.FindAllStringSubmatch(source, -1) {
		prims = append(prims, m[1])
	}
	sig.VueImports = dedupe(prims)

	var methods []string
	for _, m := range methodRe.FindAllStringSubmatch(source, -1) {
		name := m[1]
		if reservedMethodNames[name] {
			continue
		}
		methods = append(methods, name)
	}
	sig.Methods = dedupe(methods)

	var emits []string
	for _, m := range emitRe.FindAllStringSubmatch(source, -1) {
		emits = append(emits, m[1])
	}
	sig.Emits = dedupe(emits)

	return sig
}

// Extractor scans per-component implementation files.
type Extractor struct {
	fc  util.FileCache
	pm  *parser.ParserManager
	log *slog.Logger
}

// NewExtractor creates a logic extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		fc:  util.NewFileCache(logger),
		pm:  parser.NewParserManager(logger),
		log: logger,
	}
}

// Run extracts signals for every component directory under rootDir.
// For each component the implementation file is resolved as
// <dir>/<Pascal>.vue, else <dir>/<Pascal>.js; first found wins.
// Components with no implementation file or no matches at all are omitted.
func (e *Extractor) Run(rootDir string, excludes []string) (map[string]Signals, error) {
	dirs, err := scanner.DiscoverComponents(rootDir, excludes)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Signals)
	for _, dir := range dirs {
		source, ok := e.readImplementation(rootDir, dir.Name)
		if !ok {
			continue
		}
		sig := Extract(source)
		if sig.Empty() {
			continue
		}
		out[dir.Name] = sig
	}

	e.log.Info("logic extraction complete", "components", len(out))
	return out, nil
}

// readImplementation resolves and reads a component's implementation file.
func (e *Extractor) readImplementation(rootDir, name string) (string, bool) {
	display := scanner.DisplayName(name)
	candidates := []string{
		filepath.Join(rootDir, name, display+".vue"),
		filepath.Join(rootDir, name, display+".js"),
	}

	for _, path := range candidates {
		data, err := e.fc.ReadAll(path)
		if err == nil {
			if strings.HasSuffix(path, ".js") {
				e.checkSyntax(path, data)
			}
			return string(data), true
		}
		if !errors.Is(err, fs.ErrNotExist) {
			e.log.Warn("failed to read implementation file", "file", path, "error", err)
		}
	}
	return "", false
}

// checkSyntax parses a plain-JS implementation and warns when the grammar
// reports errors. The pattern matching still runs over the raw text; this
// only flags sources where its results may be incomplete.
func (e *Extractor) checkSyntax(path string, source []byte) {
	tree, err := e.pm.ParseFile(source, path)
	if err != nil {
		e.log.Warn("failed to parse implementation file", "file", path, "error", err)
		return
	}
	defer tree.Close()

	if tree.RootNode().HasError() {
		e.log.Warn("implementation has syntax errors, signals may be incomplete", "file", path)
	}
}

// Close releases the file cache and parser resources.
func (e *Extractor) Close() {
	e.fc.Close()
	e.pm.Close()
}

// WriteOutput writes the extracted signal map as one JSON file.
func WriteOutput(path string, signals map[string]Signals) error {
	return util.WriteJSON(path, signals)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func joinAlternatives(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "|"
		}
		out += regexp.QuoteMeta(n)
	}
	return out
}
