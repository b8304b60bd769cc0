// Package parser manages tree-sitter parsers for the TypeScript and
// JavaScript grammars, with lazy per-language pools for concurrent use.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/util"
)

// poolKey uniquely identifies a parser pool (language + TSX variant).
type poolKey struct {
	lang  Language
	isTSX bool
}

// ParserManager owns the parser pools. Callers own returned Tree instances
// and must call tree.Close() after use; the manager itself must be closed
// via Close() to free pooled parsers.
//
// Safe for concurrent use: pools are created with double-checked locking and
// each pool allows several goroutines to parse the same language at once.
type ParserManager struct {
	pools  map[poolKey]*parserPool
	mutex  sync.RWMutex
	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewParserManager creates a new ParserManager. The returned manager must be
// closed via Close().
func NewParserManager(logger *slog.Logger) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source code with the given grammar. isTSX is only meaningful
// for TypeScript and enables JSX support.
//
// A tree with syntax errors is still returned, since partial trees are
// useful for best-effort extraction; the error state is logged.
func (pm *ParserManager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pm.mutex.Lock()
	pm.stats.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}

	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}

	if tree.RootNode().HasError() {
		pm.logger.Warn("parse tree contains errors", "language", lang.String())
	}

	return tree, nil
}

// ParseFile parses a file's contents, detecting the grammar from its path.
// The returned Tree must be closed by the caller.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return pm.Parse(source, lang, IsTSXFile(filePath))
}

// Close releases all parser pool resources. The manager is unusable after.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing ParserManager", "parses_called", pm.stats.parsesCalled)

	for _, pool := range pm.pools {
		if pool != nil {
			pool.close()
		}
	}
	pm.pools = make(map[poolKey]*parserPool)

	return nil
}

// getOrCreatePool returns an existing pool or creates one, using
// double-checked locking so the fast path stays a read lock.
func (pm *ParserManager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	pm.mutex.RLock()
	pool, exists := pm.pools[key]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	if pool, exists = pm.pools[key]; exists {
		return pool, nil
	}

	langPtr, err := pm.languagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}

	pool = newParserPool(lang, langPtr, isTSX, util.GetOptimalPoolSize(), pm.logger)
	pm.pools[key] = pool

	return pool, nil
}

// languagePointer returns the tree-sitter grammar pointer for a language.
func (pm *ParserManager) languagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	totalParsers := 0
	for _, pool := range pm.pools {
		totalParsers += pool.getCreatedCount()
	}

	return ParserStats{
		ParsersCreated: totalParsers,
		ParsesCalled:   pm.stats.parsesCalled,
	}
}
