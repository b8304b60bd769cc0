package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool holds reusable tree-sitter parsers for one grammar.
//
// Parsers are created lazily up to maxSize. acquire blocks once the pool is
// exhausted, so concurrent callers never exceed maxSize live parsers.
type parserPool struct {
	pool    chan *ts.Parser
	langPtr unsafe.Pointer
	lang    Language
	isTSX   bool
	maxSize int

	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

func newParserPool(lang Language, langPtr unsafe.Pointer, isTSX bool, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		lang:    lang,
		isTSX:   isTSX,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns a parser from the pool, creating one if below maxSize.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
		return p.createOrWait()
	}
}

func (p *parserPool) createOrWait() (*ts.Parser, error) {
	p.mutex.Lock()

	if p.created < p.maxSize {
		parser := ts.NewParser()
		if parser == nil {
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to create parser")
		}
		if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
			parser.Close()
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to set language: %w", err)
		}

		p.created++
		p.logger.Debug("created parser in pool",
			"language", p.lang.String(), "isTSX", p.isTSX, "pool_size", p.created)

		p.mutex.Unlock()
		return parser, nil
	}

	// Pool at capacity; wait for a release.
	p.mutex.Unlock()
	return <-p.pool, nil
}

// release returns a parser to the pool for reuse.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.pool <- parser:
	default:
		// Pool full; close the excess parser rather than leak it.
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "language", p.lang.String())
	}
}

// close drains and closes every pooled parser. The pool is unusable after.
func (p *parserPool) close() {
	close(p.pool)
	for parser := range p.pool {
		if parser != nil {
			parser.Close()
		}
	}
}

func (p *parserPool) getCreatedCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
