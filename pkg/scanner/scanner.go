package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/parser"
	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/util"
)

// Scanner runs signature extraction over a PrimeVue components directory.
type Scanner struct {
	pm  *parser.ParserManager
	fc  util.FileCache
	log *slog.Logger
}

// NewScanner creates a scanner with its own parser manager and file cache.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		pm:  parser.NewParserManager(logger),
		fc:  util.NewFileCache(logger),
		log: logger,
	}
}

// Run discovers component directories under rootDir and extracts each one's
// prop/emit/slot signatures in parallel. Components without a declaration
// file are skipped silently; a file that fails to parse yields empty maps
// for that component only. No error here is fatal to the batch.
func (s *Scanner) Run(rootDir string, cfg ExtractConfig) (map[string]ComponentAPI, *ExtractStats, error) {
	start := time.Now()
	stats := &ExtractStats{}

	dirs, err := DiscoverComponents(rootDir, cfg.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("discovery failed: %w", err)
	}
	stats.DirsDiscovered = len(dirs)

	s.log.Info("component discovery complete", "dirs", len(dirs))

	numWorkers := util.GetOptimalPoolSizeWithOverride(cfg.Workers)
	if numWorkers > len(dirs) {
		numWorkers = len(dirs)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan ComponentDir, numWorkers*2)
	results := make(chan extraction, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for dir := range jobs {
				results <- s.extractOne(dir)
			}
		}()
	}

	go func() {
		for _, d := range dirs {
			jobs <- d
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	apis := make(map[string]ComponentAPI)
	for r := range results {
		switch {
		case r.failed:
			stats.FilesFailed++
		case !r.parsed:
			stats.FilesSkipped++
		default:
			stats.FilesParsed++
			apis[r.name] = r.api
		}
	}

	stats.DurationMs = time.Since(start).Milliseconds()
	s.log.Info("signature extraction complete",
		"components", len(apis),
		"skipped", stats.FilesSkipped,
		"failed", stats.FilesFailed,
		"ms", stats.DurationMs)

	return apis, stats, nil
}

// extraction is the per-component result passed between workers and Run.
type extraction struct {
	name   string
	api    ComponentAPI
	parsed bool
	failed bool
}

func (s *Scanner) extractOne(dir ComponentDir) (r extraction) {
	r.name = dir.Name

	source, err := s.fc.ReadAll(dir.DeclPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r // no declaration file: skipped silently
		}
		s.log.Warn("failed to read declaration file", "file", dir.DeclPath, "error", err)
		r.failed = true
		return r
	}

	tree, err := s.pm.Parse(source, parser.LanguageTypeScript, false)
	if err != nil {
		// Parse failure yields empty maps for this component only.
		s.log.Warn("failed to parse declaration file", "file", dir.DeclPath, "error", err)
		r.parsed = true
		return r
	}
	defer tree.Close()

	// Declaration interfaces are prefixed with the PascalCase display name
	// even though the output stays keyed by the directory identifier.
	r.api = ExtractSignatures(tree.RootNode(), source, DisplayName(dir.Name))
	r.parsed = true
	return r
}

// Close releases parser and file cache resources.
func (s *Scanner) Close() {
	s.pm.Close()
	s.fc.Close()
}

// WriteOutput writes the extracted signature map as one JSON file.
func WriteOutput(path string, apis map[string]ComponentAPI) error {
	return util.WriteJSON(path, apis)
}
