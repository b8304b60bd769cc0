// FileCache provides read-only file access backed by memory-mapped files.
//
// The token and signature extractors read hundreds of small theme/declaration
// files in a single pass; mmap avoids copying each file into the heap and
// lets the OS page data in on demand. If mmap fails for a file (permissions,
// special filesystems), the cache transparently falls back to os.ReadFile.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache caches file contents keyed by path. Safe for concurrent use:
// reads share an RWMutex, loads take the write lock with double-checking.
type FileCache interface {
	// ReadAll returns the full contents of the file at path, loading and
	// mapping it on first access.
	ReadAll(path string) ([]byte, error)

	// Size returns the number of currently cached files.
	Size() int

	// Stats returns cumulative cache metrics.
	Stats() FileCacheStats

	// Close unmaps all files and releases descriptors. The cache must not
	// be used after Close.
	Close() error
}

// FileCacheStats tracks cache behavior for logging at shutdown.
type FileCacheStats struct {
	FilesLoaded  int64
	CacheHits    int64
	MmapFailures int64
}

// NewFileCache creates an empty FileCache. If logger is nil, slog.Default()
// is used.
func NewFileCache(logger *slog.Logger) FileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &fileCache{
		mapped:   make(map[string]mappedFile),
		fallback: make(map[string][]byte),
		logger:   logger,
	}
}

type mappedFile struct {
	data mmap.MMap
	file *os.File
}

type fileCache struct {
	mu       sync.RWMutex
	mapped   map[string]mappedFile
	fallback map[string][]byte
	logger   *slog.Logger

	statsMu sync.Mutex
	stats   FileCacheStats
}

func (fc *fileCache) ReadAll(path string) ([]byte, error) {
	fc.mu.RLock()
	if mf, ok := fc.mapped[path]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return mf.data, nil
	}
	if data, ok := fc.fallback[path]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return data, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock.
	if mf, ok := fc.mapped[path]; ok {
		fc.recordHit()
		return mf.data, nil
	}
	if data, ok := fc.fallback[path]; ok {
		fc.recordHit()
		return data, nil
	}

	return fc.loadLocked(path)
}

// loadLocked opens and maps a file. Must be called holding mu.
func (fc *fileCache) loadLocked(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	// Zero-byte files cannot be mapped.
	if stat.Size() == 0 {
		f.Close()
		fc.fallback[path] = nil
		fc.recordLoad()
		return nil, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, falling back to ReadFile", "file", path, "error", err)
		f.Close()

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap and fallback read failed for %q: %w", path, readErr)
		}
		fc.fallback[path] = raw
		fc.recordMmapFailure()
		fc.recordLoad()
		return raw, nil
	}

	fc.mapped[path] = mappedFile{data: data, file: f}
	fc.recordLoad()
	return data, nil
}

func (fc *fileCache) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.mapped) + len(fc.fallback)
}

func (fc *fileCache) Stats() FileCacheStats {
	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	return fc.stats
}

func (fc *fileCache) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var firstErr error
	for path, mf := range fc.mapped {
		if err := mf.data.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmap %q: %w", path, err)
		}
		if err := mf.file.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %q: %w", path, err)
		}
	}
	fc.mapped = make(map[string]mappedFile)
	fc.fallback = make(map[string][]byte)

	return firstErr
}

func (fc *fileCache) recordHit() {
	fc.statsMu.Lock()
	fc.stats.CacheHits++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordLoad() {
	fc.statsMu.Lock()
	fc.stats.FilesLoaded++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordMmapFailure() {
	fc.statsMu.Lock()
	fc.stats.MmapFailures++
	fc.statsMu.Unlock()
}
