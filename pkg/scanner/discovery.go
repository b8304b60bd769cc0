package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverComponents lists the component directories under rootDir, applying
// exclude glob patterns to directory names. Returns entries sorted by name
// for deterministic output. Directories whose declaration file is missing
// are still returned; the extractor skips them silently.
func DiscoverComponents(rootDir string, excludes []string) ([]ComponentDir, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read components directory: %w", err)
	}

	var dirs []ComponentDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name[0] == '.' || name[0] == '_' {
			continue
		}

		excluded := false
		for _, pattern := range excludes {
			if matched, _ := doublestar.Match(pattern, name); matched {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		dirs = append(dirs, ComponentDir{
			Name:     name,
			DeclPath: filepath.Join(rootDir, name, "index.d.ts"),
		})
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs, nil
}
