// Package scanner extracts prop, emit, and slot signatures from PrimeVue
// component type declaration files using tree-sitter.
package scanner

// ComponentAPI holds the signatures extracted from one component's
// declaration file. Maps are nil when the corresponding interface was not
// found: absence means "not observed", not "empty".
type ComponentAPI struct {
	Props map[string]string `json:"props,omitempty"`
	Emits map[string]string `json:"emits,omitempty"`
	Slots map[string]string `json:"slots,omitempty"`
}

// Empty reports whether no signatures at all were extracted.
func (a ComponentAPI) Empty() bool {
	return len(a.Props) == 0 && len(a.Emits) == 0 && len(a.Slots) == 0
}

// ExtractConfig configures the signature extraction run.
type ExtractConfig struct {
	// Exclude glob patterns tested against component directory names.
	Exclude []string
	// Workers overrides the worker count when positive.
	Workers int
}

// DefaultExtractConfig returns the default configuration with the directory
// names that never hold a component declaration file.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		Exclude: []string{
			"base*",
			"ts-helpers",
			"useconfirm",
			"usedialog",
			"usestyle",
			"usetoast",
		},
	}
}

// ExtractStats tracks signature extraction metrics.
type ExtractStats struct {
	DirsDiscovered int   `json:"dirs_discovered"`
	FilesParsed    int   `json:"files_parsed"`
	FilesSkipped   int   `json:"files_skipped"`
	FilesFailed    int   `json:"files_failed"`
	DurationMs     int64 `json:"duration_ms"`
}

// ComponentDir is one discovered component directory with its declaration
// file path.
type ComponentDir struct {
	// Name is the lowercase component identifier (the directory name).
	Name string
	// DeclPath is the expected type declaration file inside the directory.
	DeclPath string
}
