package parser

import (
	"path/filepath"
	"strings"
)

// Language represents a supported grammar for parsing.
type Language int

const (
	// LanguageTypeScript covers .ts/.mts/.cts and, via the TSX variant, .tsx.
	LanguageTypeScript Language = iota
	// LanguageJavaScript covers .js/.jsx/.mjs/.cjs.
	LanguageJavaScript
	// LanguageUnknown marks an unsupported extension.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the grammar to use from a file path.
// Returns LanguageUnknown if the extension is not recognized.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsTSXFile reports whether the path is a TSX file, which uses the
// TypeScript grammar with JSX support enabled.
func IsTSXFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".tsx"
}
