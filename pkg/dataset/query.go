package dataset

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Service answers read-only queries over a merged dataset file. The file
// is loaded lazily on first query and kept in memory for the life of the
// process; servers restart to pick up a regenerated dataset.
type Service struct {
	path   string
	logger *slog.Logger
	cache  *QueryCache

	loadOnce sync.Once
	loadErr  error
	ds       *Dataset
}

// NewService creates a Service over the dataset file at path.
func NewService(path string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		path:   path,
		logger: logger,
		cache:  NewQueryCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// NewServiceWithDataset wraps an already-loaded dataset. Used by tests and
// by callers that build the dataset in-process.
func NewServiceWithDataset(ds *Dataset, logger *slog.Logger) *Service {
	s := NewService("", logger)
	s.ds = ds
	s.loadOnce.Do(func() {})
	return s
}

// Cache exposes the memoization cache for the inspection endpoints.
func (s *Service) Cache() *QueryCache {
	return s.cache
}

func (s *Service) dataset() (*Dataset, error) {
	s.loadOnce.Do(func() {
		ds, err := LoadFromFile(s.path)
		if err != nil {
			s.loadErr = err
			return
		}
		s.ds = ds
		s.logger.Info("dataset loaded",
			"file", s.path,
			"components", len(ds.Components),
			"tokens", len(ds.Tokens))
	})
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.ds, nil
}

// ComponentCount returns the number of component records.
func (s *Service) ComponentCount() (int, error) {
	ds, err := s.dataset()
	if err != nil {
		return 0, err
	}
	return len(ds.Components), nil
}

// ListComponents returns summaries for every component, sorted by name.
// A non-empty keyword filters case-insensitively against the component
// name, title, and description.
func (s *Service) ListComponents(keyword string) ([]Summary, error) {
	cacheKey := "list:" + strings.ToLower(keyword)
	if hit, ok := s.cache.Get(cacheKey); ok {
		return hit.([]Summary), nil
	}

	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	summaries := make([]Summary, 0, len(ds.Components))
	for _, name := range ds.Names() {
		record := ds.Components[name]
		title := stringField(record, SectionTitle)
		desc := stringField(record, SectionDescription)

		if needle != "" &&
			!strings.Contains(strings.ToLower(name), needle) &&
			!strings.Contains(strings.ToLower(title), needle) &&
			!strings.Contains(strings.ToLower(desc), needle) {
			continue
		}

		summaries = append(summaries, Summary{
			Name:        name,
			Title:       title,
			Description: desc,
			HasProps:    nonEmptySection(record, SectionProps),
			HasExamples: nonEmptySection(record, SectionExamples),
			Sections:    sectionsOf(record),
		})
	}

	s.cache.Add(cacheKey, summaries)
	return summaries, nil
}

// GetComponent looks up one component record. The lookup is exact first,
// then case-insensitive. A non-empty section narrows the result to that
// single top-level field. Unknown names return a *NotFoundError carrying
// the valid names; unknown sections return a *SectionNotFoundError.
func (s *Service) GetComponent(name, section string) (*ComponentResult, error) {
	cacheKey := "component:" + strings.ToLower(name) + ":" + section
	if hit, ok := s.cache.Get(cacheKey); ok {
		return hit.(*ComponentResult), nil
	}

	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	canonical, record, ok := lookup(ds, name)
	if !ok {
		return nil, &NotFoundError{Name: name, Available: ds.Names()}
	}

	data := record
	if section != "" {
		value, ok := record[section]
		if !ok {
			return nil, &SectionNotFoundError{
				Component: canonical,
				Section:   section,
				Available: sectionsOf(record),
			}
		}
		data = map[string]any{section: value}
	}

	result := &ComponentResult{Name: canonical, Data: data}
	s.cache.Add(cacheKey, result)
	return result, nil
}

// GetTokens returns design tokens, optionally filtered by a
// case-insensitive substring match on the token name or value.
func (s *Service) GetTokens(query string) (map[string]string, error) {
	cacheKey := "tokens:" + strings.ToLower(query)
	if hit, ok := s.cache.Get(cacheKey); ok {
		return hit.(map[string]string), nil
	}

	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	if query == "" {
		s.cache.Add(cacheKey, ds.Tokens)
		return ds.Tokens, nil
	}

	needle := strings.ToLower(query)
	filtered := make(map[string]string)
	for name, value := range ds.Tokens {
		if strings.Contains(strings.ToLower(name), needle) ||
			strings.Contains(strings.ToLower(value), needle) {
			filtered[name] = value
		}
	}

	s.cache.Add(cacheKey, filtered)
	return filtered, nil
}

// Search runs a case-insensitive full-text search across component names,
// titles, descriptions, signature member names, logic signals, example
// text, and the design token map. Each hit reports which fields matched;
// token hits follow the component hits, one per matching token. The query
// must be non-empty; callers validate before reaching here, so an empty
// query is an error rather than a full scan.
func (s *Service) Search(query string) ([]SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}

	cacheKey := "search:" + strings.ToLower(query)
	if hit, ok := s.cache.Get(cacheKey); ok {
		return hit.([]SearchHit), nil
	}

	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	hits := make([]SearchHit, 0)
	for _, name := range ds.Names() {
		record := ds.Components[name]
		matches := matchFields(name, record, needle)
		if len(matches) == 0 {
			continue
		}
		hits = append(hits, SearchHit{
			Name:        name,
			Title:       stringField(record, SectionTitle),
			Description: stringField(record, SectionDescription),
			Matches:     matches,
		})
	}

	tokenKeys := make([]string, 0, len(ds.Tokens))
	for key := range ds.Tokens {
		tokenKeys = append(tokenKeys, key)
	}
	sort.Strings(tokenKeys)
	for _, key := range tokenKeys {
		value := ds.Tokens[key]
		if !strings.Contains(strings.ToLower(key), needle) &&
			!strings.Contains(strings.ToLower(value), needle) {
			continue
		}
		hits = append(hits, SearchHit{
			Name:    key,
			Value:   value,
			Matches: []string{"token"},
		})
	}

	s.cache.Add(cacheKey, hits)
	return hits, nil
}

// lookup resolves a component name, exact match first, then a
// case-insensitive scan in sorted order so ties resolve deterministically.
func lookup(ds *Dataset, name string) (string, map[string]any, bool) {
	if record, ok := ds.Components[name]; ok {
		return name, record, true
	}
	lower := strings.ToLower(name)
	for _, candidate := range ds.Names() {
		if strings.ToLower(candidate) == lower {
			return candidate, ds.Components[candidate], true
		}
	}
	return "", nil, false
}

// matchFields returns the sorted field names of record that contain the
// lowercased needle.
func matchFields(name string, record map[string]any, needle string) []string {
	matched := make(map[string]bool)

	if strings.Contains(strings.ToLower(name), needle) {
		matched["name"] = true
	}

	for field, value := range record {
		switch v := value.(type) {
		case string:
			if strings.Contains(strings.ToLower(v), needle) {
				matched[field] = true
			}
		case map[string]any:
			// Covers signature sections keyed by member name and the
			// logic sub-record whose values are signal name lists.
			for k, nested := range v {
				if strings.Contains(strings.ToLower(k), needle) {
					matched[field] = true
					break
				}
				if items, ok := nested.([]any); ok && anyStringContains(items, needle) {
					matched[field] = true
					break
				}
			}
		case []any:
			if anyStringContains(v, needle) {
				matched[field] = true
			}
		}
	}

	fields := make([]string, 0, len(matched))
	for f := range matched {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func anyStringContains(items []any, needle string) bool {
	for _, item := range items {
		if str, ok := item.(string); ok && strings.Contains(strings.ToLower(str), needle) {
			return true
		}
	}
	return false
}

func stringField(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}

func nonEmptySection(record map[string]any, key string) bool {
	switch v := record[key].(type) {
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return false
	}
}
