// Package dataset loads the merged component dataset and answers queries
// over it for the HTTP and MCP servers.
package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// ReservedTokensKey is the top-level dataset key holding the design token
// map. It is never a component name and is excluded from every component
// enumeration.
const ReservedTokensKey = "_tokens"

// Section names a merged record may carry. Records are open maps, so
// these are the conventional keys rather than an exhaustive schema.
const (
	SectionTitle       = "title"
	SectionDescription = "description"
	SectionExamples    = "examples"
	SectionProps       = "props"
	SectionEmits       = "emits"
	SectionSlots       = "slots"
	SectionLogic       = "logic"
)

// Dataset is the decoded merged document: component records keyed by the
// lowercase identifier, with the token map split out from the reserved key.
type Dataset struct {
	Components map[string]map[string]any
	Tokens     map[string]string
}

// Names returns the sorted component names. Tokens are already excluded
// because they never enter Components.
func (d *Dataset) Names() []string {
	names := make([]string, 0, len(d.Components))
	for name := range d.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary is the list-view projection of one component record.
type Summary struct {
	Name        string   `json:"name"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	HasProps    bool     `json:"hasProps"`
	HasExamples bool     `json:"hasExamples"`
	Sections    []string `json:"sections"`
}

// ComponentResult is a component lookup answer. Name carries the canonical
// dataset key, which may differ in case from what the caller asked for.
type ComponentResult struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// SearchHit is one full-text search match with the fields it matched on.
// Component hits carry title and description; token hits carry the token
// value and a single "token" match field.
type SearchHit struct {
	Name        string   `json:"name"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Value       string   `json:"value,omitempty"`
	Matches     []string `json:"matches"`
}

// NotFoundError reports an unknown component name together with the valid
// names, so callers can surface suggestions instead of a bare 404.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("component %q not found (%d components available)", e.Name, len(e.Available))
}

// SectionNotFoundError reports a component that exists but lacks the
// requested section.
type SectionNotFoundError struct {
	Component string
	Section   string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("component %q has no section %q (has: %s)",
		e.Component, e.Section, strings.Join(e.Available, ", "))
}

// sectionsOf returns the sorted top-level keys of a record.
func sectionsOf(record map[string]any) []string {
	sections := make([]string, 0, len(record))
	for k := range record {
		sections = append(sections, k)
	}
	sort.Strings(sections)
	return sections
}
