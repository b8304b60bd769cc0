// Package docs fetches each component's public documentation page and
// extracts a title, a short description, and code examples.
package docs

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/WilliamPinto-Olmos/prime-vue-mcp/pkg/util"
)

// DefaultBaseURL is the documentation site root. Each component's page lives
// at <base>/<name>/.
const DefaultBaseURL = "https://primevue.org"

// requestDelay separates consecutive requests to the documentation host.
// This is a politeness throttle, not a correctness requirement.
const requestDelay = 300 * time.Millisecond

// Entry holds the documentation extracted for one component.
type Entry struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// Fetcher retrieves documentation pages strictly sequentially.
type Fetcher struct {
	client  *http.Client
	baseURL string
	delay   time.Duration
	log     *slog.Logger
}

// NewFetcher creates a Fetcher against baseURL (DefaultBaseURL when empty).
func NewFetcher(baseURL string, logger *slog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		delay:   requestDelay,
		log:     logger,
	}
}

// FetchAll retrieves documentation for every component, one request at a
// time with a fixed delay between requests. Pages are addressed by the
// lowercase identifier, and results are keyed by that same identifier so
// they join cleanly with the other extractor outputs. Failures (network
// errors, non-2xx status) are logged and the component is skipped; there is
// no retry. Names are visited in sorted order for deterministic logs.
func (f *Fetcher) FetchAll(names []string) map[string]Entry {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	entries := make(map[string]Entry)
	for i, name := range sorted {
		if i > 0 {
			time.Sleep(f.delay)
		}

		entry, err := f.fetchOne(name)
		if err != nil {
			f.log.Warn("documentation fetch failed, skipping", "component", name, "error", err)
			continue
		}
		entries[name] = entry
	}

	f.log.Info("documentation fetch complete", "requested", len(sorted), "fetched", len(entries))
	return entries
}

// fetchOne requests a single component page and extracts its documentation.
func (f *Fetcher) fetchOne(name string) (Entry, error) {
	url := f.baseURL + "/" + name + "/"

	resp, err := f.client.Get(url)
	if err != nil {
		return Entry{}, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Entry{}, fmt.Errorf("request %s: unexpected status %d", url, resp.StatusCode)
	}

	return ParsePage(resp.Body)
}

// ParsePage extracts the first heading as title, the first paragraph as
// description, and every code block whose text contains an angle bracket
// (markup heuristic) as an example.
func ParsePage(r io.Reader) (Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Entry{}, fmt.Errorf("parse html: %w", err)
	}

	var entry Entry
	entry.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	entry.Description = strings.TrimSpace(doc.Find("p").First().Text())

	doc.Find("code").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" || !strings.ContainsAny(text, "<>") {
			return
		}
		entry.Examples = append(entry.Examples, text)
	})

	return entry, nil
}

// NamesFromAPIFile returns the sorted component identifiers keyed in a
// signature extractor output file. The read error is returned unwrapped for
// a missing file, so callers can fall back to directory discovery.
func NamesFromAPIFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// WriteOutput writes the fetched documentation map as one JSON file.
func WriteOutput(path string, entries map[string]Entry) error {
	return util.WriteJSON(path, entries)
}
