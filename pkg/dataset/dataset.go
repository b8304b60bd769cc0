package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFromFile reads and decodes a merged dataset file.
func LoadFromFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	ds, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadFromBytes decodes a merged dataset document. The reserved token key
// is pulled out into Dataset.Tokens; every other top-level key is a
// component record and must decode to a JSON object.
func LoadFromBytes(data []byte) (*Dataset, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid dataset JSON: %w", err)
	}

	ds := &Dataset{
		Components: make(map[string]map[string]any, len(raw)),
		Tokens:     make(map[string]string),
	}

	for name, msg := range raw {
		if name == ReservedTokensKey {
			if err := json.Unmarshal(msg, &ds.Tokens); err != nil {
				return nil, fmt.Errorf("invalid token map: %w", err)
			}
			continue
		}
		var record map[string]any
		if err := json.Unmarshal(msg, &record); err != nil {
			return nil, fmt.Errorf("component %q: record is not an object: %w", name, err)
		}
		ds.Components[name] = record
	}

	return ds, nil
}
