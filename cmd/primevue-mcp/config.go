package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither a flag nor .primevue-mcp/config.yaml
// provides a value.
const (
	defaultComponentsPath = "node_modules/primevue"
	defaultOutputDir      = "data"
	defaultDatasetPath    = "data/components.json"
	defaultHTTPAddr       = ":3000"
	defaultLogLevel       = "info"
)

var defaultTokenRoots = []string{
	"node_modules/@primevue/themes",
	"node_modules/primevue",
}

// ProjectConfig holds the contents of .primevue-mcp/config.yaml.
type ProjectConfig struct {
	ComponentsPath string   `yaml:"components_path"`
	TokenRoots     []string `yaml:"token_roots"`
	OutputDir      string   `yaml:"output_dir"`
	DatasetPath    string   `yaml:"dataset_path"`
	DocsBaseURL    string   `yaml:"docs_base_url"`
	HTTPAddr       string   `yaml:"http_addr"`
	MCPLogPath     string   `yaml:"mcp_log_path"`
	Workers        int      `yaml:"workers"`
	LogLevel       string   `yaml:"log_level"`
}

// loadProjectConfig reads .primevue-mcp/config.yaml from the current
// directory. Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".primevue-mcp/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolve applies the fallback chain: explicit flag value, then config
// file value, then the built-in default.
func resolve(flagValue, configValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return fallback
}

func resolveList(flagValues, configValues, fallback []string) []string {
	if len(flagValues) > 0 {
		return flagValues
	}
	if len(configValues) > 0 {
		return configValues
	}
	return fallback
}
