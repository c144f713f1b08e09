package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourcesConfig represents the optional sources.yaml file. It lets operators
// override adapter endpoints or disable a source without a rebuild.
type SourcesConfig struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig overrides one scrape source.
type SourceConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// LoadSources loads the YAML sources file. Returns nil without error if the
// file doesn't exist; the built-in adapter defaults apply.
func LoadSources(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get finds the override for a source by name.
func (c *SourcesConfig) Get(name string) *SourceConfig {
	if c == nil {
		return nil
	}
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i]
		}
	}
	return nil
}
