package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of config.yaml. Everything in it is
// optional; zero values mean "keep the built-in default".
type YAMLConfig struct {
	Parser struct {
		// Aliases maps a logical field (number, hours, stars, price_range)
		// to the ordered list of JSON keys accepted for it.
		Aliases map[string][]string `yaml:"aliases"`
	} `yaml:"parser"`
	Search struct {
		City    string `yaml:"city"`
		Region  string `yaml:"region"`
		Country string `yaml:"country"`
	} `yaml:"search"`
	Conversation struct {
		ContextTurns int `yaml:"context_turns"`
	} `yaml:"conversation"`
}

// LoadYAML loads the optional overlay file. A missing file is not an error.
func LoadYAML(filepath string) (*YAMLConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config YAMLConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing YAML: %v", err)
	}

	return &config, nil
}

// Apply overlays the yaml location values onto the environment-derived config.
func (y *YAMLConfig) Apply(c *Config) {
	if y == nil {
		return
	}
	if y.Search.City != "" {
		c.Search.City = y.Search.City
	}
	if y.Search.Region != "" {
		c.Search.Region = y.Search.Region
	}
	if y.Search.Country != "" {
		c.Search.Country = y.Search.Country
	}
}
