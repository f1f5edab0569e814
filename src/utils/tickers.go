package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type TickersFile struct {
	Tickers []string `yaml:"tickers"`
}

// LoadTickersFile reads a YAML document of the form
//
//	tickers:
//	  - AAPL
//	  - NVDA
func LoadTickersFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadTickersFile: failed to read %s: %w", path, err)
	}

	var f TickersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("LoadTickersFile: failed to parse %s: %w", path, err)
	}

	if len(f.Tickers) == 0 {
		return nil, fmt.Errorf("LoadTickersFile: no tickers in %s", path)
	}

	return f.Tickers, nil
}
