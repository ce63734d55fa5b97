package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source        string `yaml:"source"`
	TradebookPath string `yaml:"tradebook_path"`
	Exchange      string `yaml:"exchange"`
	Workers       int    `yaml:"workers"`
	OutputDir     string `yaml:"output_dir"`
	Sectors       struct {
		Live   bool              `yaml:"live"`
		Static map[string]string `yaml:"static"`
	} `yaml:"sectors"`
	Benchmark struct {
		Enabled bool   `yaml:"enabled"`
		Source  string `yaml:"source"` // KITE or YAHOO
		Symbol  string `yaml:"symbol"` // Yahoo ticker, e.g. ^NSEI
		Token   int    `yaml:"token"`  // Kite instrument token
		From    string `yaml:"from"`
		To      string `yaml:"to"`
	} `yaml:"benchmark"`
}

func (c *Config) Validate() error {
	if c.Source != "CSV" && c.Source != "KITE" {
		return fmt.Errorf("invalid source '%s': must be 'CSV' or 'KITE'", c.Source)
	}
	if c.Source == "CSV" && c.TradebookPath == "" {
		return errors.New("tradebook_path cannot be empty when source is 'CSV'")
	}
	if c.Exchange != "NSE" && c.Exchange != "BSE" {
		return fmt.Errorf("invalid exchange '%s': must be 'NSE' or 'BSE'", c.Exchange)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Benchmark.Enabled {
		switch c.Benchmark.Source {
		case "KITE":
			if c.Benchmark.Token == 0 {
				return errors.New("benchmark.token cannot be empty when benchmark source is 'KITE'")
			}
		case "YAHOO":
			if c.Benchmark.Symbol == "" {
				return errors.New("benchmark.symbol cannot be empty when benchmark source is 'YAHOO'")
			}
		default:
			return fmt.Errorf("invalid benchmark source '%s': must be 'KITE' or 'YAHOO'", c.Benchmark.Source)
		}
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Source == "" {
		c.Source = "CSV"
	}
	if c.Exchange == "" {
		c.Exchange = "NSE"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Benchmark.Enabled && c.Benchmark.Source == "" {
		c.Benchmark.Source = "YAHOO"
	}
	if c.Benchmark.Enabled && c.Benchmark.Source == "YAHOO" && c.Benchmark.Symbol == "" {
		c.Benchmark.Symbol = "^NSEI"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
