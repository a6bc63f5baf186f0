package pricing

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is the on-disk price list. Every section is optional; missing
// entries keep the DefaultConfig values.
type Table struct {
	BasePerPage struct {
		BW    *float64 `yaml:"bw"`
		Color *float64 `yaml:"color"`
	} `yaml:"base_per_page"`
	Quality   map[string]float64 `yaml:"quality"`
	Paper     map[string]float64 `yaml:"paper"`
	Binding   map[string]float64 `yaml:"binding_per_copy"`
	Finishing map[string]float64 `yaml:"finishing_flat"`
	Delivery  map[string]float64 `yaml:"delivery_fee"`
}

// LoadTable reads a YAML price table. An empty path or a missing file
// yields DefaultConfig.
func LoadTable(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read price table: %w", err)
	}

	return ParseTable(b)
}

// ParseTable decodes YAML into a Config layered over DefaultConfig.
func ParseTable(b []byte) (Config, error) {
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Config{}, fmt.Errorf("parse price table: %w", err)
	}
	return t.Config()
}

// Config merges the table over DefaultConfig.
func (t Table) Config() (Config, error) {
	cfg := DefaultConfig()

	if t.BasePerPage.BW != nil {
		cfg.BasePerPageBW = *t.BasePerPage.BW
	}
	if t.BasePerPage.Color != nil {
		cfg.BasePerPageColor = *t.BasePerPage.Color
	}

	if err := mergeTable(cfg.Quality, t.Quality, qualities, "quality"); err != nil {
		return Config{}, err
	}
	if err := mergeTable(cfg.Paper, t.Paper, papers, "paper"); err != nil {
		return Config{}, err
	}
	if err := mergeTable(cfg.BindingPerCopy, t.Binding, bindings, "binding_per_copy"); err != nil {
		return Config{}, err
	}
	if err := mergeTable(cfg.FinishingFlat, t.Finishing, finishings, "finishing_flat"); err != nil {
		return Config{}, err
	}
	if err := mergeTable(cfg.DeliveryFee, t.Delivery, deliveries, "delivery_fee"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeTable[K ~string](dst map[K]float64, src map[string]float64, known map[K]bool, section string) error {
	for name, v := range src {
		k := K(name)
		if !known[k] {
			return fmt.Errorf("price table %s: unknown entry %q", section, name)
		}
		if v < 0 {
			return fmt.Errorf("price table %s.%s: negative price", section, name)
		}
		dst[k] = v
	}
	return nil
}
