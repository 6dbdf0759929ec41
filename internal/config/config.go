// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all tillbook configuration.
type Config struct {
	Contacts Contacts `yaml:"contacts"`
	Billing  Billing  `yaml:"billing"`
	Log      Log      `yaml:"log"`
}

// Contacts holds contact manager settings.
type Contacts struct {
	File        string `yaml:"file"`         // JSON collection path
	MaxAttempts int    `yaml:"max_attempts"` // 0 = re-prompt forever
}

// Billing holds billing tool settings.
type Billing struct {
	StoreName   string  `yaml:"store_name"`
	Location    string  `yaml:"location"`
	TaxRate     float64 `yaml:"tax_rate"`
	Receipt     string  `yaml:"receipt"`      // PDF output path
	Catalog     string  `yaml:"catalog"`      // optional YAML price list; empty = built-in
	Templates   string  `yaml:"templates"`    // optional dir overriding embedded templates
	MaxAttempts int     `yaml:"max_attempts"` // 0 = re-prompt forever
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // debug | info | warn | error
	File  string `yaml:"file"`  // empty disables logging
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Contacts: Contacts{
			File: "contacts.json",
		},
		Billing: Billing{
			StoreName: "SM Super Market",
			Location:  "SRI CITY",
			TaxRate:   0.18,
			Receipt:   "receipt.pdf",
			Templates: ".tillbook/templates",
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Contacts.File == "" {
		return errors.New("config: contacts.file cannot be empty")
	}
	if c.Contacts.MaxAttempts < 0 {
		return fmt.Errorf("config: contacts.max_attempts must be non-negative, got %d", c.Contacts.MaxAttempts)
	}
	if c.Billing.StoreName == "" {
		return errors.New("config: billing.store_name cannot be empty")
	}
	if c.Billing.Receipt == "" {
		return errors.New("config: billing.receipt cannot be empty")
	}
	if c.Billing.TaxRate < 0 || c.Billing.TaxRate > 1 {
		return fmt.Errorf("config: billing.tax_rate must be between 0 and 1, got %v", c.Billing.TaxRate)
	}
	if c.Billing.MaxAttempts < 0 {
		return fmt.Errorf("config: billing.max_attempts must be non-negative, got %d", c.Billing.MaxAttempts)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: TILLBOOK_CONTACTS_FILE, TILLBOOK_RECEIPT,
// TILLBOOK_TAX_RATE, TILLBOOK_LOG_LEVEL, TILLBOOK_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TILLBOOK_CONTACTS_FILE"); v != "" {
		c.Contacts.File = v
	}
	if v := os.Getenv("TILLBOOK_RECEIPT"); v != "" {
		c.Billing.Receipt = v
	}
	if v := os.Getenv("TILLBOOK_TAX_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid TILLBOOK_TAX_RATE %q: %w", v, err)
		}
		c.Billing.TaxRate = r
	}
	if v := os.Getenv("TILLBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TILLBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Contacts *rawContacts `yaml:"contacts"`
	Billing  *rawBilling  `yaml:"billing"`
	Log      *rawLog      `yaml:"log"`
}

type rawContacts struct {
	File        *string `yaml:"file"`
	MaxAttempts *int    `yaml:"max_attempts"`
}

type rawBilling struct {
	StoreName   *string  `yaml:"store_name"`
	Location    *string  `yaml:"location"`
	TaxRate     *float64 `yaml:"tax_rate"`
	Receipt     *string  `yaml:"receipt"`
	Catalog     *string  `yaml:"catalog"`
	Templates   *string  `yaml:"templates"`
	MaxAttempts *int     `yaml:"max_attempts"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if l := layer.Contacts; l != nil {
		setString(&c.Contacts.File, l.File)
		setInt(&c.Contacts.MaxAttempts, l.MaxAttempts)
	}
	if l := layer.Billing; l != nil {
		setString(&c.Billing.StoreName, l.StoreName)
		setString(&c.Billing.Location, l.Location)
		if l.TaxRate != nil {
			c.Billing.TaxRate = *l.TaxRate
		}
		setString(&c.Billing.Receipt, l.Receipt)
		setString(&c.Billing.Catalog, l.Catalog)
		setString(&c.Billing.Templates, l.Templates)
		setInt(&c.Billing.MaxAttempts, l.MaxAttempts)
	}
	if l := layer.Log; l != nil {
		setString(&c.Log.Level, l.Level)
		setString(&c.Log.File, l.File)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
