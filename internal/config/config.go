// Package config holds the query defaults and loads optional YAML overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dvdk01/trove-counter/internal/schema"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint = "http://api.trove.nla.gov.au/v2/result"
	DefaultZone     = "newspaper"
	DefaultKey      = "ju3rgk0jp354ikmh"
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = 10 * time.Second

	// KeyEnv overrides the API key from the file and the default.
	KeyEnv = "TROVE_API_KEY"
)

var ErrUnknownVariant = errors.New("unknown variant")

type Config struct {
	Endpoint string           `yaml:"endpoint"`
	Zone     string           `yaml:"zone"`
	Key      string           `yaml:"key"`
	Interval time.Duration    `yaml:"interval"`
	Timeout  time.Duration    `yaml:"timeout"`
	Variants []schema.Variant `yaml:"variants"`
}

func Default() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Zone:     DefaultZone,
		Key:      DefaultKey,
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		Variants: []schema.Variant{
			{Name: "corrections", Predicate: "has:corrections", Verb: "corrected"},
			{Name: "tags", Predicate: "has:tags", Verb: "tagged"},
		},
	}
}

// Load returns the defaults overlaid with the file at path, if path is set,
// and with the key from the environment. File variants replace built-in
// variants of the same name and are appended otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.merge(file)
	}

	if key := os.Getenv(KeyEnv); key != "" {
		cfg.Key = key
	}

	return cfg, nil
}

func (c *Config) merge(file Config) {
	if file.Endpoint != "" {
		c.Endpoint = file.Endpoint
	}
	if file.Zone != "" {
		c.Zone = file.Zone
	}
	if file.Key != "" {
		c.Key = file.Key
	}
	if file.Interval != 0 {
		c.Interval = file.Interval
	}
	if file.Timeout != 0 {
		c.Timeout = file.Timeout
	}

	for _, v := range file.Variants {
		replaced := false
		for i := range c.Variants {
			if c.Variants[i].Name == v.Name {
				c.Variants[i] = v
				replaced = true
				break
			}
		}
		if !replaced {
			c.Variants = append(c.Variants, v)
		}
	}
}

// Query is the base query shared by all variants; the predicate is left empty.
func (c *Config) Query() schema.Query {
	return schema.Query{
		Endpoint: c.Endpoint,
		Zone:     c.Zone,
		Encoding: "json",
		PageSize: 0,
		Key:      c.Key,
	}
}

func (c *Config) Variant(name string) (schema.Variant, error) {
	for _, v := range c.Variants {
		if v.Name == name {
			return v, nil
		}
	}
	return schema.Variant{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownVariant, name, c.VariantNames())
}

func (c *Config) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for _, v := range c.Variants {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	return names
}
