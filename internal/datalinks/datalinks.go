// Package datalinks loads the data-links configuration: named external
// endpoints, dataset-to-domain mappings, and contract schemas. The file is
// YAML and decoded strictly, so an unrecognized key fails the load instead
// of being silently dropped.
package datalinks

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultEndpointName is the endpoint the oracle client resolves when no
// name is given.
const DefaultEndpointName = "scoutgpt_analysis"

// Config is the parsed data-links file.
type Config struct {
	Endpoints []Endpoint `yaml:"endpoints"`
	Datasets  []Dataset  `yaml:"datasets"`
	Contracts []Contract `yaml:"contracts"`
}

// Endpoint names an external HTTP endpoint.
type Endpoint struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Method string `yaml:"method"`
}

// Dataset maps a postgres table to its domain purpose.
type Dataset struct {
	Table       string `yaml:"table"`
	Domain      string `yaml:"domain"`
	Description string `yaml:"description"`
}

// Contract describes the field schema of an exchange with an external
// service. Schema values are type descriptors keyed by field name.
type Contract struct {
	Name   string            `yaml:"name"`
	Input  map[string]string `yaml:"input"`
	Output map[string]string `yaml:"output"`
}

// Load reads and validates the data-links file at path. An empty path
// yields the built-in default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data links file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a data-links document. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing data links: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the zero-file configuration: a single local oracle
// endpoint and no dataset or contract entries.
func Default() *Config {
	return &Config{
		Endpoints: []Endpoint{
			{Name: DefaultEndpointName, URL: "http://localhost:9000/analyze", Method: "POST"},
		},
	}
}

// Validate checks structural invariants: unique endpoint names, every
// endpoint carrying a URL, unique dataset tables and contract names.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, ep := range c.Endpoints {
		if ep.Name == "" {
			return fmt.Errorf("endpoint %d: name is required", i)
		}
		if ep.URL == "" {
			return fmt.Errorf("endpoint %q: url is required", ep.Name)
		}
		if seen[ep.Name] {
			return fmt.Errorf("endpoint %q: duplicate name", ep.Name)
		}
		seen[ep.Name] = true
	}

	tables := make(map[string]bool)
	for i, ds := range c.Datasets {
		if ds.Table == "" {
			return fmt.Errorf("dataset %d: table is required", i)
		}
		if tables[ds.Table] {
			return fmt.Errorf("dataset %q: duplicate table", ds.Table)
		}
		tables[ds.Table] = true
	}

	names := make(map[string]bool)
	for i, ct := range c.Contracts {
		if ct.Name == "" {
			return fmt.Errorf("contract %d: name is required", i)
		}
		if names[ct.Name] {
			return fmt.Errorf("contract %q: duplicate name", ct.Name)
		}
		names[ct.Name] = true
	}
	return nil
}

// Endpoint resolves an endpoint URL by name. An empty or unknown name falls
// back to the default endpoint, then to the first configured endpoint.
func (c *Config) Endpoint(name string) (Endpoint, bool) {
	if name != "" {
		for _, ep := range c.Endpoints {
			if ep.Name == name {
				return ep, true
			}
		}
	}
	for _, ep := range c.Endpoints {
		if ep.Name == DefaultEndpointName {
			return ep, true
		}
	}
	if len(c.Endpoints) > 0 {
		return c.Endpoints[0], true
	}
	return Endpoint{}, false
}

// OverrideEndpoint rewrites the URL of a named endpoint, appending the
// entry when no endpoint carries that name. Environment overrides of the
// oracle endpoint go through here.
func (c *Config) OverrideEndpoint(name, url string) {
	for i, ep := range c.Endpoints {
		if ep.Name == name {
			c.Endpoints[i].URL = url
			return
		}
	}
	c.Endpoints = append(c.Endpoints, Endpoint{Name: name, URL: url, Method: "POST"})
}

// DatasetDomain returns the domain mapping for a table, or "".
func (c *Config) DatasetDomain(table string) string {
	for _, ds := range c.Datasets {
		if ds.Table == table {
			return ds.Domain
		}
	}
	return ""
}

// Contract returns the named contract schema.
func (c *Config) Contract(name string) (Contract, bool) {
	for _, ct := range c.Contracts {
		if ct.Name == name {
			return ct, true
		}
	}
	return Contract{}, false
}

// Hash returns the SHA-256 of the canonical YAML encoding, used to detect
// configuration drift between processes.
func (c *Config) Hash() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
