package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "loancalc.yaml"

// Config represents the optional loancalc.yaml configuration. Flags given
// on the command line override it.
type Config struct {
	Title   string  `yaml:"title,omitempty"`
	Amount  float64 `yaml:"amount,omitempty"`
	Years   int     `yaml:"years,omitempty"`
	Rate    int     `yaml:"rate,omitempty"`
	Hydrate bool    `yaml:"hydrate,omitempty"`
	Page    string  `yaml:"page,omitempty"`
	// Inputs are typed into the calculator after it mounted, in key order.
	Inputs map[string]string `yaml:"inputs,omitempty"`
}

// LoadOptional reads path, or DefaultFile in dir when path is empty. A
// missing default file yields an empty config; a missing explicit path is
// an error.
func LoadOptional(dir, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return &cfg, nil
}

// Input is one name=value pair typed into the calculator.
type Input struct {
	Name  string
	Value string
}

// ParseInputs parses name=value pairs.
func ParseInputs(pairs []string) ([]Input, error) {
	inputs := make([]Input, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("invalid input %q, want name=value", pair)
		}
		inputs = append(inputs, Input{Name: name, Value: strings.TrimSpace(value)})
	}
	return inputs, nil
}

// SortedInputs returns the configured inputs ordered by name.
func (c *Config) SortedInputs() []Input {
	names := make([]string, 0, len(c.Inputs))
	for name := range c.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	inputs := make([]Input, len(names))
	for i, name := range names {
		inputs[i] = Input{Name: name, Value: c.Inputs[name]}
	}
	return inputs
}
