package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/courtdraw/internal/format"
	"github.com/derekprior/courtdraw/internal/roster"
	"github.com/derekprior/courtdraw/internal/strategy"
)

// List is a roster that may be written in YAML either as a sequence or as
// a block of free text separated by newlines or commas.
type List []string

func (l *List) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = roster.Parse(value.Value)
		return nil
	case yaml.SequenceNode:
		var entries []string
		if err := value.Decode(&entries); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*l = roster.Clean(entries)
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or a block of text", value.Line)
	}
}

type Config struct {
	Mode    strategy.Mode `yaml:"mode"`
	Seed    *int64        `yaml:"seed"`
	Players List          `yaml:"players"`
	Courts  List          `yaml:"courts"`
	Labels  format.Labels `yaml:"labels"`
}

// Default returns a config with no rosters, doubles mode and default labels.
func Default() *Config {
	return &Config{
		Mode:   strategy.Doubles,
		Labels: format.DefaultLabels(),
	}
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Empty rosters are allowed here; the draw itself rejects them.
func (c *Config) validate() error {
	mode, err := strategy.ParseMode(string(c.Mode))
	if err != nil {
		return err
	}
	c.Mode = mode
	c.Labels = c.Labels.WithDefaults()
	if c.Labels.Versus == c.Labels.TeamSeparator {
		return fmt.Errorf("labels: versus and team_separator must differ (both %q)", c.Labels.Versus)
	}
	return nil
}
