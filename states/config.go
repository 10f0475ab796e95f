package states

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/eventx/cond"
)

// Config is the serialized form of a string-keyed Switch: the state set,
// the initial state, and per-state entry conditions (by name) and allowed
// transition targets.
type Config struct {
	ID      string                 `json:"id" yaml:"id"`
	Version string                 `json:"version,omitempty" yaml:"version,omitempty"`
	Initial string                 `json:"initial" yaml:"initial"`
	States  map[string]StateConfig `json:"states" yaml:"states"`
}

// StateConfig configures a single state. Requires lists named conditions
// that must hold to enter the state; the names are resolved by Build.
// Allowed lists the permitted transition targets; empty means any.
type StateConfig struct {
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	Allowed  []string `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

// Validate checks the configuration:
// - Non-empty ID and Initial
// - Initial exists in States
// - All allowed transition targets exist in States
// - No orphaned states (all reachable from Initial via allowed edges)
func (c *Config) Validate() error {
	if c.ID == "" {
		return errors.New("switch ID is required")
	}
	if c.Initial == "" {
		return errors.New("initial state is required")
	}
	if len(c.States) == 0 {
		return errors.New("states map is required and cannot be empty")
	}
	if _, ok := c.States[c.Initial]; !ok {
		return fmt.Errorf("initial state %q not found in states", c.Initial)
	}

	for name, state := range c.States {
		for i, target := range state.Allowed {
			if _, ok := c.States[target]; !ok {
				return fmt.Errorf("invalid transition target %q (state %q, allowed %d)", target, name, i)
			}
		}
	}

	// An empty Allowed list means edges to every state, so one unrestricted
	// state makes everything reachable.
	visited := make(map[string]bool)
	c.markReachable(c.Initial, visited)
	for name := range c.States {
		if !visited[name] {
			return fmt.Errorf("orphaned state %q (not reachable from initial %q)", name, c.Initial)
		}
	}

	return nil
}

func (c *Config) markReachable(name string, visited map[string]bool) {
	if visited[name] {
		return
	}
	visited[name] = true

	state := c.States[name]
	if len(state.Allowed) == 0 {
		for next := range c.States {
			c.markReachable(next, visited)
		}
		return
	}
	for _, next := range state.Allowed {
		c.markReachable(next, visited)
	}
}

// Parse decodes a YAML (or JSON, a YAML subset) configuration and validates
// it.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return c, nil
}

// Load reads and validates a configuration file. Files ending in .json are
// decoded as JSON, everything else as YAML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if filepath.Ext(path) == ".json" {
		var c Config
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("json unmarshal: %w", err)
		}
		if err := c.Validate(); err != nil {
			return Config{}, fmt.Errorf("config validation: %w", err)
		}
		return c, nil
	}
	return Parse(data)
}

// Build validates the configuration and constructs the Switch it describes,
// resolving each Requires name through conds. Every named condition must be
// present in conds.
func (c Config) Build(conds map[string]cond.Condition) (*Switch[string], error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	rest := make([]string, 0, len(c.States)-1)
	for name := range c.States {
		if name != c.Initial {
			rest = append(rest, name)
		}
	}
	sw := New(c.Initial, rest...)

	for name, state := range c.States {
		for _, req := range state.Requires {
			cnd, ok := conds[req]
			if !ok {
				return nil, fmt.Errorf("state %q requires unknown condition %q", name, req)
			}
			if err := sw.Require(name, cnd); err != nil {
				return nil, err
			}
		}
		if len(state.Allowed) > 0 {
			if err := sw.Allow(name, state.Allowed...); err != nil {
				return nil, err
			}
		}
	}

	return sw, nil
}
