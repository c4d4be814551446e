/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"fmt"

	"github.com/ClarkeTj/fuprechess-tdbot/pairing"
	"gopkg.in/yaml.v3"
)

// SystemInfo describes one entry of the pairing systems catalogue.
type SystemInfo struct {
	ID    pairing.SystemID `yaml:"id" json:"id"`
	Name  string           `yaml:"name" json:"name"`
	Rules *pairing.Rules   `yaml:"rules" json:"rules,omitempty"`
}

type Catalogue struct {
	Systems []SystemInfo `yaml:"systems" json:"systems"`
}

// ParseSystems parses the pairing systems catalogue. It is usually
// published as JSON, which the YAML decoder reads as well.
func ParseSystems(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unable to parse pairing systems: %w", err)
	}
	for _, s := range c.Systems {
		if s.ID == "" {
			return nil, fmt.Errorf("unable to parse pairing systems: system %q has no id",
				s.Name)
		}
	}

	return &c, nil
}

func (c *Catalogue) Lookup(id pairing.SystemID) (SystemInfo, bool) {
	if c == nil {
		return SystemInfo{}, false
	}
	for _, s := range c.Systems {
		if s.ID == id {
			return s, true
		}
	}
	return SystemInfo{}, false
}

// DisplayName returns the catalogue name of a system, falling back to the
// engine's own name and finally to the raw id.
func (c *Catalogue) DisplayName(id pairing.SystemID) string {
	if s, ok := c.Lookup(id); ok && s.Name != "" {
		return s.Name
	}
	if sys, err := pairing.GetSystem(id); err == nil {
		return sys.Name()
	}
	return string(id)
}

// ResolveRules returns a copy of t whose rules are the tournament's own, or
// the catalogue's rules for its pairing system when it has none.
func ResolveRules(t *pairing.Tournament, c *Catalogue) *pairing.Tournament {
	out := *t
	if t.Rules != nil {
		rules := *t.Rules
		out.Rules = &rules
		return &out
	}
	if s, ok := c.Lookup(t.PairingSystemID); ok && s.Rules != nil {
		rules := *s.Rules
		out.Rules = &rules
	}

	return &out
}
