// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a declarative connection descriptor a collaborator (the
// bundled CLI, or a caller's own settings store) may load from disk and
// pass to Connect. The core never reads this file itself, which keeps
// CLI/config concerns out of the core's public operations.
type Profile struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	TLS          bool   `yaml:"tls"`
	TerminalType string `yaml:"terminal_type"`
	LUName       string `yaml:"lu_name"`
}

// LoadProfile reads and parses a YAML connection profile, applying
// defaults before unmarshaling so a sparse file only overrides the
// fields it sets.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	p := &Profile{
		Port:         23,
		TerminalType: "IBM-3278-2-E",
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	return p, nil
}
