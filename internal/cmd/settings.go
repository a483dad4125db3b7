// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrParsing reports failures that occur while decoding settings files.
	ErrParsing = errors.New("error parsing")
)

// Settings holds the values configurable through a YAML settings file.
// Explicitly set command line flags take precedence over it.
type Settings struct {
	Name     string            `yaml:"name,omitempty"`
	File     string            `yaml:"file,omitempty"`
	Level    string            `yaml:"level,omitempty"`
	Color    bool              `yaml:"color,omitempty"`
	Rotation *RotationSettings `yaml:"rotation,omitempty"`
}

// RotationSettings holds the rotation limits of the log file.
type RotationSettings struct {
	MaxSizeMB  int `yaml:"maxSizeMB,omitempty"`
	MaxBackups int `yaml:"maxBackups,omitempty"`
	MaxAgeDays int `yaml:"maxAgeDays,omitempty"`
}

// loadSettings reads and decodes the settings file at path.
func loadSettings(path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w settings file %q: %w", ErrParsing, path, err)
	}

	settings := &Settings{}
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("%w settings file %q: %w", ErrParsing, path, err)
	}

	return settings, nil
}
