// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GenerationDefaults holds per-user defaults for draft generation requests.
// They are read from an optional YAML file and merged into requests where the
// caller left a field unset.
type GenerationDefaults struct {
	Tone            string `yaml:"tone"`
	Region          string `yaml:"region"`
	TargetWordCount int    `yaml:"target_word_count"`
	Research        bool   `yaml:"research"`
	GenerateSocial  bool   `yaml:"generate_social"`
}

// DefaultGenerationDefaults returns the built-in generation defaults.
func DefaultGenerationDefaults() GenerationDefaults {
	return GenerationDefaults{
		Tone:            "professional",
		Region:          "us",
		TargetWordCount: 1500,
		Research:        true,
		GenerateSocial:  true,
	}
}

// LoadGenerationDefaults reads generation defaults from the given YAML file.
// A missing file is not an error and yields the built-in defaults.
func LoadGenerationDefaults(path string) (GenerationDefaults, error) {
	defaults := DefaultGenerationDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("reading defaults file: %w", err)
	}

	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return DefaultGenerationDefaults(), fmt.Errorf("parsing defaults file: %w", err)
	}

	if defaults.TargetWordCount <= 0 {
		defaults.TargetWordCount = DefaultGenerationDefaults().TargetWordCount
	}

	return defaults, nil
}

// SaveGenerationDefaults writes generation defaults to the given YAML file.
func SaveGenerationDefaults(path string, defaults GenerationDefaults) error {
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
