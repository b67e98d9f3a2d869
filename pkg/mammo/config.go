package mammo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFilterConfig reads a FilterConfig from a YAML file. Fields absent
// from the file keep their default values.
func LoadFilterConfig(path string) (FilterConfig, error) {
	config := DefaultFilterConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading filter config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing filter config: %w", err)
	}
	return config, nil
}

// WriteFilterConfig serializes a FilterConfig to a YAML file
func WriteFilterConfig(path string, config FilterConfig) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding filter config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing filter config: %w", err)
	}
	return nil
}
