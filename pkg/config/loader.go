package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Load reads a Directory from a JSON file, applying defaults for absent
// keys and validating the result.
func Load(fs afero.Fs, path string) (*Directory, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	d := Defaults()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return d, nil
}
