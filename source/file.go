package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile loads a single site profile from a YAML file and applies
// defaults. Returns an error if the file is missing, unparseable, or carries
// an invalid pattern -- a profile is required input, unlike optional
// configuration.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}

	if p.BaseURL == "" {
		return nil, fmt.Errorf("profile is missing base_url")
	}
	if p.ListingURL == "" {
		return nil, fmt.Errorf("profile is missing listing_url")
	}

	if err := p.ApplyDefaults(); err != nil {
		return nil, err
	}

	return &p, nil
}
