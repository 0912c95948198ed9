package config

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/services/registry"
)

// ResolveDataSource returns the profile to read sales from. A configured
// registry file takes precedence over the inline driver and path.
func (c DataSourceConfig) ResolveDataSource() (domain.DataSourceProfile, error) {
	if c.Registry == "" {
		return domain.DataSourceProfile{
			Name:   c.Profile,
			Driver: domain.Driver(c.Driver),
			Path:   c.Path,
		}, nil
	}

	profiles, err := registry.NewProfileRegistry(c.Registry)
	if err != nil {
		return domain.DataSourceProfile{}, fmt.Errorf("failed to load profile registry %s: %w", c.Registry, err)
	}
	return profiles.GetProfile(c.Profile)
}
