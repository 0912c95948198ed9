package registry

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// DefaultDriver is used for profiles that omit the driver key.
const DefaultDriver = domain.DriverSQLite

type cfgRegistry struct {
	cfg *ini.File
}

// NewProfileRegistry loads data-source profiles from an ini file such as ~/.atlascfg:
//
//	[default]
//	driver = sqlite
//	path   = /data/northwind.db
func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles() ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(profile string) (domain.DataSourceProfile, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return domain.DataSourceProfile{}, fmt.Errorf("profile %s not found", profile)
	}

	path := section.Key("path").String()
	if path == "" {
		return domain.DataSourceProfile{}, fmt.Errorf("profile %s has no path", profile)
	}

	driver := domain.Driver(section.Key("driver").MustString(string(DefaultDriver)))
	return domain.DataSourceProfile{
		Name:   profile,
		Driver: driver,
		Path:   path,
	}, nil
}
