package registry

import "github.com/de-tools/revenue-atlas/pkg/models/domain"

type ProfileRegistry interface {
	GetProfiles() ([]string, error)
	GetProfile(profile string) (domain.DataSourceProfile, error)
}
