package app

import (
	"fmt"
	"time"

	"tableflip.dev/phoneshell/pkg/apps"
)

// InstallDelay is how long an install takes in the interactive shell.
const InstallDelay = 2500 * time.Millisecond

// Listing is one row of the marketplace.
type Listing struct {
	apps.Entry `yaml:",inline"`
	Installed  bool `json:"installed" yaml:"installed"`
	Installing bool `json:"installing,omitempty" yaml:"installing,omitempty"`
}

// Marketplace lists the whole catalogue with install state.
func (s *Service) Marketplace() []Listing {
	all := s.Home.Catalog().All()
	out := make([]Listing, 0, len(all))
	for _, e := range all {
		out = append(out, Listing{
			Entry:      e,
			Installed:  s.Home.Registry.Has(e.ID),
			Installing: s.installing == e.ID,
		})
	}
	return out
}

// Installing returns the app currently being installed, if any.
func (s *Service) Installing() string {
	return s.installing
}

// BeginInstall reserves the single install slot for id.
func (s *Service) BeginInstall(id string) error {
	if s.installing != "" {
		return fmt.Errorf("%w: %s", ErrInstallInFlight, s.installing)
	}
	if _, ok := s.Home.Catalog().Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownApp, id)
	}
	if s.Home.Registry.Has(id) {
		return fmt.Errorf("%w: %s", ErrAlreadyInstalled, id)
	}
	s.installing = id
	return nil
}

// CompleteInstall finishes the pending install and returns its id.
func (s *Service) CompleteInstall() (string, error) {
	id := s.installing
	if id == "" {
		return "", ErrNoInstall
	}
	s.installing = ""
	if err := resultErr(s.Home.Install(id)); err != nil {
		return id, fmt.Errorf("%w: %s", err, id)
	}
	s.log.Info("installed", "app", id)
	return id, nil
}

// Install installs id immediately.
func (s *Service) Install(id string) error {
	if err := s.BeginInstall(id); err != nil {
		return err
	}
	_, err := s.CompleteInstall()
	return err
}

// Uninstall removes id from the phone and from the dock.
func (s *Service) Uninstall(id string) error {
	if !s.Home.Registry.Has(id) {
		if _, ok := s.Home.Catalog().Lookup(id); ok {
			return fmt.Errorf("%w: %s", ErrNotInstalled, id)
		}
		return fmt.Errorf("%w: %s", ErrUnknownApp, id)
	}
	if err := resultErr(s.Home.Uninstall(id)); err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	s.log.Info("uninstalled", "app", id)
	return nil
}
