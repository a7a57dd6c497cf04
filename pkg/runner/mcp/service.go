// Package mcp provides the Model Context Protocol server integration for
// phoneshell.
package mcp

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/notify"
)

// Service serializes tool calls onto the single-owner app.Service.
type Service struct {
	mu  sync.Mutex
	App *app.Service
}

// ErrNoApp is returned when the service has nothing to operate on.
var ErrNoApp = errors.New("mcp: app service is not configured")

// LayoutDTO is the get_layout payload.
type LayoutDTO struct {
	layout.Snapshot
	Pages  [][]string    `json:"pages"`
	Badges notify.Badges `json:"badges"`
}

// MoveDTO is the move_app payload.
type MoveDTO struct {
	Outcome layout.DropOutcome `json:"outcome"`
	Layout  layout.Snapshot    `json:"layout"`
}

// NotificationsDTO is the list_notifications payload.
type NotificationsDTO struct {
	Notifications []notify.Notification `json:"notifications"`
	Badges        notify.Badges         `json:"badges"`
	Count         int                   `json:"count"`
}

// NewService wraps svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

// lock takes the service mutex and rereads persisted state, which other
// processes may have changed since the last call.
func (s *Service) lock() (func(), error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	s.mu.Lock()
	s.App.Reload()
	return s.mu.Unlock, nil
}

// GetLayout returns the home screen with pages expanded.
func (s *Service) GetLayout(_ context.Context) (LayoutDTO, error) {
	unlock, err := s.lock()
	if err != nil {
		return LayoutDTO{}, err
	}
	defer unlock()
	return s.layoutLocked(), nil
}

func (s *Service) layoutLocked() LayoutDTO {
	snap := s.App.Layout()
	pages := make([][]string, 0, snap.PageCount)
	for i := 0; i < snap.PageCount; i++ {
		page := layout.Page(snap.Main, i)
		if page == nil {
			page = []string{}
		}
		pages = append(pages, page)
	}
	return LayoutDTO{Snapshot: snap, Pages: pages, Badges: s.App.Badges()}
}

// MoveApp places id into zone before target.
func (s *Service) MoveApp(_ context.Context, id, zone, target string) (MoveDTO, error) {
	unlock, err := s.lock()
	if err != nil {
		return MoveDTO{}, err
	}
	defer unlock()
	out, err := s.App.Move(id, zone, target)
	if err != nil {
		return MoveDTO{}, err
	}
	return MoveDTO{Outcome: out, Layout: s.App.Layout()}, nil
}

// InstallApp installs id from the marketplace.
func (s *Service) InstallApp(_ context.Context, id string) (LayoutDTO, error) {
	unlock, err := s.lock()
	if err != nil {
		return LayoutDTO{}, err
	}
	defer unlock()
	if err := s.App.Install(id); err != nil {
		return LayoutDTO{}, err
	}
	return s.layoutLocked(), nil
}

// UninstallApp removes id.
func (s *Service) UninstallApp(_ context.Context, id string) (LayoutDTO, error) {
	unlock, err := s.lock()
	if err != nil {
		return LayoutDTO{}, err
	}
	defer unlock()
	if err := s.App.Uninstall(id); err != nil {
		return LayoutDTO{}, err
	}
	return s.layoutLocked(), nil
}

// ListNotifications returns the aggregated notifications.
func (s *Service) ListNotifications(_ context.Context) (NotificationsDTO, error) {
	unlock, err := s.lock()
	if err != nil {
		return NotificationsDTO{}, err
	}
	defer unlock()
	return s.notificationsLocked(), nil
}

// ClearNotifications clears every notification.
func (s *Service) ClearNotifications(_ context.Context) (NotificationsDTO, error) {
	unlock, err := s.lock()
	if err != nil {
		return NotificationsDTO{}, err
	}
	defer unlock()
	if err := s.App.ClearNotifications(); err != nil {
		return NotificationsDTO{}, err
	}
	return s.notificationsLocked(), nil
}

func (s *Service) notificationsLocked() NotificationsDTO {
	ns := s.App.Notifications()
	return NotificationsDTO{Notifications: ns, Badges: s.App.Badges(), Count: len(ns)}
}
