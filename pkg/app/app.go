package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/notify"
	"tableflip.dev/phoneshell/pkg/settings"
	"tableflip.dev/phoneshell/pkg/store"
)

// Service provides the phone shell's high-level operations. It wraps the
// layout engine, the app feeds and settings so the TUI, CLI and MCP server
// share one set of rules.
type Service struct {
	Persistence store.Persistence
	Home        *layout.Home

	log        *slog.Logger
	opts       Options
	settings   settings.Settings
	convos     []notify.Conversation
	calls      []notify.CallRecord
	installing string
}

// Options configures New.
type Options struct {
	Logger    *slog.Logger
	Scheduler layout.Scheduler
	// Locale is used when no settings have been stored yet.
	Locale string
}

var (
	ErrNoPersistence    = errors.New("app: no persistence configured")
	ErrUnknownApp       = errors.New("app: unknown app")
	ErrAlreadyInstalled = errors.New("app: already installed")
	ErrNotInstalled     = errors.New("app: not installed")
	ErrNotRemovable     = errors.New("app: app cannot be removed")
	ErrInstallInFlight  = errors.New("app: another install is in progress")
	ErrNoInstall        = errors.New("app: no install in progress")
	ErrDockFull         = errors.New("app: dock is full")
	ErrUnknownZone      = errors.New("app: unknown zone")
	ErrUnknownWidget    = errors.New("app: unknown widget")
)

// New loads every piece of persisted state and returns a ready Service.
func New(p store.Persistence, opts Options) (*Service, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	opts.Logger = log
	s := &Service{Persistence: p, log: log, opts: opts}
	s.Reload()
	return s, nil
}

// Reload rereads the layout, settings and feeds from persistence. Transient
// state such as edit mode and an active drag is reset.
func (s *Service) Reload() {
	s.Home = layout.Load(layout.Options{
		KV:        s.Persistence,
		Logger:    s.log.With("component", "layout"),
		Scheduler: s.opts.Scheduler,
	})
	s.settings = settings.Load(s.Persistence, s.opts.Locale, s.log)
	s.ReloadFeeds()
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.Persistence.Watch(ctx)
}

// Layout returns a snapshot of the home screen.
func (s *Service) Layout() layout.Snapshot {
	return s.Home.Snapshot()
}

// Entries returns every installed app with badges applied.
func (s *Service) Entries() []apps.Entry {
	return notify.Apply(s.Home.Registry.Entries(), s.Badges())
}

// MainPage returns the apps on app page i with badges applied.
func (s *Service) MainPage(i int) []apps.Entry {
	return notify.Apply(s.Home.MainPage(i), s.Badges())
}

// DockEntries returns the docked apps with badges applied.
func (s *Service) DockEntries() []apps.Entry {
	return notify.Apply(s.Home.Dock.Entries(), s.Badges())
}

// Move places id in zone before target, bypassing the gesture gates.
func (s *Service) Move(id string, zone string, target string) (layout.DropOutcome, error) {
	z, ok := layout.ParseZone(zone)
	if !ok {
		return layout.DropOutcome{Source: id, Target: target}, fmt.Errorf("%w: %q", ErrUnknownZone, zone)
	}
	out := s.Home.Move(id, z, target)
	if !out.Applied {
		s.log.Debug("move rejected", "id", id, "zone", z, "target", target, "reason", out.Reason)
	}
	return out, resultErr(out.Result)
}

// DockAdd pins id to the dock before target.
func (s *Service) DockAdd(id, target string) error {
	return resultErr(s.Home.Dock.MoveIn(id, target))
}

// DockRemove unpins id.
func (s *Service) DockRemove(id string) error {
	return resultErr(s.Home.Dock.MoveOut(id))
}

// DockMove reorders id within the dock.
func (s *Service) DockMove(id, target string) error {
	return resultErr(s.Home.Dock.Reorder(id, target))
}

// AddWidget shows kind on the widget page.
func (s *Service) AddWidget(kind string) error {
	return resultErr(s.Home.Widgets.Add(kind))
}

// RemoveWidget hides kind from the widget page.
func (s *Service) RemoveWidget(kind string) error {
	return resultErr(s.Home.Widgets.Remove(kind))
}

// Open launches id. Taps are ignored in edit mode; opening Phone marks the
// missed calls as seen.
func (s *Service) Open(id string) (bool, error) {
	if !s.Home.Edit.TapAllowed() {
		return false, nil
	}
	if !s.Home.Registry.Has(id) {
		return false, fmt.Errorf("%w: %s", ErrNotInstalled, id)
	}
	if id == apps.Phone {
		if err := s.ClearMissedCalls(); err != nil {
			return true, err
		}
	}
	return true, nil
}

// GoHome handles the home button.
func (s *Service) GoHome() layout.HomeAction {
	action := s.Home.Edit.Home()
	if action == layout.HomeNavigate {
		s.Home.Pager.SetScreen(layout.ScreenForPage(0))
	}
	return action
}

// Settings returns the current settings.
func (s *Service) Settings() settings.Settings {
	return s.settings
}

// Locale is the active display locale.
func (s *Service) Locale() string {
	return s.settings.Locale
}

// UpdateSettings applies fn and persists the result.
func (s *Service) UpdateSettings(fn func(settings.Settings) settings.Settings) (settings.Settings, error) {
	next := fn(s.settings)
	if err := settings.Save(s.Persistence, next); err != nil {
		return s.settings, fmt.Errorf("app: save settings: %w", err)
	}
	s.settings = next
	return next, nil
}

// Doctor checks the layout invariants.
func (s *Service) Doctor(ctx context.Context) ([]string, error) {
	return s.Persistence.Keys(ctx), s.Home.CheckInvariants()
}

func resultErr(r layout.Result) error {
	if r.Applied {
		return nil
	}
	switch r.Reason {
	case layout.ReasonNone, layout.ReasonSameTarget:
		return nil
	case layout.ReasonUnknownApp:
		return ErrUnknownApp
	case layout.ReasonInstalled:
		return ErrAlreadyInstalled
	case layout.ReasonNotRemovable:
		return ErrNotRemovable
	case layout.ReasonDockFull:
		return ErrDockFull
	case layout.ReasonUnknownWidget:
		return ErrUnknownWidget
	default:
		return r.Err()
	}
}
