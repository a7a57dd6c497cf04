package app

import (
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/notify"
	"tableflip.dev/phoneshell/pkg/settings"
	"tableflip.dev/phoneshell/pkg/store"
)

func newService(t *testing.T, kv *store.Memory) *Service {
	t.Helper()
	svc, err := New(kv, Options{Locale: "en"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewRequiresPersistence(t *testing.T) {
	if _, err := New(nil, Options{}); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}

func TestNotificationsAndBadges(t *testing.T) {
	svc := newService(t, store.NewMemory())
	err := svc.ReplaceFeeds(
		[]notify.Conversation{{PhoneNumber: "555", Unread: 2}},
		[]notify.CallRecord{{ID: "1", Direction: notify.Missed, IsNew: true}},
	)
	if err != nil {
		t.Fatalf("replace feeds: %v", err)
	}

	if n := svc.Notifications(); len(n) != 2 {
		t.Fatalf("expected 2 notifications, got %+v", n)
	}
	b := svc.Badges()
	if b.Count(apps.Messages) != 2 || b.Count(apps.Phone) != 1 {
		t.Fatalf("unexpected badges %v", b)
	}
	for _, e := range svc.DockEntries() {
		if e.ID == apps.Messages && e.NotificationCount != 2 {
			t.Fatalf("messages badge = %d", e.NotificationCount)
		}
	}

	if err := svc.ClearNotifications(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n := svc.Notifications(); len(n) != 0 {
		t.Fatalf("expected no notifications, got %+v", n)
	}
	if b := svc.Badges(); b.Total() != 0 {
		t.Fatalf("expected zero badges, got %v", b)
	}
}

func TestFeedsPersist(t *testing.T) {
	kv := store.NewMemory()
	svc := newService(t, kv)
	if err := svc.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.MarkConversationRead("555-0142"); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	again := newService(t, kv)
	if !reflect.DeepEqual(again.Conversations(), svc.Conversations()) {
		t.Fatalf("conversations did not persist")
	}
	if !reflect.DeepEqual(again.Calls(), SampleCalls()) {
		t.Fatalf("calls did not persist")
	}
	if got := again.Badges().Count(apps.Messages); got != 1 {
		t.Fatalf("messages badge = %d", got)
	}
}

func TestMalformedFeedIgnored(t *testing.T) {
	kv := store.NewMemory()
	kv.Save(store.KeyCalls, `{"bad":`)
	svc := newService(t, kv)
	if len(svc.Calls()) != 0 {
		t.Fatalf("expected empty calls")
	}
}

func TestOpen(t *testing.T) {
	svc := newService(t, store.NewMemory())
	if err := svc.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc.Home.Edit.Enter()
	if opened, _ := svc.Open(apps.Phone); opened {
		t.Fatalf("open should be suppressed in edit mode")
	}
	if svc.Badges().Count(apps.Phone) == 0 {
		t.Fatalf("suppressed open should not clear calls")
	}
	if action := svc.GoHome(); action != layout.HomeExitedEdit {
		t.Fatalf("home = %v", action)
	}

	opened, err := svc.Open(apps.Phone)
	if err != nil || !opened {
		t.Fatalf("open phone: %v (opened=%v)", err, opened)
	}
	if got := svc.Badges().Count(apps.Phone); got != 0 {
		t.Fatalf("phone badge after open = %d", got)
	}
	if _, err := svc.Open(apps.Weather); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %v", err)
	}
}

func TestMarketplace(t *testing.T) {
	svc := newService(t, store.NewMemory())

	if err := svc.BeginInstall(apps.Weather); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := svc.BeginInstall(apps.Mail); !errors.Is(err, ErrInstallInFlight) {
		t.Fatalf("expected ErrInstallInFlight, got %v", err)
	}
	for _, l := range svc.Marketplace() {
		if l.ID == apps.Weather && (!l.Installing || l.Installed) {
			t.Fatalf("unexpected listing %+v", l)
		}
	}
	id, err := svc.CompleteInstall()
	if err != nil || id != apps.Weather {
		t.Fatalf("complete: %s %v", id, err)
	}
	if _, err := svc.CompleteInstall(); !errors.Is(err, ErrNoInstall) {
		t.Fatalf("expected ErrNoInstall, got %v", err)
	}
	if err := svc.Install(apps.Weather); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("expected ErrAlreadyInstalled, got %v", err)
	}
	if err := svc.Install("pinball"); !errors.Is(err, ErrUnknownApp) {
		t.Fatalf("expected ErrUnknownApp, got %v", err)
	}

	main := svc.Layout().Main
	if main[len(main)-1] != apps.Weather {
		t.Fatalf("installed app should be appended, got %v", main)
	}

	if err := svc.Uninstall(apps.Settings); !errors.Is(err, ErrNotRemovable) {
		t.Fatalf("expected ErrNotRemovable, got %v", err)
	}
	if err := svc.Uninstall(apps.Weather); err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if err := svc.Uninstall(apps.Weather); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %v", err)
	}
}

func TestInstalledMarketplaceAppSurvivesReload(t *testing.T) {
	kv := store.NewMemory()
	svc := newService(t, kv)
	if err := svc.Install(apps.Stocks); err != nil {
		t.Fatalf("install: %v", err)
	}
	again := newService(t, kv)
	if !again.Home.Registry.Has(apps.Stocks) {
		t.Fatalf("marketplace install lost on reload")
	}
}

func TestReloadPicksUpOtherWriters(t *testing.T) {
	kv := store.NewMemory()
	svc := newService(t, kv)
	other := newService(t, kv)
	if err := other.Install(apps.Notes); err != nil {
		t.Fatalf("install: %v", err)
	}
	if svc.Home.Registry.Has(apps.Notes) {
		t.Fatalf("stale service already sees notes")
	}
	svc.Home.Edit.Enter()
	svc.Reload()
	if !svc.Home.Registry.Has(apps.Notes) {
		t.Fatalf("reload missed install")
	}
	if svc.Home.Edit.Editing() {
		t.Fatalf("reload kept edit mode")
	}
}

type failingSave struct {
	*store.Memory
	key string
}

func (f failingSave) Save(key, value string) error {
	if key == f.key {
		return errors.New("disk full")
	}
	return f.Memory.Save(key, value)
}

func TestClearNotificationsPartialSave(t *testing.T) {
	kv := store.NewMemory()
	seed := newService(t, kv)
	err := seed.ReplaceFeeds(
		[]notify.Conversation{{PhoneNumber: "555", Unread: 2}},
		[]notify.CallRecord{{ID: "1", Direction: notify.Missed, IsNew: true}},
	)
	if err != nil {
		t.Fatalf("replace feeds: %v", err)
	}

	svc, err := New(failingSave{Memory: kv, key: store.KeyCalls}, Options{Locale: "en"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.ClearNotifications(); err == nil {
		t.Fatalf("expected calls save to fail")
	}

	// Messages were cleared on disk, so memory must agree; calls were not.
	if n := svc.Badges().Count(apps.Messages); n != 0 {
		t.Fatalf("messages badge = %d, want 0", n)
	}
	if n := svc.Badges().Count(apps.Phone); n != 1 {
		t.Fatalf("phone badge = %d, want 1", n)
	}
	seed.Reload()
	if !reflect.DeepEqual(seed.Badges(), svc.Badges()) {
		t.Fatalf("memory %v differs from disk %v", svc.Badges(), seed.Badges())
	}
}

type diskConfig string

func (c diskConfig) BasePath() string { return string(c) }
func (c diskConfig) Backend() string  { return store.BackendDiskv }
func (c diskConfig) Locale() string   { return "en" }

func TestReloadPicksUpOtherProcessOnDisk(t *testing.T) {
	dir := diskConfig(t.TempDir())
	open := func() *Service {
		kv, err := store.Load(dir, nil)
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		t.Cleanup(func() { kv.Close() })
		svc, err := New(kv, Options{Locale: "en"})
		if err != nil {
			t.Fatalf("new service: %v", err)
		}
		return svc
	}

	svc := open()
	if err := svc.Install(apps.Stocks); err != nil {
		t.Fatalf("install: %v", err)
	}
	if err := svc.ReplaceFeeds(nil, nil); err != nil {
		t.Fatalf("replace feeds: %v", err)
	}
	svc.Reload()

	cli := open()
	if err := cli.Install(apps.Notes); err != nil {
		t.Fatalf("install from second handle: %v", err)
	}
	if err := cli.ReplaceFeeds(nil, []notify.CallRecord{{ID: "9", Direction: notify.Missed, IsNew: true}}); err != nil {
		t.Fatalf("replace feeds: %v", err)
	}

	svc.Reload()
	if !svc.Home.Registry.Has(apps.Notes) {
		t.Fatalf("reload served a stale app order")
	}
	if n := svc.Badges().Count(apps.Phone); n != 1 {
		t.Fatalf("phone badge = %d after reload, want 1", n)
	}
}

func TestMoveAndDock(t *testing.T) {
	svc := newService(t, store.NewMemory())

	if _, err := svc.Move(apps.Music, "sideways", ""); !errors.Is(err, ErrUnknownZone) {
		t.Fatalf("expected ErrUnknownZone, got %v", err)
	}
	if _, err := svc.Move(apps.Music, "dock", ""); !errors.Is(err, ErrDockFull) {
		t.Fatalf("expected ErrDockFull, got %v", err)
	}
	if err := svc.DockRemove(apps.Camera); err != nil {
		t.Fatalf("dock remove: %v", err)
	}
	if err := svc.DockAdd(apps.Music, apps.Phone); err != nil {
		t.Fatalf("dock add: %v", err)
	}
	if err := svc.DockMove(apps.Phone, ""); err != nil {
		t.Fatalf("dock move: %v", err)
	}
	want := []string{apps.Music, apps.Messages, apps.Browser, apps.Phone}
	if got := svc.Layout().Dock; !reflect.DeepEqual(got, want) {
		t.Fatalf("dock = %v, want %v", got, want)
	}
	if out, err := svc.Move(apps.Bank, "main", apps.Settings); err != nil || !out.Applied {
		t.Fatalf("move: %+v %v", out, err)
	}
	if err := svc.Home.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestWidgets(t *testing.T) {
	svc := newService(t, store.NewMemory())
	if err := svc.RemoveWidget(layout.WidgetMusic); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveWidget(layout.WidgetMusic); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
	if err := svc.AddWidget(layout.WidgetMusic); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddWidget("radar"); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
}

func TestSettings(t *testing.T) {
	kv := store.NewMemory()
	svc := newService(t, kv)
	next, err := svc.UpdateSettings(func(s settings.Settings) settings.Settings {
		s.Locale = "fr"
		return s.ToggleTheme()
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if next.Theme != settings.Light {
		t.Fatalf("theme = %s", next.Theme)
	}
	again := newService(t, kv)
	if again.Locale() != "fr" {
		t.Fatalf("locale = %s", again.Locale())
	}
	if err := again.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if msg := again.Notifications()[0].Message; msg != "Appel manqué" {
		t.Fatalf("notification not localized: %q", msg)
	}
}
