package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/apps"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--path", dir, "--backend", "sqlite"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

type layoutJSON struct {
	Main   []string       `json:"main"`
	Dock   []string       `json:"dock"`
	Badges map[string]int `json:"badges"`
}

func decodeLayout(t *testing.T, out string) layoutJSON {
	t.Helper()
	var l layoutJSON
	if err := json.Unmarshal([]byte(out), &l); err != nil {
		t.Fatalf("decode layout: %v\n%s", err, out)
	}
	return l
}

func TestInstallAndLayoutPersist(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "install", apps.Weather, "-o", "json"); err != nil {
		t.Fatalf("install: %v", err)
	}
	out, err := run(t, dir, "layout", "-o", "json")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	l := decodeLayout(t, out)
	if l.Main[len(l.Main)-1] != apps.Weather {
		t.Fatalf("weather not appended: %v", l.Main)
	}
}

func TestMoveIntoFullDockFails(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "move", apps.Music, "dock"); !errors.Is(err, app.ErrDockFull) {
		t.Fatalf("expected dock full, got %v", err)
	}
	if _, err := run(t, dir, "dock", "remove", apps.Camera); err != nil {
		t.Fatalf("dock remove: %v", err)
	}
	out, err := run(t, dir, "move", apps.Music, "dock", "--before", apps.Phone, "-o", "json")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	l := decodeLayout(t, out)
	if l.Dock[0] != apps.Music || slices.Contains(l.Dock, apps.Camera) {
		t.Fatalf("unexpected dock %v", l.Dock)
	}
}

func TestSeedAndClearNotifications(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "seed", "-o", "json")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	var ns []map[string]any
	if err := json.Unmarshal([]byte(out), &ns); err != nil || len(ns) == 0 {
		t.Fatalf("expected seeded notifications, got %q (%v)", out, err)
	}
	out, err = run(t, dir, "notifications", "--clear", "-o", "json")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	ns = nil
	if err := json.Unmarshal([]byte(out), &ns); err != nil || len(ns) != 0 {
		t.Fatalf("expected no notifications, got %q (%v)", out, err)
	}
}

func TestSettingsAndDoctor(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "settings", "--theme", "light", "--lang", "fr", "-o", "json")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	var s struct {
		Theme  string `json:"theme"`
		Locale string `json:"locale"`
	}
	if err := json.Unmarshal([]byte(out), &s); err != nil || s.Theme != "light" || s.Locale != "fr" {
		t.Fatalf("unexpected settings %q (%v)", out, err)
	}
	if _, err := run(t, dir, "settings", "--theme", "sepia"); err == nil {
		t.Fatalf("expected bad theme to fail")
	}

	out, err = run(t, dir, "doctor", "-o", "json")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	var r struct {
		Healthy bool     `json:"healthy"`
		Keys    []string `json:"keys"`
	}
	if err := json.Unmarshal([]byte(out), &r); err != nil || !r.Healthy {
		t.Fatalf("unexpected doctor report %q (%v)", out, err)
	}
}

func TestUninstallSystemAppRefused(t *testing.T) {
	if _, err := run(t, t.TempDir(), "uninstall", apps.Settings); !errors.Is(err, app.ErrNotRemovable) {
		t.Fatalf("expected not removable, got %v", err)
	}
}
