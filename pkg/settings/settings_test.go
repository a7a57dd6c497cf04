package settings

import (
	"testing"

	"tableflip.dev/phoneshell/pkg/store"
)

func TestLoadDefaults(t *testing.T) {
	kv := store.NewMemory()
	s := Load(kv, "fr-FR", nil)
	if s.Theme != Dark || s.AirplaneMode || s.Locale != "fr" {
		t.Fatalf("unexpected defaults %+v", s)
	}
}

func TestRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	want := Default("en").ToggleTheme().ToggleAirplane()
	if err := Save(kv, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Load(kv, "fr", nil); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoadRepairsBadValues(t *testing.T) {
	kv := store.NewMemory()
	kv.Save(store.KeySettings, `{"theme":"neon","locale":"","airplaneMode":true}`)
	s := Load(kv, "en", nil)
	if s.Theme != Dark || s.Locale != "en" || !s.AirplaneMode {
		t.Fatalf("unexpected repair %+v", s)
	}

	kv.Save(store.KeySettings, `not json`)
	if s := Load(kv, "en", nil); s != Default("en") {
		t.Fatalf("expected defaults for malformed data, got %+v", s)
	}
}
