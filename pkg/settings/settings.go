// Package settings holds the phone-wide preferences toggled from the quick
// panel.
package settings

import (
	"encoding/json"
	"log/slog"

	"tableflip.dev/phoneshell/pkg/i18n"
	"tableflip.dev/phoneshell/pkg/store"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

type Settings struct {
	Theme        Theme  `json:"theme" yaml:"theme"`
	AirplaneMode bool   `json:"airplaneMode" yaml:"airplaneMode"`
	Locale       string `json:"locale" yaml:"locale"`
}

// Default returns the factory settings for locale.
func Default(locale string) Settings {
	return Settings{Theme: Dark, Locale: i18n.Normalize(locale)}
}

// KV is the storage the settings live in.
type KV interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// Load reads the stored settings. Anything missing or malformed falls back
// to Default(fallbackLocale).
func Load(kv KV, fallbackLocale string, log *slog.Logger) Settings {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	def := Default(fallbackLocale)
	raw, ok := kv.Load(store.KeySettings)
	if !ok {
		return def
	}
	s := def
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Warn("malformed settings, using defaults", "err", err)
		return def
	}
	return s.normalize(def)
}

func (s Settings) normalize(def Settings) Settings {
	if s.Theme != Dark && s.Theme != Light {
		s.Theme = def.Theme
	}
	if s.Locale == "" {
		s.Locale = def.Locale
	}
	s.Locale = i18n.Normalize(s.Locale)
	return s
}

// Save writes s under the settings key.
func Save(kv KV, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return kv.Save(store.KeySettings, string(data))
}

// ToggleTheme flips between dark and light.
func (s Settings) ToggleTheme() Settings {
	if s.Theme == Light {
		s.Theme = Dark
	} else {
		s.Theme = Light
	}
	return s
}

func (s Settings) ToggleAirplane() Settings {
	s.AirplaneMode = !s.AirplaneMode
	return s
}
