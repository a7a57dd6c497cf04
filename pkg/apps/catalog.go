// Package apps holds the catalogue of installable apps and the lookup table
// that maps each app to its glyph and colours.
package apps

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Well-known app identifiers.
const (
	Phone       = "phone"
	Messages    = "messages"
	Settings    = "settings"
	Marketplace = "marketplace"
	Browser     = "browser"
	Camera      = "camera"
	Clock       = "clock"
	Photos      = "photos"
	Music       = "music"
	Garage      = "garage"
	Bank        = "bank"
	Businesses  = "businesses"
	Dispatch    = "dispatch"
	Weather     = "weather"
	Mail        = "mail"
	Social      = "social"
	Notes       = "notes"
	Reminders   = "reminders"
	Stocks      = "stocks"
	Health      = "health"
	Wallet      = "wallet"
)

// Entry is an installed (or installable) app as placed on the home screen.
// NotificationCount is derived from app data and is never persisted.
type Entry struct {
	ID         string `json:"id" yaml:"id"`
	NameKey    string `json:"nameKey" yaml:"nameKey"`
	Glyph      string `json:"glyph" yaml:"glyph"`
	Tint       string `json:"tint" yaml:"tint"`
	Background string `json:"background" yaml:"background"`
	Removable  bool   `json:"removable" yaml:"removable"`

	NotificationCount int `json:"notificationCount,omitempty" yaml:"notificationCount,omitempty"`
}

func catalog() []Entry {
	return []Entry{
		{ID: Phone, NameKey: "phone_title", Glyph: "☎", Tint: "#ffffff", Background: "#34c759"},
		{ID: Messages, NameKey: "messages_title", Glyph: "✉", Tint: "#ffffff", Background: "#30d158"},
		{ID: Settings, NameKey: "settings_title", Glyph: "⚙", Tint: "#e5e5ea", Background: "#636366"},
		{ID: Marketplace, NameKey: "marketplace_title", Glyph: "⬇", Tint: "#ffffff", Background: "#0a84ff"},
		{ID: Browser, NameKey: "browser_title", Glyph: "◎", Tint: "#0a84ff", Background: "#f2f2f7"},
		{ID: Camera, NameKey: "camera_title", Glyph: "◉", Tint: "#1c1c1e", Background: "#aeaeb2"},
		{ID: Clock, NameKey: "clock_title", Glyph: "◷", Tint: "#ffffff", Background: "#1c1c1e"},
		{ID: Photos, NameKey: "photos_title", Glyph: "✿", Tint: "#ff9f0a", Background: "#f2f2f7"},
		{ID: Music, NameKey: "music_title", Glyph: "♫", Tint: "#ffffff", Background: "#ff375f", Removable: true},
		{ID: Garage, NameKey: "garage_title", Glyph: "⛟", Tint: "#ffffff", Background: "#5e5ce6", Removable: true},
		{ID: Bank, NameKey: "bank_title", Glyph: "$", Tint: "#ffffff", Background: "#248a3d", Removable: true},
		{ID: Businesses, NameKey: "businesses_title", Glyph: "⌂", Tint: "#ffffff", Background: "#bf5af2", Removable: true},
		{ID: Dispatch, NameKey: "dispatch_title", Glyph: "⚑", Tint: "#ffffff", Background: "#ff453a", Removable: true},
		{ID: Weather, NameKey: "weather_title", Glyph: "☀", Tint: "#ffd60a", Background: "#409cff", Removable: true},
		{ID: Mail, NameKey: "mail_title", Glyph: "✆", Tint: "#ffffff", Background: "#0a84ff", Removable: true},
		{ID: Social, NameKey: "social_title", Glyph: "♥", Tint: "#ffffff", Background: "#ff2d55", Removable: true},
		{ID: Notes, NameKey: "notes_title", Glyph: "✎", Tint: "#1c1c1e", Background: "#ffd60a", Removable: true},
		{ID: Reminders, NameKey: "reminders_title", Glyph: "☑", Tint: "#ff9f0a", Background: "#f2f2f7", Removable: true},
		{ID: Stocks, NameKey: "stocks_title", Glyph: "↗", Tint: "#30d158", Background: "#1c1c1e", Removable: true},
		{ID: Health, NameKey: "health_title", Glyph: "✚", Tint: "#ff375f", Background: "#f2f2f7", Removable: true},
		{ID: Wallet, NameKey: "wallet_title", Glyph: "▤", Tint: "#ffffff", Background: "#1c1c1e", Removable: true},
	}
}

// preinstalled lists the removable apps that ship installed alongside every
// system app.
var preinstalled = []string{Music, Garage, Bank, Businesses, Dispatch}

// Catalog is a set of app definitions plus the factory layout built from
// them.
type Catalog struct {
	entries   []Entry
	installed []string
	dock      []string
}

// NewCatalog builds a catalogue. installed names the removable apps that are
// present on a fresh phone; system apps always are.
func NewCatalog(entries []Entry, installed, dock []string) *Catalog {
	return &Catalog{
		entries:   append([]Entry{}, entries...),
		installed: append([]string{}, installed...),
		dock:      append([]string{}, dock...),
	}
}

var standard = NewCatalog(catalog(), preinstalled, []string{Phone, Messages, Browser, Camera})

// Standard is the built-in catalogue.
func Standard() *Catalog {
	return standard
}

// All returns every app the catalogue knows about, in catalogue order.
func (c *Catalog) All() []Entry {
	return append([]Entry{}, c.entries...)
}

// Lookup returns the definition for id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// DefaultInstalled returns the apps present on a fresh phone: every system
// app plus the preinstalled removable ones.
func (c *Catalog) DefaultInstalled() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !e.Removable || contains(c.installed, e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// DefaultDock returns the dock contents of a fresh phone.
func (c *Catalog) DefaultDock() []string {
	return append([]string{}, c.dock...)
}

// All lists the standard catalogue.
func All() []Entry { return standard.All() }

// Lookup searches the standard catalogue.
func Lookup(id string) (Entry, bool) { return standard.Lookup(id) }

func DefaultInstalled() []Entry { return standard.DefaultInstalled() }

func DefaultDock() []string { return standard.DefaultDock() }

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Shade darkens the hex colour by amount (0..1). Invalid input is returned
// unchanged.
func Shade(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	black := colorful.Color{R: 0, G: 0, B: 0}
	return c.BlendLab(black, clamp01(amount)).Clamped().Hex()
}

// ValidColor reports whether s is a #rrggbb colour.
func ValidColor(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

// Swatch resolves an entry's tint and background, falling back to neutral
// colours when the table holds something unparsable.
func Swatch(e Entry) (tint, background string) {
	tint, background = e.Tint, e.Background
	if !ValidColor(tint) {
		tint = "#ffffff"
	}
	if !ValidColor(background) {
		background = "#3a3a3c"
	}
	return tint, background
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
