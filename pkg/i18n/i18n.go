// Package i18n translates the shell's user-visible strings.
package i18n

import (
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.French,
}

var matcher = language.NewMatcher(supported)

var tables = map[language.Tag]map[string]string{
	language.English: {
		"phone_title":       "Phone",
		"messages_title":    "Messages",
		"settings_title":    "Settings",
		"marketplace_title": "Store",
		"browser_title":     "Browser",
		"camera_title":      "Camera",
		"clock_title":       "Clock",
		"photos_title":      "Photos",
		"music_title":       "Music",
		"garage_title":      "Garage",
		"bank_title":        "Bank",
		"businesses_title":  "Businesses",
		"dispatch_title":    "Dispatch",
		"weather_title":     "Weather",
		"mail_title":        "Mail",
		"social_title":      "Social",
		"notes_title":       "Notes",
		"reminders_title":   "Reminders",
		"stocks_title":      "Stocks",
		"health_title":      "Health",
		"wallet_title":      "Wallet",

		"widget_clock": "Clock",
		"widget_music": "Now Playing",

		"missed_call":       "Missed call",
		"new_message_one":   "%d new message",
		"new_message_other": "%d new messages",
		"notifications":     "Notifications",
		"no_notifications":  "No notifications",
		"clear_all":         "Clear",
		"airplane_mode":     "Airplane mode",
		"theme":             "Theme",
		"theme_dark":        "Dark",
		"theme_light":       "Light",
		"done":              "Done",
		"edit_hint":         "hold or press e to edit",
		"dock_full":         "Dock is full",
		"installing":        "Installing %s…",
		"installed":         "Installed",
		"not_removable":     "%s cannot be removed",
		"no_widgets":        "No widgets",
		"home":              "Home",
		"moving":            "Moving %s",
		"nothing_here":      "Nothing here yet",
		"recent_calls":      "Recent calls",
		"conversations":     "Conversations",
		"not_playing":       "Not playing",
	},
	language.French: {
		"phone_title":       "Téléphone",
		"messages_title":    "Messages",
		"settings_title":    "Réglages",
		"marketplace_title": "Boutique",
		"browser_title":     "Navigateur",
		"camera_title":      "Appareil photo",
		"clock_title":       "Horloge",
		"photos_title":      "Photos",
		"music_title":       "Musique",
		"garage_title":      "Garage",
		"bank_title":        "Banque",
		"businesses_title":  "Entreprises",
		"dispatch_title":    "Dispatch",
		"weather_title":     "Météo",
		"mail_title":        "Mail",
		"social_title":      "Social",
		"notes_title":       "Notes",
		"reminders_title":   "Rappels",
		"stocks_title":      "Bourse",
		"health_title":      "Santé",
		"wallet_title":      "Cartes",

		"widget_clock": "Horloge",
		"widget_music": "En lecture",

		"missed_call":       "Appel manqué",
		"new_message_one":   "%d nouveau message",
		"new_message_other": "%d nouveaux messages",
		"notifications":     "Notifications",
		"no_notifications":  "Aucune notification",
		"clear_all":         "Effacer",
		"airplane_mode":     "Mode avion",
		"theme":             "Thème",
		"theme_dark":        "Sombre",
		"theme_light":       "Clair",
		"done":              "OK",
		"edit_hint":         "maintenir ou appuyer sur e pour modifier",
		"dock_full":         "Le dock est plein",
		"installing":        "Installation de %s…",
		"installed":         "Installée",
		"not_removable":     "%s ne peut pas être supprimée",
		"no_widgets":        "Aucun widget",
		"home":              "Accueil",
		"moving":            "Déplacement de %s",
		"nothing_here":      "Rien pour l'instant",
		"recent_calls":      "Appels récents",
		"conversations":     "Conversations",
		"not_playing":       "Aucune lecture",
	},
}

// Match resolves an arbitrary locale string to the closest supported tag.
func Match(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return supported[0]
	}
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// Normalize returns the canonical short code ("en", "fr") for locale.
func Normalize(locale string) string {
	base, _ := Match(locale).Base()
	return base.String()
}

// Supported lists the canonical locale codes.
func Supported() []string {
	out := make([]string, 0, len(supported))
	for _, t := range supported {
		base, _ := t.Base()
		out = append(out, base.String())
	}
	return out
}

// Translate returns the string for key in locale. Unknown keys fall back to
// English and then to the key itself.
func Translate(key, locale string) string {
	if s, ok := tables[Match(locale)][key]; ok {
		return s
	}
	if s, ok := tables[supported[0]][key]; ok {
		return s
	}
	return key
}

// Sprintf translates key and formats it with args.
func Sprintf(locale, key string, args ...any) string {
	return fmt.Sprintf(Translate(key, locale), args...)
}

// Plural picks the _one or _other form of key for n under the locale's CLDR
// cardinal rules and formats n into it. French takes "one" for 0 and 1.
func Plural(locale, key string, n int) string {
	form := key + "_other"
	if plural.Cardinal.MatchPlural(Match(locale), n, 0, 0, 0, 0) == plural.One {
		form = key + "_one"
	}
	return Sprintf(locale, form, n)
}
