package i18n

import "testing"

func TestTranslate(t *testing.T) {
	tests := []struct {
		key, locale, want string
	}{
		{"phone_title", "en", "Phone"},
		{"phone_title", "fr", "Téléphone"},
		{"phone_title", "fr-CA", "Téléphone"},
		{"phone_title", "de", "Phone"},
		{"phone_title", "not a locale", "Phone"},
		{"unknown_key", "fr", "unknown_key"},
	}
	for _, tt := range tests {
		if got := Translate(tt.key, tt.locale); got != tt.want {
			t.Fatalf("Translate(%q, %q) = %q, want %q", tt.key, tt.locale, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := Plural("en", "new_message", 1); got != "1 new message" {
		t.Fatalf("unexpected singular %q", got)
	}
	if got := Plural("en", "new_message", 3); got != "3 new messages" {
		t.Fatalf("unexpected plural %q", got)
	}
	if got := Plural("fr", "new_message", 2); got != "2 nouveaux messages" {
		t.Fatalf("unexpected french plural %q", got)
	}
}

func TestPluralZero(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "en", want: "0 new messages"},
		{locale: "fr", want: "0 nouveau message"},
		{locale: "fr-CA", want: "0 nouveau message"},
	}
	for _, tt := range tests {
		if got := Plural(tt.locale, "new_message", 0); got != tt.want {
			t.Fatalf("Plural(%s, 0) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("fr-FR"); got != "fr" {
		t.Fatalf("Normalize(fr-FR) = %q", got)
	}
	if got := Normalize("ja"); got != "en" {
		t.Fatalf("Normalize(ja) = %q", got)
	}
}
