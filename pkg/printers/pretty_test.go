package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/notify"
)

func sampleSnapshot() (layout.Snapshot, []apps.Entry) {
	h := layout.Load(layout.Options{})
	entries := h.Registry.Entries()
	for i := range entries {
		if entries[i].ID == apps.Messages {
			entries[i].NotificationCount = 3
		}
	}
	return h.Snapshot(), entries
}

func TestLayoutTable(t *testing.T) {
	var buf bytes.Buffer
	snap, entries := sampleSnapshot()
	if err := New(&buf, FormatTable, "en").Layout(snap, entries); err != nil {
		t.Fatalf("layout: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Widgets", "Page 1", "Dock 4/4", "messages (3)", apps.Music} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLayoutJSON(t *testing.T) {
	var buf bytes.Buffer
	snap, entries := sampleSnapshot()
	if err := New(&buf, FormatJSON, "en").Layout(snap, entries); err != nil {
		t.Fatalf("layout: %v", err)
	}
	var got struct {
		Main   []string       `json:"main"`
		Dock   []string       `json:"dock"`
		Pages  [][]string     `json:"pages"`
		Badges map[string]int `json:"badges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got.Dock) != 4 || len(got.Pages) != 1 || got.Badges[apps.Messages] != 3 {
		t.Fatalf("unexpected layout %+v", got)
	}
	if len(got.Pages[0]) != len(got.Main) {
		t.Fatalf("page does not match main: %v vs %v", got.Pages[0], got.Main)
	}
}

func TestAppsYAML(t *testing.T) {
	var buf bytes.Buffer
	listings := []app.Listing{{Entry: apps.Entry{ID: apps.Weather, NameKey: "weather_title", Removable: true}}}
	if err := New(&buf, FormatYAML, "en").Apps(listings); err != nil {
		t.Fatalf("apps: %v", err)
	}
	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0]["id"] != apps.Weather || got[0]["installed"] != false {
		t.Fatalf("unexpected yaml %v", got)
	}
}

func TestNotificationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON, "en").Notifications(nil); err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}

	buf.Reset()
	ns := []notify.Notification{{ID: "call-1", SourceAppID: apps.Phone, Title: "Leo", Message: "Missed call"}}
	if err := New(&buf, FormatTable, "en").Notifications(ns); err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if !strings.Contains(buf.String(), "Leo") || !strings.Contains(buf.String(), "Missed call") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, "xml", "en").Notifications(nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
