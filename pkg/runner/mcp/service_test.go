package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/phoneshell/pkg/app"
	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/layout"
	"tableflip.dev/phoneshell/pkg/notify"
	"tableflip.dev/phoneshell/pkg/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := app.New(store.NewMemory(), app.Options{Locale: "en"})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return NewService(svc)
}

func TestServiceGetLayout(t *testing.T) {
	svc := newTestService(t)
	dto, err := svc.GetLayout(context.Background())
	if err != nil {
		t.Fatalf("get layout: %v", err)
	}
	if len(dto.Dock) != layout.MaxDock {
		t.Fatalf("expected full dock, got %v", dto.Dock)
	}
	if len(dto.Pages) != dto.PageCount || dto.PageCount != 1 {
		t.Fatalf("pages %v do not match count %d", dto.Pages, dto.PageCount)
	}
}

func TestServiceMoveApp(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.MoveApp(ctx, apps.Music, "dock", ""); !errors.Is(err, app.ErrDockFull) {
		t.Fatalf("expected dock full, got %v", err)
	}

	dto, err := svc.MoveApp(ctx, apps.Camera, "main", apps.Settings)
	if err != nil {
		t.Fatalf("move out of dock: %v", err)
	}
	if !dto.Outcome.Applied || len(dto.Layout.Dock) != 3 {
		t.Fatalf("unexpected outcome %+v", dto)
	}
	if layout.PageOf(dto.Layout.Main, apps.Camera) != 0 {
		t.Fatalf("camera not on first page: %v", dto.Layout.Main)
	}

	if _, err := svc.MoveApp(ctx, apps.Music, "dock", apps.Phone); err != nil {
		t.Fatalf("move into dock: %v", err)
	}
	got, _ := svc.GetLayout(ctx)
	if got.Dock[0] != apps.Music {
		t.Fatalf("expected music first in dock, got %v", got.Dock)
	}

	if _, err := svc.MoveApp(ctx, apps.Music, "sideways", ""); !errors.Is(err, app.ErrUnknownZone) {
		t.Fatalf("expected unknown zone, got %v", err)
	}
}

func TestServiceInstallUninstall(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.InstallApp(ctx, apps.Weather)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if dto.Main[len(dto.Main)-1] != apps.Weather {
		t.Fatalf("expected weather appended, got %v", dto.Main)
	}
	if _, err := svc.InstallApp(ctx, apps.Weather); !errors.Is(err, app.ErrAlreadyInstalled) {
		t.Fatalf("expected already installed, got %v", err)
	}
	if _, err := svc.UninstallApp(ctx, apps.Settings); !errors.Is(err, app.ErrNotRemovable) {
		t.Fatalf("expected not removable, got %v", err)
	}
	dto, err = svc.UninstallApp(ctx, apps.Weather)
	if err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if layout.PageOf(dto.Main, apps.Weather) != -1 {
		t.Fatalf("weather still installed: %v", dto.Main)
	}
}

func TestServiceNotifications(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	err := svc.App.ReplaceFeeds(
		[]notify.Conversation{{PhoneNumber: "555-0101", ContactName: "Ada", Unread: 2}},
		[]notify.CallRecord{{ID: "7", ContactName: "Bo", Direction: notify.Missed, IsNew: true}},
	)
	if err != nil {
		t.Fatalf("replace feeds: %v", err)
	}

	dto, err := svc.ListNotifications(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if dto.Count != 2 || dto.Notifications[0].SourceAppID != apps.Phone {
		t.Fatalf("unexpected notifications %+v", dto)
	}
	if dto.Badges.Count(apps.Messages) != 2 {
		t.Fatalf("unexpected badges %v", dto.Badges)
	}

	dto, err = svc.ClearNotifications(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if dto.Count != 0 || dto.Badges.Total() != 0 {
		t.Fatalf("expected cleared, got %+v", dto)
	}
}

func TestServiceWithoutApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.GetLayout(context.Background()); !errors.Is(err, ErrNoApp) {
		t.Fatalf("expected ErrNoApp, got %v", err)
	}
	if err := (Runner{}).Do(context.Background()); !errors.Is(err, ErrNoApp) {
		t.Fatalf("runner: expected ErrNoApp, got %v", err)
	}
}

func TestToJSONResult(t *testing.T) {
	res, err := toJSONResult(map[string]int{"badges": 3})
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.IsError || len(res.Content) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	var got map[string]int
	if err := json.Unmarshal([]byte(text.Text), &got); err != nil || got["badges"] != 3 {
		t.Fatalf("decode %q: %v", text.Text, err)
	}
}

func TestEncodeResourceJSON(t *testing.T) {
	contents, err := encodeResourceJSON("phoneshell://layout", []string{"phone"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok || text.MIMEType != "application/json" || text.Text != `["phone"]` {
		t.Fatalf("unexpected contents %+v", contents)
	}
}
