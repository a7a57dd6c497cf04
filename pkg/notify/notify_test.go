package notify

import (
	"reflect"
	"testing"

	"tableflip.dev/phoneshell/pkg/apps"
)

func sampleFeeds() ([]Conversation, []CallRecord) {
	convos := []Conversation{
		{PhoneNumber: "555-0101", ContactName: "Ada", Unread: 2},
		{PhoneNumber: "555-0102", ContactName: "Bob", Unread: 0},
		{PhoneNumber: "555-0103", Unread: 1},
	}
	calls := []CallRecord{
		{ID: "c1", ContactName: "Cy", Number: "555-0201", Direction: Missed, IsNew: true},
		{ID: "c2", ContactName: "Di", Number: "555-0202", Direction: Incoming, IsNew: true},
		{ID: "c3", Number: "555-0203", Direction: Missed, IsNew: false},
		{ID: "c4", Number: "555-0204", Direction: Missed, IsNew: true},
	}
	return convos, calls
}

func TestAggregateOrderAndContent(t *testing.T) {
	convos, calls := sampleFeeds()
	got := Aggregate(convos, calls)

	wantIDs := []string{"call-c1", "call-c4", "msg-555-0101", "msg-555-0103"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d notifications, got %d: %+v", len(wantIDs), len(got), got)
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if got[0].Title != "Cy" || got[0].Message != "Missed call" || got[0].SourceAppID != apps.Phone {
		t.Fatalf("unexpected call notification %+v", got[0])
	}
	if got[1].Title != "555-0204" {
		t.Fatalf("expected number as title fallback, got %q", got[1].Title)
	}
	if got[2].Title != "Ada" || got[2].Message != "2 new messages" || got[2].SourceAppID != apps.Messages {
		t.Fatalf("unexpected message notification %+v", got[2])
	}
	if got[3].Message != "1 new message" {
		t.Fatalf("unexpected singular message %q", got[3].Message)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	convos, calls := sampleFeeds()
	first := Aggregate(convos, calls)
	for i := 0; i < 10; i++ {
		if again := Aggregate(convos, calls); !reflect.DeepEqual(first, again) {
			t.Fatalf("aggregate changed between runs:\n%+v\n%+v", first, again)
		}
	}
}

func TestAggregateLocale(t *testing.T) {
	convos, calls := sampleFeeds()
	got := Aggregate(convos, calls, WithLocale("fr"))
	if got[0].Message != "Appel manqué" {
		t.Fatalf("unexpected french message %q", got[0].Message)
	}
}

func TestBadges(t *testing.T) {
	// Scenario: three unread across two threads, one new missed call, one
	// already seen.
	convos := []Conversation{
		{PhoneNumber: "1", Unread: 2},
		{PhoneNumber: "2", Unread: 1},
	}
	calls := []CallRecord{
		{ID: "a", Direction: Missed, IsNew: true},
		{ID: "b", Direction: Missed, IsNew: false},
	}
	b := ComputeBadges(convos, calls)
	if b.Count(apps.Messages) != 3 || b.Count(apps.Phone) != 1 {
		t.Fatalf("unexpected badges %v", b)
	}
	if b.Count(apps.Camera) != 0 {
		t.Fatalf("expected zero badge for camera")
	}

	entries := Apply(apps.DefaultInstalled(), b)
	for _, e := range entries {
		switch e.ID {
		case apps.Messages:
			if e.NotificationCount != 3 {
				t.Fatalf("messages badge = %d", e.NotificationCount)
			}
		case apps.Phone:
			if e.NotificationCount != 1 {
				t.Fatalf("phone badge = %d", e.NotificationCount)
			}
		default:
			if e.NotificationCount != 0 {
				t.Fatalf("%s badge = %d", e.ID, e.NotificationCount)
			}
		}
	}
}

func TestClearAll(t *testing.T) {
	convos, calls := sampleFeeds()
	origConvos := append([]Conversation(nil), convos...)
	origCalls := append([]CallRecord(nil), calls...)

	c2, k2 := ClearAll(convos, calls)
	if n := Aggregate(c2, k2); len(n) != 0 {
		t.Fatalf("expected empty notifications after clear, got %+v", n)
	}
	if b := ComputeBadges(c2, k2); b.Total() != 0 {
		t.Fatalf("expected zero badges after clear, got %v", b)
	}
	// Incoming calls keep their flag.
	if !k2[1].IsNew {
		t.Fatalf("expected non-missed call to be untouched")
	}

	c3, k3 := ClearAll(c2, k2)
	if !reflect.DeepEqual(c2, c3) || !reflect.DeepEqual(k2, k3) {
		t.Fatalf("clear all is not idempotent")
	}

	if !reflect.DeepEqual(convos, origConvos) || !reflect.DeepEqual(calls, origCalls) {
		t.Fatalf("inputs were mutated")
	}
}

func TestMarkRead(t *testing.T) {
	convos, _ := sampleFeeds()
	out, changed := MarkRead(convos, "555-0101")
	if !changed || out[0].Unread != 0 || out[2].Unread != 1 {
		t.Fatalf("unexpected result %+v (changed=%v)", out, changed)
	}
	if _, changed := MarkRead(out, "555-0101"); changed {
		t.Fatalf("expected second mark read to be a no-op")
	}
}
