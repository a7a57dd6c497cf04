// Package notify derives the notification list and per-app badge counts from
// the message and call feeds. Every function here is pure: inputs are never
// mutated and equal inputs always produce equal outputs.
package notify

import (
	"sort"

	"tableflip.dev/phoneshell/pkg/apps"
	"tableflip.dev/phoneshell/pkg/i18n"
)

// Direction of a call record.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
	Missed   Direction = "missed"
)

// Conversation is one message thread in the Messages feed.
type Conversation struct {
	PhoneNumber string `json:"phoneNumber" yaml:"phoneNumber"`
	ContactName string `json:"contactName,omitempty" yaml:"contactName,omitempty"`
	Unread      int    `json:"unread" yaml:"unread"`
}

// CallRecord is one entry of the call history.
type CallRecord struct {
	ID          string    `json:"id" yaml:"id"`
	ContactName string    `json:"contactName,omitempty" yaml:"contactName,omitempty"`
	Number      string    `json:"number" yaml:"number"`
	Direction   Direction `json:"direction" yaml:"direction"`
	IsNew       bool      `json:"isNew" yaml:"isNew"`
}

// Notification is a single row of the notification list.
type Notification struct {
	ID          string `json:"id" yaml:"id"`
	SourceAppID string `json:"sourceAppId" yaml:"sourceAppId"`
	Title       string `json:"title" yaml:"title"`
	Message     string `json:"message" yaml:"message"`
	SortKey     int    `json:"sortKey" yaml:"sortKey"`
}

const (
	rankCall    = 0
	rankMessage = 1

	// rankStride leaves room for one feed index per rank.
	rankStride = 1 << 20
)

type options struct {
	locale string
}

// Option configures Aggregate.
type Option func(*options)

// WithLocale renders titles and messages in locale.
func WithLocale(locale string) Option {
	return func(o *options) {
		o.locale = locale
	}
}

func isNewMissed(c CallRecord) bool {
	return c.IsNew && c.Direction == Missed
}

func displayName(name, number string) string {
	if name != "" {
		return name
	}
	return number
}

// Aggregate builds the notification list: one entry per new missed call,
// then one per conversation with unread messages, each group in feed order.
func Aggregate(convos []Conversation, calls []CallRecord, opts ...Option) []Notification {
	o := options{locale: "en"}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]Notification, 0)
	for i, c := range calls {
		if !isNewMissed(c) {
			continue
		}
		out = append(out, Notification{
			ID:          "call-" + c.ID,
			SourceAppID: apps.Phone,
			Title:       displayName(c.ContactName, c.Number),
			Message:     i18n.Translate("missed_call", o.locale),
			SortKey:     rankCall*rankStride + i,
		})
	}
	for i, c := range convos {
		if c.Unread <= 0 {
			continue
		}
		out = append(out, Notification{
			ID:          "msg-" + c.PhoneNumber,
			SourceAppID: apps.Messages,
			Title:       displayName(c.ContactName, c.PhoneNumber),
			Message:     i18n.Plural(o.locale, "new_message", c.Unread),
			SortKey:     rankMessage*rankStride + i,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey < out[j].SortKey
	})
	return out
}

// Badges maps app ids to their badge count. Only Phone and Messages carry
// counts; every other app is implicitly zero.
type Badges map[string]int

// Count returns the badge for id.
func (b Badges) Count(id string) int {
	return b[id]
}

// Total sums every badge.
func (b Badges) Total() int {
	n := 0
	for _, v := range b {
		n += v
	}
	return n
}

// ComputeBadges returns Messages = total unread and Phone = new missed calls.
func ComputeBadges(convos []Conversation, calls []CallRecord) Badges {
	unread := 0
	for _, c := range convos {
		if c.Unread > 0 {
			unread += c.Unread
		}
	}
	missed := 0
	for _, c := range calls {
		if isNewMissed(c) {
			missed++
		}
	}
	return Badges{apps.Messages: unread, apps.Phone: missed}
}

// Apply returns copies of entries with NotificationCount set from b.
func Apply(entries []apps.Entry, b Badges) []apps.Entry {
	out := make([]apps.Entry, len(entries))
	for i, e := range entries {
		e.NotificationCount = b.Count(e.ID)
		out[i] = e
	}
	return out
}

// ClearAll marks every missed call seen and every conversation read.
func ClearAll(convos []Conversation, calls []CallRecord) ([]Conversation, []CallRecord) {
	return MarkAllRead(convos), ClearMissed(calls)
}

// ClearMissed returns calls with the new flag cleared on missed calls.
func ClearMissed(calls []CallRecord) []CallRecord {
	out := make([]CallRecord, len(calls))
	for i, c := range calls {
		if c.Direction == Missed {
			c.IsNew = false
		}
		out[i] = c
	}
	return out
}

// MarkAllRead returns convos with every unread count zeroed.
func MarkAllRead(convos []Conversation) []Conversation {
	out := make([]Conversation, len(convos))
	for i, c := range convos {
		c.Unread = 0
		out[i] = c
	}
	return out
}

// MarkRead zeroes the unread count of the conversation with phone. The
// second result reports whether anything changed.
func MarkRead(convos []Conversation, phone string) ([]Conversation, bool) {
	out := make([]Conversation, len(convos))
	changed := false
	for i, c := range convos {
		if c.PhoneNumber == phone && c.Unread != 0 {
			c.Unread = 0
			changed = true
		}
		out[i] = c
	}
	return out, changed
}
