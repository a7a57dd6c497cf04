package app

import (
	"encoding/json"
	"fmt"

	"tableflip.dev/phoneshell/pkg/notify"
	"tableflip.dev/phoneshell/pkg/store"
)

// ReloadFeeds re-reads the message and call feeds from storage.
func (s *Service) ReloadFeeds() {
	s.convos = loadFeed[notify.Conversation](s, store.KeyConversations)
	s.calls = loadFeed[notify.CallRecord](s, store.KeyCalls)
}

func loadFeed[T any](s *Service, key string) []T {
	raw, ok := s.Persistence.Load(key)
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("malformed feed, ignoring", "key", key, "err", err)
		return nil
	}
	return out
}

func saveFeed[T any](s *Service, key string, v []T) error {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.Persistence.Save(key, string(data)); err != nil {
		return fmt.Errorf("app: save %s: %w", key, err)
	}
	return nil
}

// Conversations returns the message feed.
func (s *Service) Conversations() []notify.Conversation {
	return append([]notify.Conversation{}, s.convos...)
}

// Calls returns the call history.
func (s *Service) Calls() []notify.CallRecord {
	return append([]notify.CallRecord{}, s.calls...)
}

// Notifications aggregates the feeds in the current locale.
func (s *Service) Notifications() []notify.Notification {
	return notify.Aggregate(s.convos, s.calls, notify.WithLocale(s.Locale()))
}

// Badges returns the per-app badge counts.
func (s *Service) Badges() notify.Badges {
	return notify.ComputeBadges(s.convos, s.calls)
}

// ClearNotifications marks every call seen and every thread read.
func (s *Service) ClearNotifications() error {
	convos, calls := notify.ClearAll(s.convos, s.calls)
	return s.setFeeds(convos, calls)
}

// ClearMissedCalls is what opening the Phone app does.
func (s *Service) ClearMissedCalls() error {
	return s.setFeeds(s.convos, notify.ClearMissed(s.calls))
}

// MarkConversationRead is what opening a thread in Messages does.
func (s *Service) MarkConversationRead(phone string) error {
	convos, changed := notify.MarkRead(s.convos, phone)
	if !changed {
		return nil
	}
	return s.setFeeds(convos, s.calls)
}

// ReplaceFeeds overwrites both feeds.
func (s *Service) ReplaceFeeds(convos []notify.Conversation, calls []notify.CallRecord) error {
	return s.setFeeds(convos, calls)
}

func (s *Service) setFeeds(convos []notify.Conversation, calls []notify.CallRecord) error {
	if err := saveFeed(s, store.KeyConversations, convos); err != nil {
		return err
	}
	s.convos = convos
	if err := saveFeed(s, store.KeyCalls, calls); err != nil {
		return err
	}
	s.calls = calls
	return nil
}
