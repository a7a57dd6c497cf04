package app

import "tableflip.dev/phoneshell/pkg/notify"

// SampleConversations is demo message data.
func SampleConversations() []notify.Conversation {
	return []notify.Conversation{
		{PhoneNumber: "555-0142", ContactName: "Mia", Unread: 2},
		{PhoneNumber: "555-0199", ContactName: "Garage", Unread: 0},
		{PhoneNumber: "555-0107", Unread: 1},
	}
}

// SampleCalls is demo call history.
func SampleCalls() []notify.CallRecord {
	return []notify.CallRecord{
		{ID: "1", ContactName: "Leo", Number: "555-0180", Direction: notify.Missed, IsNew: true},
		{ID: "2", ContactName: "Mia", Number: "555-0142", Direction: notify.Incoming},
		{ID: "3", Number: "555-0111", Direction: notify.Outgoing},
		{ID: "4", ContactName: "Dispatch", Number: "555-0100", Direction: notify.Missed, IsNew: true},
	}
}

// Seed replaces the feeds with the sample data.
func (s *Service) Seed() error {
	return s.setFeeds(SampleConversations(), SampleCalls())
}
