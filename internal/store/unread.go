// Package store reads household chat state from the cloud document database.
// The service only ever queries it; writes belong to the mobile app.
package store

import "context"

// UnreadSource reports how many chat messages a member has not read yet.
// The count becomes the badge number on chat reminders.
type UnreadSource interface {
	UnreadCount(ctx context.Context, memberID string) (int, error)
}

// Disabled is the UnreadSource used when no document database is configured.
// Deployments without Firestore simply deliver chat reminders without badges.
type Disabled struct{}

func (Disabled) UnreadCount(context.Context, string) (int, error) { return 0, nil }
