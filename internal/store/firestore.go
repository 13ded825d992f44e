package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreUnread counts unread chat messages in the app's Firestore
// collection. Query semantics stay with Firestore; this is a plain read-only
// pass-through.
type FirestoreUnread struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreUnread(client *firestore.Client, collection string) *FirestoreUnread {
	return &FirestoreUnread{client: client, collection: collection}
}

// UnreadCount returns the number of documents addressed to the member that
// are still marked unread.
func (s *FirestoreUnread) UnreadCount(ctx context.Context, memberID string) (int, error) {
	iter := s.client.Collection(s.collection).
		Where("recipientId", "==", memberID).
		Where("read", "==", false).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("iterate unread messages: %w", err)
		}
		count++
	}
	return count, nil
}

var _ UnreadSource = (*FirestoreUnread)(nil)
