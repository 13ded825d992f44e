package queue

import "github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"

// Item is the minimal data placed on the queue.
// Workers fetch the full Reminder from the DB using the ID,
// keeping the queue lightweight and the domain data authoritative.
type Item struct {
	ReminderID string
	Category   domain.Category
	Importance domain.Importance
}
