package repository

import (
	"context"
	"time"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

// ReminderRepository defines all persistence operations for reminders.
// The pgx implementation is in pg_reminder_repo.go.
// Tests use a hand-written mock (mock_reminder_repo.go).
type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Reminder, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Reminder, int, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	MarkSent(ctx context.Context, id string, providerMsgID string, sentAt time.Time) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
	ScheduleRetry(ctx context.Context, id string, retryCount int, nextRetry time.Time, errMsg string) error
	Cancel(ctx context.Context, id string) error
	CancelAllForMember(ctx context.Context, memberID string) (int, error)
	FindDueRetries(ctx context.Context) ([]*domain.Reminder, error)
	FindDueScheduled(ctx context.Context) ([]*domain.Reminder, error)

	CreateBroadcast(ctx context.Context, broadcastID string, reminders []*domain.Reminder) (*domain.Broadcast, error)
	GetBroadcast(ctx context.Context, broadcastID string) (*domain.Broadcast, []*domain.Reminder, error)
	UpdateBroadcastCounts(ctx context.Context, broadcastID string) error

	CreateRecurring(ctx context.Context, rec *domain.RecurringReminder) error
	ListRecurring(ctx context.Context) ([]*domain.RecurringReminder, error)
	DeleteRecurring(ctx context.Context, id string) error
}
