package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

// MockReminderRepository is a hand-written, in-memory implementation of
// ReminderRepository used in unit tests. No mock-generation library needed.
type MockReminderRepository struct {
	mu         sync.RWMutex
	reminders  map[string]*domain.Reminder
	broadcasts map[string]*domain.Broadcast
	recurring  map[string]*domain.RecurringReminder

	// Optional error overrides — set in tests to simulate failure paths.
	CreateErr              error
	GetByIDErr             error
	GetByIdempotencyKeyErr error
	ListRecurringErr       error
}

func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{
		reminders:  make(map[string]*domain.Reminder),
		broadcasts: make(map[string]*domain.Broadcast),
		recurring:  make(map[string]*domain.RecurringReminder),
	}
}

func (m *MockReminderRepository) Create(_ context.Context, r *domain.Reminder) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.IdempotencyKey != nil {
		for _, existing := range m.reminders {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *r.IdempotencyKey {
				return domain.ErrConflict
			}
		}
	}
	clone := *r
	m.reminders[r.ID] = &clone
	return nil
}

func (m *MockReminderRepository) GetByID(_ context.Context, id string) (*domain.Reminder, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reminders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *MockReminderRepository) GetByIdempotencyKey(_ context.Context, key string) (*domain.Reminder, error) {
	if m.GetByIdempotencyKeyErr != nil {
		return nil, m.GetByIdempotencyKeyErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reminders {
		if r.IdempotencyKey != nil && *r.IdempotencyKey == key {
			clone := *r
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockReminderRepository) List(_ context.Context, f domain.ListFilter) ([]*domain.Reminder, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Reminder, 0, len(m.reminders))
	for _, r := range m.reminders {
		if f.MemberID != nil && r.MemberID != *f.MemberID {
			continue
		}
		if f.Category != nil && r.Category != *f.Category {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		clone := *r
		result = append(result, &clone)
	}
	return result, len(result), nil
}

func (m *MockReminderRepository) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reminders[id]; ok {
		r.Status = status
	}
	return nil
}

func (m *MockReminderRepository) MarkSent(_ context.Context, id, providerMsgID string, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reminders[id]; ok {
		r.Status = domain.StatusSent
		r.ProviderMsgID = &providerMsgID
		r.SentAt = &sentAt
	}
	return nil
}

func (m *MockReminderRepository) MarkFailed(_ context.Context, id, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reminders[id]; ok {
		r.Status = domain.StatusFailed
		r.ErrorMessage = &errMsg
	}
	return nil
}

func (m *MockReminderRepository) ScheduleRetry(_ context.Context, id string, retryCount int, nextRetry time.Time, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reminders[id]; ok {
		r.RetryCount = retryCount
		r.NextRetryAt = &nextRetry
		r.ErrorMessage = &errMsg
		r.Status = domain.StatusFailed
	}
	return nil
}

func (m *MockReminderRepository) Cancel(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reminders[id]; ok {
		r.Status = domain.StatusCancelled
	}
	return nil
}

func (m *MockReminderRepository) CancelAllForMember(_ context.Context, memberID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, r := range m.reminders {
		if r.MemberID != memberID {
			continue
		}
		switch r.Status {
		case domain.StatusPending, domain.StatusQueued, domain.StatusScheduled, domain.StatusFailed:
			r.Status = domain.StatusCancelled
			count++
		}
	}
	return count, nil
}

func (m *MockReminderRepository) FindDueRetries(_ context.Context) ([]*domain.Reminder, error) {
	return nil, nil
}

func (m *MockReminderRepository) FindDueScheduled(_ context.Context) ([]*domain.Reminder, error) {
	return nil, nil
}

func (m *MockReminderRepository) CreateBroadcast(_ context.Context, broadcastID string, reminders []*domain.Reminder) (*domain.Broadcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &domain.Broadcast{
		ID:        broadcastID,
		Total:     len(reminders),
		Pending:   len(reminders),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	m.broadcasts[broadcastID] = b
	for _, r := range reminders {
		clone := *r
		m.reminders[r.ID] = &clone
	}
	return b, nil
}

func (m *MockReminderRepository) GetBroadcast(_ context.Context, broadcastID string) (*domain.Broadcast, []*domain.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.broadcasts[broadcastID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	var reminders []*domain.Reminder
	for _, r := range m.reminders {
		if r.BroadcastID != nil && *r.BroadcastID == broadcastID {
			clone := *r
			reminders = append(reminders, &clone)
		}
	}
	broadcastClone := *b
	return &broadcastClone, reminders, nil
}

func (m *MockReminderRepository) UpdateBroadcastCounts(_ context.Context, _ string) error {
	return nil
}

func (m *MockReminderRepository) CreateRecurring(_ context.Context, rec *domain.RecurringReminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *rec
	m.recurring[rec.ID] = &clone
	return nil
}

func (m *MockReminderRepository) ListRecurring(_ context.Context) ([]*domain.RecurringReminder, error) {
	if m.ListRecurringErr != nil {
		return nil, m.ListRecurringErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.RecurringReminder, 0, len(m.recurring))
	for _, rec := range m.recurring {
		clone := *rec
		result = append(result, &clone)
	}
	return result, nil
}

func (m *MockReminderRepository) DeleteRecurring(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recurring[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.recurring, id)
	return nil
}
