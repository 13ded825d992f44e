package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/repository"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/schedule"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/store"
)

// ReminderService coordinates the repository, queue, and unread store.
// All business rules (fire-time resolution, idempotency, cancel state machine,
// broadcast limits) live here. HTTP handlers and workers depend on this
// service, not on each other.
type ReminderService struct {
	repo        repository.ReminderRepository
	q           *queue.ImportanceQueue
	unread      store.UnreadSource
	logger      *zap.Logger
	defaultLead time.Duration
}

func NewReminderService(
	repo repository.ReminderRepository,
	q *queue.ImportanceQueue,
	unread store.UnreadSource,
	defaultLead time.Duration,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		repo:        repo,
		q:           q,
		unread:      unread,
		defaultLead: defaultLead,
		logger:      logger,
	}
}

// Create validates, persists, and enqueues or schedules a single reminder.
//
// Idempotency: if an X-Idempotency-Key header was supplied and a reminder
// with that key already exists, the existing record is returned as-is.
// The caller can distinguish a repeat response by the HTTP status code
// (200 for existing, 201 for newly created).
func (s *ReminderService) Create(
	ctx context.Context,
	req domain.CreateReminderRequest,
	idempotencyKey string,
) (*domain.Reminder, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	// --- idempotency check ---
	if idempotencyKey != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, idempotencyKey)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("idempotency lookup: %w", err)
		}
		if existing != nil {
			return existing, true, nil // true = was a duplicate
		}
	}

	fireAt, err := s.resolveFireTime(req)
	if err != nil {
		return nil, false, err
	}

	r := s.buildReminder(req, fireAt, idempotencyKey, nil)

	// An unread badge only makes sense on chat reminders that fire now;
	// a count fetched ahead of a scheduled fire time would be stale.
	if req.Category == domain.CategoryChat && fireAt == nil {
		s.attachBadge(ctx, r)
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, false, fmt.Errorf("persist reminder: %w", err)
	}

	s.enqueue(ctx, r)
	return r, false, nil
}

// CreateBroadcast fans a household event out to every member in a single
// transaction, then enqueues the non-scheduled reminders.
func (s *ReminderService) CreateBroadcast(
	ctx context.Context,
	req domain.CreateBroadcastRequest,
) (*domain.Broadcast, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	broadcastID := uuid.New().String()
	now := time.Now().UTC()

	var fireAt *time.Time
	if req.ScheduledAt != nil && req.ScheduledAt.After(now) {
		fireAt = req.ScheduledAt
	}

	reminders := make([]*domain.Reminder, len(req.MemberIDs))
	for i, memberID := range req.MemberIDs {
		single := domain.CreateReminderRequest{
			Category:   req.Category,
			MemberID:   memberID,
			Title:      req.Title,
			Body:       req.Body,
			Importance: req.Importance,
			TargetID:   req.TargetID,
		}
		reminders[i] = s.buildReminder(single, fireAt, "", &broadcastID)
		reminders[i].CreatedAt = now
		reminders[i].UpdatedAt = now
	}

	b, err := s.repo.CreateBroadcast(ctx, broadcastID, reminders)
	if err != nil {
		return nil, fmt.Errorf("persist broadcast: %w", err)
	}

	for _, r := range reminders {
		if r.ScheduledAt == nil {
			s.enqueue(ctx, r)
		}
	}

	return b, nil
}

// Cancel marks a reminder as cancelled if it is still in a cancellable state.
// This is the server-side analogue of the plugin's cancel-by-identifier call.
func (s *ReminderService) Cancel(ctx context.Context, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch r.Status {
	case domain.StatusCancelled:
		return domain.ErrAlreadyCancelled
	case domain.StatusProcessing, domain.StatusSent:
		return domain.ErrNotCancellable
	}

	return s.repo.Cancel(ctx, id)
}

// CancelAll cancels every undelivered reminder for a member and returns how
// many were affected. Mirrors the plugin's cancel-all primitive.
func (s *ReminderService) CancelAll(ctx context.Context, memberID string) (int, error) {
	if memberID == "" {
		return 0, domain.ErrInvalidMember
	}
	return s.repo.CancelAllForMember(ctx, memberID)
}

func (s *ReminderService) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReminderService) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Reminder, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *ReminderService) GetBroadcast(ctx context.Context, broadcastID string) (*domain.Broadcast, []*domain.Reminder, error) {
	return s.repo.GetBroadcast(ctx, broadcastID)
}

// CreateRecurring validates and persists a standing reminder definition.
// The recurring runner picks it up on its next reload.
func (s *ReminderService) CreateRecurring(
	ctx context.Context,
	req domain.CreateRecurringRequest,
) (*domain.RecurringReminder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cronExpr, err := schedule.ParseSpec(req.Spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSpec, err)
	}

	rec := &domain.RecurringReminder{
		ID:         uuid.New().String(),
		MemberID:   req.MemberID,
		Category:   req.Category,
		Title:      req.Title,
		Body:       req.Body,
		Importance: req.Importance,
		Spec:       req.Spec,
		CronExpr:   cronExpr,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.CreateRecurring(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist recurring reminder: %w", err)
	}
	return rec, nil
}

func (s *ReminderService) ListRecurring(ctx context.Context) ([]*domain.RecurringReminder, error) {
	return s.repo.ListRecurring(ctx)
}

func (s *ReminderService) DeleteRecurring(ctx context.Context, id string) error {
	return s.repo.DeleteRecurring(ctx, id)
}

// ScheduleWeeklyReport registers the standing Sunday-morning summary for a
// member: the next firing lands on the next Sunday at 09:00.
func (s *ReminderService) ScheduleWeeklyReport(ctx context.Context, memberID string) (*domain.RecurringReminder, error) {
	return s.CreateRecurring(ctx, domain.CreateRecurringRequest{
		MemberID:   memberID,
		Category:   domain.CategoryReport,
		Title:      "Weekly report",
		Body:       "Your household chores summary for the week is ready.",
		Importance: domain.ImportanceLow,
		Spec:       "weekly sun 09:00",
	})
}

// CreateFromRecurring materialises one immediate reminder from a recurring
// definition. Called by the recurring runner each time a cron entry fires.
func (s *ReminderService) CreateFromRecurring(ctx context.Context, rec *domain.RecurringReminder) (*domain.Reminder, error) {
	req := domain.CreateReminderRequest{
		Category:   rec.Category,
		MemberID:   rec.MemberID,
		Title:      rec.Title,
		Body:       rec.Body,
		Importance: rec.Importance,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := s.buildReminder(req, nil, "", nil)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("persist recurring firing: %w", err)
	}

	s.enqueue(ctx, r)
	return r, nil
}

// ResolveTap dispatches a tap payload to its destination route.
func (s *ReminderService) ResolveTap(payload string) (domain.Route, error) {
	return domain.ParseTapPayload(payload)
}

// UnreadCount is a read-only pass-through to the document store.
func (s *ReminderService) UnreadCount(ctx context.Context, memberID string) (int, error) {
	if memberID == "" {
		return 0, domain.ErrInvalidMember
	}
	return s.unread.UnreadCount(ctx, memberID)
}

// ---- private helpers ----

// resolveFireTime turns the request's scheduling form into a concrete fire
// time, or nil for immediate delivery. A computed time already in the past
// (a due date closer than its lead) also fires immediately.
func (s *ReminderService) resolveFireTime(req domain.CreateReminderRequest) (*time.Time, error) {
	now := time.Now().UTC()

	switch {
	case req.ScheduledAt != nil:
		if req.ScheduledAt.After(now) {
			return req.ScheduledAt, nil
		}
		return nil, nil

	case req.DueAt != nil:
		lead := s.defaultLead
		if req.LeadMinutes != nil {
			lead = time.Duration(*req.LeadMinutes) * time.Minute
		}
		at := schedule.LeadTime(*req.DueAt, lead)
		if at.After(now) {
			return &at, nil
		}
		return nil, nil

	case req.At != nil:
		h, m, err := schedule.ParseClock(*req.At)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSpec, err)
		}
		at := schedule.NextDaily(now, h, m)
		return &at, nil
	}

	return nil, nil
}

func (s *ReminderService) buildReminder(
	req domain.CreateReminderRequest,
	fireAt *time.Time,
	idempotencyKey string,
	broadcastID *string,
) *domain.Reminder {
	now := time.Now().UTC()
	status := domain.StatusPending
	if fireAt != nil {
		status = domain.StatusScheduled
	}

	r := &domain.Reminder{
		ID:          uuid.New().String(),
		BroadcastID: broadcastID,
		Category:    req.Category,
		MemberID:    req.MemberID,
		Title:       req.Title,
		Body:        req.Body,
		Payload:     domain.PayloadFor(req.Category, req.TargetID),
		Importance:  req.Importance,
		Status:      status,
		MaxRetries:  3,
		ScheduledAt: fireAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if idempotencyKey != "" {
		r.IdempotencyKey = &idempotencyKey
	}

	return r
}

// attachBadge sets the unread-message badge on a chat reminder.
// Best-effort: a document store error never blocks the reminder.
func (s *ReminderService) attachBadge(ctx context.Context, r *domain.Reminder) {
	count, err := s.unread.UnreadCount(ctx, r.MemberID)
	if err != nil {
		s.logger.Warn("unread count lookup failed",
			zap.String("member_id", r.MemberID), zap.Error(err))
		return
	}
	if count > 0 {
		r.Badge = &count
	}
}

// enqueue places the reminder on the queue and updates its status to queued.
// If the queue is full the reminder remains in status=pending; operators see
// that on the queue_depth gauges. Scheduled reminders bypass the queue until
// the scheduler worker promotes them.
func (s *ReminderService) enqueue(ctx context.Context, r *domain.Reminder) {
	if r.ScheduledAt != nil {
		return // scheduler worker handles these
	}

	if err := s.q.Enqueue(queue.Item{
		ReminderID: r.ID,
		Category:   r.Category,
		Importance: r.Importance,
	}); err != nil {
		s.logger.Warn("queue full: reminder will remain pending",
			zap.String("id", r.ID), zap.Error(err))
		return
	}

	if err := s.repo.UpdateStatus(ctx, r.ID, domain.StatusQueued); err != nil {
		s.logger.Error("failed to update status to queued", zap.String("id", r.ID), zap.Error(err))
		return
	}
	r.Status = domain.StatusQueued
}
