package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/repository"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// fakeUnread is a controllable stand-in for the document store.
type fakeUnread struct {
	count int
	err   error
}

func (f *fakeUnread) UnreadCount(context.Context, string) (int, error) {
	return f.count, f.err
}

func newService() (*service.ReminderService, *repository.MockReminderRepository, *queue.ImportanceQueue, *fakeUnread) {
	repo := repository.NewMockReminderRepository()
	q := queue.New()
	unread := &fakeUnread{}
	svc := service.NewReminderService(repo, q, unread, 30*time.Minute, zap.NewNop())
	return svc, repo, q, unread
}

var validReq = domain.CreateReminderRequest{
	Category:   domain.CategoryTask,
	MemberID:   "member-1",
	Title:      "Take out the trash",
	Body:       "Bins go out tonight",
	Importance: domain.ImportanceDefault,
}

func TestReminderService_Create_Immediate(t *testing.T) {
	svc, _, q, _ := newService()
	ctx := context.Background()

	r, isDuplicate, err := svc.Create(ctx, validReq, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isDuplicate {
		t.Fatal("expected isDuplicate=false for a new reminder")
	}
	if r.ID == "" {
		t.Fatal("expected a non-empty ID")
	}
	if r.Status != domain.StatusQueued {
		t.Fatalf("expected status=queued, got %s", r.Status)
	}
	if r.Payload != domain.TaskPayload("") {
		t.Fatalf("expected task payload, got %q", r.Payload)
	}

	high, def, low := q.Depths()
	if high+def+low == 0 {
		t.Fatal("expected item to be enqueued")
	}
}

func TestReminderService_Create_InvalidRequest(t *testing.T) {
	svc, _, _, _ := newService()

	bad := validReq
	bad.Category = "laundry"
	_, _, err := svc.Create(context.Background(), bad, "")
	if err != domain.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestReminderService_Create_DueDateLead(t *testing.T) {
	svc, _, q, _ := newService()
	ctx := context.Background()

	due := time.Now().UTC().Add(2 * time.Hour)
	lead := 45
	req := validReq
	req.DueAt = &due
	req.LeadMinutes = &lead

	r, _, err := svc.Create(ctx, req, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != domain.StatusScheduled {
		t.Fatalf("expected status=scheduled, got %s", r.Status)
	}
	want := due.Add(-45 * time.Minute)
	if r.ScheduledAt == nil || !r.ScheduledAt.Equal(want) {
		t.Fatalf("expected fire time %v, got %v", want, r.ScheduledAt)
	}

	high, def, low := q.Depths()
	if high+def+low != 0 {
		t.Fatal("scheduled reminder must not be enqueued")
	}
}

func TestReminderService_Create_PastDueFiresImmediately(t *testing.T) {
	svc, _, _, _ := newService()

	due := time.Now().UTC().Add(10 * time.Minute) // closer than the 30m default lead
	req := validReq
	req.DueAt = &due

	r, _, err := svc.Create(context.Background(), req, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != domain.StatusQueued {
		t.Fatalf("expected immediate delivery, got status %s", r.Status)
	}
	if r.ScheduledAt != nil {
		t.Fatalf("expected no fire time, got %v", r.ScheduledAt)
	}
}

func TestReminderService_Create_AtClockTime(t *testing.T) {
	svc, _, _, _ := newService()

	at := "09:30"
	req := validReq
	req.At = &at

	r, _, err := svc.Create(context.Background(), req, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != domain.StatusScheduled {
		t.Fatalf("expected status=scheduled, got %s", r.Status)
	}
	if r.ScheduledAt == nil || !r.ScheduledAt.After(time.Now().UTC()) {
		t.Fatalf("expected a future fire time, got %v", r.ScheduledAt)
	}
	if r.ScheduledAt.Hour() != 9 || r.ScheduledAt.Minute() != 30 {
		t.Fatalf("expected 09:30 wall-clock fire time, got %v", r.ScheduledAt)
	}
}

func TestReminderService_Create_BadClockTime(t *testing.T) {
	svc, _, _, _ := newService()

	at := "25:00"
	req := validReq
	req.At = &at

	_, _, err := svc.Create(context.Background(), req, "")
	if !errors.Is(err, domain.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestReminderService_Create_IdempotencyReturnsDuplicate(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	key := "idem-key-123"
	first, isDup, err := svc.Create(ctx, validReq, key)
	if err != nil || isDup {
		t.Fatalf("first call: err=%v isDup=%v", err, isDup)
	}

	second, isDup, err := svc.Create(ctx, validReq, key)
	if err != nil {
		t.Fatalf("second call: unexpected error: %v", err)
	}
	if !isDup {
		t.Fatal("expected isDuplicate=true for repeated idempotency key")
	}
	if second.ID != first.ID {
		t.Fatal("expected same reminder ID on duplicate")
	}
}

func TestReminderService_Create_ChatBadge(t *testing.T) {
	svc, _, _, unread := newService()
	unread.count = 4

	req := validReq
	req.Category = domain.CategoryChat
	req.TargetID = "msg-9"

	r, _, err := svc.Create(context.Background(), req, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Badge == nil || *r.Badge != 4 {
		t.Fatalf("expected badge=4, got %v", r.Badge)
	}
	if r.Payload != domain.ChatPayload("msg-9") {
		t.Fatalf("expected chat payload, got %q", r.Payload)
	}
}

func TestReminderService_Create_ChatBadgeBestEffort(t *testing.T) {
	svc, _, _, unread := newService()
	unread.err = errors.New("firestore unavailable")

	req := validReq
	req.Category = domain.CategoryChat

	r, _, err := svc.Create(context.Background(), req, "")
	if err != nil {
		t.Fatalf("store error must not block the reminder: %v", err)
	}
	if r.Badge != nil {
		t.Fatalf("expected no badge on lookup failure, got %v", r.Badge)
	}
}

func TestReminderService_Cancel_States(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		status      domain.Status
		expectedErr error
	}{
		{"pending can be cancelled", domain.StatusPending, nil},
		{"queued can be cancelled", domain.StatusQueued, nil},
		{"scheduled can be cancelled", domain.StatusScheduled, nil},
		{"already cancelled", domain.StatusCancelled, domain.ErrAlreadyCancelled},
		{"processing cannot be cancelled", domain.StatusProcessing, domain.ErrNotCancellable},
		{"sent cannot be cancelled", domain.StatusSent, domain.ErrNotCancellable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _, _ := newService()

			r, _, _ := svc.Create(ctx, validReq, "")
			_ = repo.UpdateStatus(ctx, r.ID, tc.status)

			err := svc.Cancel(ctx, r.ID)
			if err != tc.expectedErr {
				t.Fatalf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestReminderService_Cancel_NotFound(t *testing.T) {
	svc, _, _, _ := newService()
	err := svc.Cancel(context.Background(), "nonexistent-id")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReminderService_CancelAll(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Create(ctx, validReq, ""); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	other := validReq
	other.MemberID = "member-2"
	_, _, _ = svc.Create(ctx, other, "")

	count, err := svc.CancelAll(ctx, "member-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 cancelled, got %d", count)
	}
}

func TestReminderService_CreateBroadcast(t *testing.T) {
	svc, _, _, _ := newService()

	b, err := svc.CreateBroadcast(context.Background(), domain.CreateBroadcastRequest{
		MemberIDs:  []string{"a", "b", "c"},
		Category:   domain.CategoryShopping,
		Title:      "Shopping list updated",
		Importance: domain.ImportanceDefault,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Total != 3 {
		t.Fatalf("expected total=3, got %d", b.Total)
	}
}

func TestReminderService_CreateBroadcast_Empty(t *testing.T) {
	svc, _, _, _ := newService()
	_, err := svc.CreateBroadcast(context.Background(), domain.CreateBroadcastRequest{
		Category:   domain.CategoryShopping,
		Title:      "x",
		Importance: domain.ImportanceDefault,
	})
	if err != domain.ErrBroadcastEmpty {
		t.Fatalf("expected ErrBroadcastEmpty, got %v", err)
	}
}

func TestReminderService_CreateRecurring(t *testing.T) {
	svc, _, _, _ := newService()

	rec, err := svc.CreateRecurring(context.Background(), domain.CreateRecurringRequest{
		MemberID:   "member-1",
		Category:   domain.CategoryTask,
		Title:      "Evening chores check",
		Importance: domain.ImportanceDefault,
		Spec:       "daily 21:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.CronExpr != "0 21 * * *" {
		t.Fatalf("expected cron '0 21 * * *', got %q", rec.CronExpr)
	}
}

func TestReminderService_CreateRecurring_BadSpec(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.CreateRecurring(context.Background(), domain.CreateRecurringRequest{
		MemberID:   "member-1",
		Category:   domain.CategoryTask,
		Title:      "x",
		Importance: domain.ImportanceDefault,
		Spec:       "sometimes maybe",
	})
	if !errors.Is(err, domain.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestReminderService_ScheduleWeeklyReport(t *testing.T) {
	svc, _, _, _ := newService()

	rec, err := svc.ScheduleWeeklyReport(context.Background(), "member-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Category != domain.CategoryReport {
		t.Fatalf("expected report category, got %q", rec.Category)
	}
	if rec.CronExpr != "0 9 * * 0" {
		t.Fatalf("expected Sunday 09:00 cron, got %q", rec.CronExpr)
	}
}

func TestReminderService_CreateFromRecurring(t *testing.T) {
	svc, _, q, _ := newService()

	r, err := svc.CreateFromRecurring(context.Background(), &domain.RecurringReminder{
		ID:         "rec-1",
		MemberID:   "member-1",
		Category:   domain.CategoryReport,
		Title:      "Weekly report",
		Importance: domain.ImportanceLow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != domain.StatusQueued {
		t.Fatalf("expected status=queued, got %s", r.Status)
	}

	_, _, low := q.Depths()
	if low != 1 {
		t.Fatalf("expected one low-importance item, got %d", low)
	}
}

func TestReminderService_ResolveTap(t *testing.T) {
	svc, _, _, _ := newService()

	route, err := svc.ResolveTap(domain.ChatPayload("m1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Screen != domain.ScreenChat || route.TargetID != "m1" {
		t.Fatalf("unexpected route: %+v", route)
	}
}

func TestReminderService_UnreadCount(t *testing.T) {
	svc, _, _, unread := newService()
	unread.count = 7

	n, err := svc.UnreadCount(context.Background(), "member-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7, got %d", n)
	}

	if _, err := svc.UnreadCount(context.Background(), ""); err != domain.ErrInvalidMember {
		t.Fatalf("expected ErrInvalidMember, got %v", err)
	}
}

func TestReminderService_GetByID(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	r, _, _ := svc.Create(ctx, validReq, "")

	got, err := svc.GetByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != r.ID {
		t.Fatalf("expected id=%s, got %s", r.ID, got.ID)
	}
}
