package domain

import "time"

// Category identifies which kind of household event a reminder belongs to.
// Each category maps to exactly one notification channel on the device
// (see internal/category).
type Category string

const (
	CategoryTask     Category = "task"
	CategoryShopping Category = "shopping"
	CategoryChat     Category = "chat"
	CategoryExpense  Category = "expense"
	CategoryReport   Category = "report"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTask, CategoryShopping, CategoryChat, CategoryExpense, CategoryReport:
		return true
	}
	return false
}

// Importance mirrors the platform notification importance levels and also
// controls queue ordering. High is processed first.
type Importance string

const (
	ImportanceHigh    Importance = "high"
	ImportanceDefault Importance = "default"
	ImportanceLow     Importance = "low"
)

func (i Importance) IsValid() bool {
	switch i {
	case ImportanceHigh, ImportanceDefault, ImportanceLow:
		return true
	}
	return false
}

// Status tracks the lifecycle of a reminder.
type Status string

const (
	StatusPending    Status = "pending"
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusScheduled  Status = "scheduled"
)

// Reminder is the core domain entity: one notification owed to one household
// member. Delivery to the device is delegated to the push gateway; this record
// is the durable source of truth for what should fire and when.
type Reminder struct {
	ID             string     `json:"id"`
	BroadcastID    *string    `json:"broadcast_id,omitempty"`
	Category       Category   `json:"category"`
	MemberID       string     `json:"member_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	Payload        string     `json:"payload"`
	Importance     Importance `json:"importance"`
	Status         Status     `json:"status"`
	Badge          *int       `json:"badge,omitempty"`
	IdempotencyKey *string    `json:"idempotency_key,omitempty"`
	RetryCount     int        `json:"retry_count"`
	MaxRetries     int        `json:"max_retries"`
	NextRetryAt    *time.Time `json:"next_retry_at,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ProviderMsgID  *string    `json:"provider_message_id,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Broadcast groups the per-member reminders created by a single household
// fan-out (shopping list changed, expense added, ...).
type Broadcast struct {
	ID        string    `json:"id"`
	Total     int       `json:"total"`
	Pending   int       `json:"pending"`
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	Cancelled int       `json:"cancelled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecurringReminder is a standing definition that fires repeatedly, e.g. a
// daily chores nudge at 21:00 or the weekly report on Sunday morning.
// Spec keeps the human form ("daily 21:00"); CronExpr is the normalized
// cron expression the runner actually registers.
type RecurringReminder struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"member_id"`
	Category   Category   `json:"category"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Importance Importance `json:"importance"`
	Spec       string     `json:"spec"`
	CronExpr   string     `json:"cron_expr"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateReminderRequest is the inbound payload for a single reminder.
//
// At most one scheduling form may be set:
//   - ScheduledAt: fire at this exact instant
//   - DueAt (+ optional LeadMinutes): fire LeadMinutes before the deadline
//   - At ("HH:MM"): fire at the next occurrence of that wall-clock time
//
// With none set, the reminder fires immediately.
type CreateReminderRequest struct {
	Category    Category   `json:"category"`
	MemberID    string     `json:"member_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Importance  Importance `json:"importance"`
	TargetID    string     `json:"target_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	LeadMinutes *int       `json:"lead_minutes,omitempty"`
	At          *string    `json:"at,omitempty"`
}

func (r *CreateReminderRequest) Validate() error {
	if !r.Category.IsValid() {
		return ErrInvalidCategory
	}
	if !r.Importance.IsValid() {
		return ErrInvalidImportance
	}
	if r.MemberID == "" {
		return ErrInvalidMember
	}
	if r.Title == "" || len(r.Title) > 256 {
		return ErrInvalidTitle
	}
	if len(r.Body) > 2048 {
		return ErrInvalidBody
	}

	forms := 0
	if r.ScheduledAt != nil {
		forms++
	}
	if r.DueAt != nil {
		forms++
	}
	if r.At != nil {
		forms++
	}
	if forms > 1 {
		return ErrAmbiguousSchedule
	}
	if r.LeadMinutes != nil && r.DueAt == nil {
		return ErrLeadWithoutDue
	}
	if r.LeadMinutes != nil && *r.LeadMinutes < 0 {
		return ErrNegativeLead
	}
	return nil
}

// CreateBroadcastRequest creates one reminder per household member.
type CreateBroadcastRequest struct {
	MemberIDs   []string   `json:"member_ids"`
	Category    Category   `json:"category"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Importance  Importance `json:"importance"`
	TargetID    string     `json:"target_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// MaxBroadcastMembers bounds a fan-out to something a household can plausibly
// contain; anything bigger is almost certainly a client bug.
const MaxBroadcastMembers = 50

func (r *CreateBroadcastRequest) Validate() error {
	if len(r.MemberIDs) == 0 {
		return ErrBroadcastEmpty
	}
	if len(r.MemberIDs) > MaxBroadcastMembers {
		return ErrBroadcastTooLarge
	}
	for _, id := range r.MemberIDs {
		if id == "" {
			return ErrInvalidMember
		}
	}
	single := CreateReminderRequest{
		Category:    r.Category,
		MemberID:    r.MemberIDs[0],
		Title:       r.Title,
		Body:        r.Body,
		Importance:  r.Importance,
		ScheduledAt: r.ScheduledAt,
	}
	return single.Validate()
}

// CreateRecurringRequest defines a repeating reminder.
type CreateRecurringRequest struct {
	MemberID   string     `json:"member_id"`
	Category   Category   `json:"category"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Importance Importance `json:"importance"`
	Spec       string     `json:"spec"`
}

func (r *CreateRecurringRequest) Validate() error {
	if !r.Category.IsValid() {
		return ErrInvalidCategory
	}
	if !r.Importance.IsValid() {
		return ErrInvalidImportance
	}
	if r.MemberID == "" {
		return ErrInvalidMember
	}
	if r.Title == "" || len(r.Title) > 256 {
		return ErrInvalidTitle
	}
	if r.Spec == "" {
		return ErrInvalidSpec
	}
	return nil
}

// ListFilter holds query parameters for paginated reminder listing.
type ListFilter struct {
	Status   *Status
	Category *Category
	MemberID *string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}
