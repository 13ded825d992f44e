package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict: idempotency key already exists")
	ErrInvalidCategory   = errors.New("invalid category: must be task, shopping, chat, expense, or report")
	ErrInvalidImportance = errors.New("invalid importance: must be high, default, or low")
	ErrInvalidMember     = errors.New("member id must not be empty")
	ErrInvalidTitle      = errors.New("title must be between 1 and 256 characters")
	ErrInvalidBody       = errors.New("body must not exceed 2048 characters")
	ErrAmbiguousSchedule = errors.New("at most one of scheduled_at, due_at, at may be set")
	ErrLeadWithoutDue    = errors.New("lead_minutes requires due_at")
	ErrNegativeLead      = errors.New("lead_minutes must not be negative")
	ErrInvalidSpec       = errors.New("invalid schedule spec: use 'daily HH:MM', 'weekly <day> HH:MM', or a cron expression")
	ErrUnknownPayload    = errors.New("unknown tap payload")
	ErrBroadcastEmpty    = errors.New("broadcast must contain at least one member")
	ErrBroadcastTooLarge = errors.New("broadcast exceeds maximum of 50 members")
	ErrAlreadyCancelled  = errors.New("reminder is already cancelled")
	ErrNotCancellable    = errors.New("reminder cannot be cancelled in its current status")
	ErrQueueFull         = errors.New("queue is at capacity, try again later")
)
