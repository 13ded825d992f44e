package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

const reminderColumns = `id, broadcast_id, category, member_id, title, body, payload,
		       importance, status, badge, idempotency_key, retry_count, max_retries,
		       next_retry_at, scheduled_at, sent_at, provider_msg_id, error_message,
		       created_at, updated_at`

type pgReminderRepository struct {
	pool *pgxpool.Pool
}

// NewPgReminderRepository returns a ReminderRepository backed by PostgreSQL.
func NewPgReminderRepository(pool *pgxpool.Pool) ReminderRepository {
	return &pgReminderRepository{pool: pool}
}

func (r *pgReminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reminders
			(id, broadcast_id, category, member_id, title, body, payload,
			 importance, status, badge, idempotency_key, retry_count, max_retries,
			 scheduled_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		rem.ID, rem.BroadcastID, rem.Category, rem.MemberID, rem.Title, rem.Body, rem.Payload,
		rem.Importance, rem.Status, rem.Badge, rem.IdempotencyKey, rem.RetryCount, rem.MaxRetries,
		rem.ScheduledAt, rem.CreatedAt, rem.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "idempotency_key") {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *pgReminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE id = $1`, id)

	rem, err := scanReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rem, err
}

func (r *pgReminderRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Reminder, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE idempotency_key = $1`, key)

	rem, err := scanReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rem, err
}

func (r *pgReminderRepository) List(ctx context.Context, f domain.ListFilter) ([]*domain.Reminder, int, error) {
	where, args := buildListWhere(f)
	offset := (f.Page - 1) * f.Limit

	// Count total matching rows for pagination metadata.
	var total int
	countQuery := "SELECT COUNT(*) FROM reminders" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reminders: %w", err)
	}

	// Append pagination args after the WHERE args.
	args = append(args, f.Limit, offset)
	limitPlaceholder := fmt.Sprintf("$%d", len(args)-1)
	offsetPlaceholder := fmt.Sprintf("$%d", len(args))

	query := fmt.Sprintf(`
		SELECT `+reminderColumns+`
		FROM reminders%s
		ORDER BY created_at DESC
		LIMIT %s OFFSET %s`, where, limitPlaceholder, offsetPlaceholder)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, 0, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, total, rows.Err()
}

func (r *pgReminderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE reminders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

func (r *pgReminderRepository) MarkSent(ctx context.Context, id, providerMsgID string, sentAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reminders
		SET status = 'sent', provider_msg_id = $1, sent_at = $2, error_message = NULL, updated_at = NOW()
		WHERE id = $3`, providerMsgID, sentAt, id)
	return err
}

func (r *pgReminderRepository) MarkFailed(ctx context.Context, id, errMsg string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reminders
		SET status = 'failed', error_message = $1, next_retry_at = NULL, updated_at = NOW()
		WHERE id = $2`, errMsg, id)
	return err
}

func (r *pgReminderRepository) ScheduleRetry(ctx context.Context, id string, retryCount int, nextRetry time.Time, errMsg string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reminders
		SET status = 'failed', retry_count = $1, next_retry_at = $2, error_message = $3, updated_at = NOW()
		WHERE id = $4`, retryCount, nextRetry, errMsg, id)
	return err
}

func (r *pgReminderRepository) Cancel(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE reminders SET status = 'cancelled', updated_at = NOW() WHERE id = $1`, id)
	return err
}

// CancelAllForMember is the bulk analogue of the plugin's cancel-all call:
// every reminder for the member that has not yet been delivered is cancelled.
func (r *pgReminderRepository) CancelAllForMember(ctx context.Context, memberID string) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reminders SET status = 'cancelled', updated_at = NOW()
		WHERE member_id = $1
		  AND status IN ('pending','queued','scheduled','failed')`, memberID)
	if err != nil {
		return 0, fmt.Errorf("cancel reminders for member: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgReminderRepository) FindDueRetries(ctx context.Context) ([]*domain.Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE status = 'failed'
		  AND retry_count < max_retries
		  AND next_retry_at <= NOW()
		LIMIT 500`)
	if err != nil {
		return nil, fmt.Errorf("find due retries: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

func (r *pgReminderRepository) FindDueScheduled(ctx context.Context) ([]*domain.Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE status = 'scheduled'
		  AND scheduled_at <= NOW()
		LIMIT 500`)
	if err != nil {
		return nil, fmt.Errorf("find due scheduled: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

func (r *pgReminderRepository) CreateBroadcast(ctx context.Context, broadcastID string, reminders []*domain.Reminder) (*domain.Broadcast, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	b := &domain.Broadcast{
		ID:        broadcastID,
		Total:     len(reminders),
		Pending:   len(reminders),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO broadcasts (id, total, pending, sent, failed, cancelled, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		b.ID, b.Total, b.Pending, 0, 0, 0, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert broadcast: %w", err)
	}

	for _, rem := range reminders {
		_, err = tx.Exec(ctx, `
			INSERT INTO reminders
				(id, broadcast_id, category, member_id, title, body, payload,
				 importance, status, badge, idempotency_key, retry_count, max_retries,
				 scheduled_at, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			rem.ID, rem.BroadcastID, rem.Category, rem.MemberID, rem.Title, rem.Body, rem.Payload,
			rem.Importance, rem.Status, rem.Badge, rem.IdempotencyKey, rem.RetryCount, rem.MaxRetries,
			rem.ScheduledAt, rem.CreatedAt, rem.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert broadcast reminder: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit broadcast: %w", err)
	}

	return b, nil
}

func (r *pgReminderRepository) GetBroadcast(ctx context.Context, broadcastID string) (*domain.Broadcast, []*domain.Reminder, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, total, pending, sent, failed, cancelled, created_at, updated_at
		FROM broadcasts WHERE id = $1`, broadcastID)

	var b domain.Broadcast
	err := row.Scan(&b.ID, &b.Total, &b.Pending, &b.Sent, &b.Failed, &b.Cancelled, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get broadcast: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE broadcast_id = $1 ORDER BY created_at ASC`, broadcastID)
	if err != nil {
		return nil, nil, fmt.Errorf("get broadcast reminders: %w", err)
	}
	defer rows.Close()

	reminders, err := scanReminders(rows)
	return &b, reminders, err
}

func (r *pgReminderRepository) UpdateBroadcastCounts(ctx context.Context, broadcastID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE broadcasts b
		SET
			pending   = (SELECT COUNT(*) FROM reminders WHERE broadcast_id = b.id AND status IN ('pending','queued','processing','scheduled')),
			sent      = (SELECT COUNT(*) FROM reminders WHERE broadcast_id = b.id AND status = 'sent'),
			failed    = (SELECT COUNT(*) FROM reminders WHERE broadcast_id = b.id AND status = 'failed'),
			cancelled = (SELECT COUNT(*) FROM reminders WHERE broadcast_id = b.id AND status = 'cancelled'),
			updated_at = NOW()
		WHERE id = $1`, broadcastID)
	return err
}

func (r *pgReminderRepository) CreateRecurring(ctx context.Context, rec *domain.RecurringReminder) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recurring_reminders
			(id, member_id, category, title, body, importance, spec, cron_expr, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.MemberID, rec.Category, rec.Title, rec.Body,
		rec.Importance, rec.Spec, rec.CronExpr, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recurring reminder: %w", err)
	}
	return nil
}

func (r *pgReminderRepository) ListRecurring(ctx context.Context) ([]*domain.RecurringReminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, member_id, category, title, body, importance, spec, cron_expr, created_at
		FROM recurring_reminders ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recurring reminders: %w", err)
	}
	defer rows.Close()

	var result []*domain.RecurringReminder
	for rows.Next() {
		var rec domain.RecurringReminder
		if err := rows.Scan(
			&rec.ID, &rec.MemberID, &rec.Category, &rec.Title, &rec.Body,
			&rec.Importance, &rec.Spec, &rec.CronExpr, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &rec)
	}
	return result, rows.Err()
}

func (r *pgReminderRepository) DeleteRecurring(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recurring reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- helpers ----

// scanReminder reads a single reminder row from any pgx row type.
func scanReminder(row pgx.Row) (*domain.Reminder, error) {
	var rem domain.Reminder
	err := row.Scan(
		&rem.ID, &rem.BroadcastID, &rem.Category, &rem.MemberID, &rem.Title,
		&rem.Body, &rem.Payload, &rem.Importance, &rem.Status, &rem.Badge,
		&rem.IdempotencyKey, &rem.RetryCount, &rem.MaxRetries,
		&rem.NextRetryAt, &rem.ScheduledAt, &rem.SentAt, &rem.ProviderMsgID, &rem.ErrorMessage,
		&rem.CreatedAt, &rem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func scanReminders(rows pgx.Rows) ([]*domain.Reminder, error) {
	var result []*domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rem)
	}
	return result, rows.Err()
}

// buildListWhere builds a parameterised WHERE clause from a ListFilter.
func buildListWhere(f domain.ListFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, val any) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.Category != nil {
		add("category = $%d", *f.Category)
	}
	if f.MemberID != nil {
		add("member_id = $%d", *f.MemberID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
