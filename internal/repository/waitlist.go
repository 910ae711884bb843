package repository

import (
	"context"
	"fmt"
	"time"

	"hallway-backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type WaitlistEntry struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	ReferralCode *string   `db:"referral_code"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

func (w *WaitlistEntry) toModel() *model.WaitlistEntry {
	return &model.WaitlistEntry{
		ID:           w.ID,
		Email:        w.Email,
		ReferralCode: w.ReferralCode,
		Status:       w.Status,
		CreatedAt:    w.CreatedAt,
	}
}

// CreateWaitlistEntry inserts a new entry and returns the stored row with the
// server-assigned creation time. A duplicate email yields ErrAlreadyExists.
func (r *Repository) CreateWaitlistEntry(ctx context.Context, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	query, args, err := squirrel.
		Insert("waitlist").
		SetMap(map[string]interface{}{
			"id":            entry.ID,
			"email":         entry.Email,
			"referral_code": entry.ReferralCode,
			"status":        entry.Status,
		}).
		Suffix("RETURNING id, email, referral_code, status, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build waitlist insert query: %w", err)
	}

	var row WaitlistEntry
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert waitlist entry: %w", err)
	}

	return row.toModel(), nil
}

func (r *Repository) ListWaitlistEntries(ctx context.Context) ([]*model.WaitlistEntry, error) {
	return r.listWaitlist(ctx, nil)
}

// GetWaitlistByReferralCode returns the entries attributed to a referrer.
func (r *Repository) GetWaitlistByReferralCode(ctx context.Context, referralCode string) ([]*model.WaitlistEntry, error) {
	return r.listWaitlist(ctx, squirrel.Eq{"referral_code": referralCode})
}

func (r *Repository) listWaitlist(ctx context.Context, pred squirrel.Eq) ([]*model.WaitlistEntry, error) {
	builder := squirrel.
		Select("*").
		From("waitlist").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if pred != nil {
		builder = builder.Where(pred)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build waitlist list query: %w", err)
	}

	var rows []WaitlistEntry
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}

	entries := make([]*model.WaitlistEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].toModel()
	}

	return entries, nil
}

func (r *Repository) UpdateWaitlistStatus(ctx context.Context, id uuid.UUID, status string) error {
	query, args, err := squirrel.
		Update("waitlist").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update waitlist status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteWaitlistEntry(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("waitlist").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete waitlist entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
