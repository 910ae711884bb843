package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hallway-backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type User struct {
	ID               uuid.UUID `db:"id"`
	ReferenceCode    string    `db:"reference_code"`
	Email            string    `db:"email"`
	FullName         string    `db:"full_name"`
	PasswordHash     string    `db:"password_hash"`
	Username         *string   `db:"username"`
	DateOfBirth      *string   `db:"date_of_birth"`
	PresentAddress   *string   `db:"present_address"`
	PermanentAddress *string   `db:"permanent_address"`
	City             *string   `db:"city"`
	PostalCode       *string   `db:"postal_code"`
	Country          *string   `db:"country"`
	Level            string    `db:"level"`
	Verified         bool      `db:"verified"`

	AccumulatedPoints int `db:"accumulated_points"`
	DeductedPoints    int `db:"deducted_points"`
	TotalPoints       int `db:"total_points"`
	PendingPoints     int `db:"pending_points"`

	CreatedAt time.Time `db:"created_at"`
}

type leaderboardRow struct {
	FullName    string `db:"full_name"`
	TotalPoints int    `db:"total_points"`
	Verified    bool   `db:"verified"`
	Level       string `db:"level"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		ID:                u.ID,
		ReferenceCode:     u.ReferenceCode,
		Email:             u.Email,
		FullName:          u.FullName,
		PasswordHash:      u.PasswordHash,
		Username:          u.Username,
		DateOfBirth:       u.DateOfBirth,
		PresentAddress:    u.PresentAddress,
		PermanentAddress:  u.PermanentAddress,
		City:              u.City,
		PostalCode:        u.PostalCode,
		Country:           u.Country,
		Level:             u.Level,
		Verified:          u.Verified,
		AccumulatedPoints: u.AccumulatedPoints,
		DeductedPoints:    u.DeductedPoints,
		TotalPoints:       u.TotalPoints,
		PendingPoints:     u.PendingPoints,
		CreatedAt:         u.CreatedAt,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"id":                 user.ID,
			"reference_code":     user.ReferenceCode,
			"email":              user.Email,
			"full_name":          user.FullName,
			"password_hash":      user.PasswordHash,
			"username":           user.Username,
			"date_of_birth":      user.DateOfBirth,
			"present_address":    user.PresentAddress,
			"permanent_address":  user.PermanentAddress,
			"city":               user.City,
			"postal_code":        user.PostalCode,
			"country":            user.Country,
			"level":              user.Level,
			"verified":           user.Verified,
			"accumulated_points": user.AccumulatedPoints,
			"deducted_points":    user.DeductedPoints,
			"total_points":       user.TotalPoints,
			"pending_points":     user.PendingPoints,
			"created_at":         user.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) GetUserByReferenceCode(ctx context.Context, referenceCode string) (*model.User, error) {
	return r.getUser(ctx, squirrel.Eq{"reference_code": referenceCode})
}

func (r *Repository) getUser(ctx context.Context, pred squirrel.Eq) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Update("users").
			SetMap(map[string]interface{}{
				"reference_code":    user.ReferenceCode,
				"email":             user.Email,
				"full_name":         user.FullName,
				"password_hash":     user.PasswordHash,
				"username":          user.Username,
				"date_of_birth":     user.DateOfBirth,
				"present_address":   user.PresentAddress,
				"permanent_address": user.PermanentAddress,
				"city":              user.City,
				"postal_code":       user.PostalCode,
				"country":           user.Country,
				"level":             user.Level,
				"verified":          user.Verified,
			}).
			Where(squirrel.Eq{"id": user.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build user update query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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

func (r *Repository) ListUsers(ctx context.Context, search string) ([]*model.User, error) {
	builder := squirrel.
		Select("*").
		From("users").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"reference_code": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users list query: %w", err)
	}

	var users []User
	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	userList := make([]*model.User, len(users))
	for i := range users {
		userList[i] = users[i].toModel()
	}

	return userList, nil
}

func (r *Repository) GetTopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select("full_name", "total_points", "verified", "level").
		From("users").
		OrderBy("total_points DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}

	entries := make([]*model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = &model.LeaderboardEntry{
			FullName:    row.FullName,
			TotalPoints: row.TotalPoints,
			Verified:    row.Verified,
			Level:       row.Level,
		}
	}

	return entries, nil
}

// AwardReferralPoints adds points to the user owning the reference code as a
// single atomic increment. A dangling code matches no row and reports
// awarded=false without error.
func (r *Repository) AwardReferralPoints(ctx context.Context, referenceCode string, points int) (bool, error) {
	query, args, err := squirrel.
		Update("users").
		Set("total_points", squirrel.Expr("total_points + ?", points)).
		Set("accumulated_points", squirrel.Expr("accumulated_points + ?", points)).
		Where(squirrel.Eq{"reference_code": referenceCode}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to award referral points: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
