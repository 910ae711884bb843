package repository

import (
	"context"
	"database/sql"
	"errors"

	"hallway-backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type adminCredential struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
}

func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (*model.AdminCredential, error) {
	query, args, err := squirrel.
		Select("id", "username", "password_hash").
		From("admin_credentials").
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row adminCredential
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.AdminCredential{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
	}, nil
}
