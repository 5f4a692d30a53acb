package repository

import (
	"context"
	"time"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/db"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, last_login, is_active, created_at, updated_at`

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email.String())
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id           uuid.UUID
		rawEmail     string
		passwordHash string
		rawRole      string
		lastLogin    *time.Time
		isActive     bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &rawEmail, &passwordHash, &rawRole, &lastLogin,
		&isActive, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	role, err := user.NewRole(rawRole)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err)
	}

	return user.Reconstruct(id, email, passwordHash, role, lastLogin,
		isActive, createdAt, updatedAt), nil
}
