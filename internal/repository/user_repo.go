package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository defines access to the users table.
type UserRepository interface {
	// CreateUser inserts the user unless one with the same email already
	// exists. Returns false when the email was already taken.
	CreateUser(ctx context.Context, u *model.User) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]model.User, error)
	// PromoteToAdmin sets role=admin on the user with the given id.
	// Returns false when no such user exists.
	PromoteToAdmin(ctx context.Context, id string) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
}

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) (bool, error) {
	// Uniqueness lives in the store (unique index on email), not in a
	// check-then-act sequence, so concurrent sign-ins cannot race.
	query := `
		INSERT INTO users (id, name, email, photo_url, role, gender, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		u.ID, u.Name, u.Email, u.PhotoURL, u.Role, u.Gender, u.Phone, u.Address,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("creating user %s: %w", u.Email, err)
	}
	return true, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, photo_url, role, gender, phone, address, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var u model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PhotoURL, &u.Role,
		&u.Gender, &u.Phone, &u.Address, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user %s: %w", email, err)
	}
	return &u, nil
}

func (r *userRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, name, email, photo_url, role, gender, phone, address, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepo) ListUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	query := `
		SELECT id, name, email, photo_url, role, gender, phone, address, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list users with role %s: %w", role, err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepo) PromoteToAdmin(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE users
		SET role = 'admin', updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("promote user %s to admin: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PhotoURL, &u.Role,
			&u.Gender, &u.Phone, &u.Address, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}
