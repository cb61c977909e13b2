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

// CartRepository defines access to the carts table.
type CartRepository interface {
	// AddItem inserts a cart row unless the (class, email) pair is already
	// present. Returns false when the pair already existed.
	AddItem(ctx context.Context, item *model.CartItem) (bool, error)
	ListByEmail(ctx context.Context, email string) ([]model.CartItem, error)
	// DeleteItem removes a cart row, scoped to its owner. Returns false
	// when no row matched.
	DeleteItem(ctx context.Context, id, email string) (bool, error)
	Exists(ctx context.Context, classID, email string) (bool, error)
}

type cartRepo struct {
	pool *pgxpool.Pool
}

func NewCartRepo(pool *pgxpool.Pool) CartRepository {
	return &cartRepo{pool: pool}
}

func (r *cartRepo) AddItem(ctx context.Context, item *model.CartItem) (bool, error) {
	// The unique (class_id, email) index makes the insert race-free;
	// concurrent adds for the same pair collapse into one row.
	query := `
		INSERT INTO carts (id, class_id, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (class_id, email) DO NOTHING
		RETURNING id, created_at
	`
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query, item.ID, item.ClassID, item.Email).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("adding class %s to cart of %s: %w", item.ClassID, item.Email, err)
	}
	return true, nil
}

func (r *cartRepo) ListByEmail(ctx context.Context, email string) ([]model.CartItem, error) {
	query := `
		SELECT id, class_id, email, created_at
		FROM carts
		WHERE email = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list cart for %s: %w", email, err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.ClassID, &item.Email, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}
	return items, nil
}

func (r *cartRepo) DeleteItem(ctx context.Context, id, email string) (bool, error) {
	query := `DELETE FROM carts WHERE id = $1 AND email = $2`
	tag, err := r.pool.Exec(ctx, query, id, email)
	if err != nil {
		return false, fmt.Errorf("delete cart item %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepo) Exists(ctx context.Context, classID, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM carts WHERE class_id = $1 AND email = $2)`
	if err := r.pool.QueryRow(ctx, query, classID, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check cart for class %s and %s: %w", classID, email, err)
	}
	return exists, nil
}
