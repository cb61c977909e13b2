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

// PaymentRepository defines access to the payments table.
type PaymentRepository interface {
	// Settle records the payment and removes the consumed cart rows in one
	// transaction. Keyed on the transaction id: settling the same charge
	// twice is a no-op and returns false.
	Settle(ctx context.Context, p *model.Payment) (bool, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	CountPayments(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type paymentRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRepo(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepo{pool: pool}
}

func (r *paymentRepo) Settle(ctx context.Context, p *model.Payment) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	insert := `
		INSERT INTO payments (id, email, transaction_id, price, class_ids, cart_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transaction_id) DO NOTHING
		RETURNING created_at
	`
	err = tx.QueryRow(ctx, insert,
		p.ID, p.Email, p.TransactionID, p.Price, p.ClassIDs, p.CartIDs,
	).Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already settled; the cart rows were removed the first time.
			return false, nil
		}
		return false, fmt.Errorf("record payment %s: %w", p.TransactionID, err)
	}

	// Consumed cart rows go away in the same transaction, so a crash can
	// never leave a recorded payment with stale cart items behind.
	if len(p.CartIDs) > 0 {
		del := `DELETE FROM carts WHERE id = ANY($1) AND email = $2`
		if _, err := tx.Exec(ctx, del, p.CartIDs, p.Email); err != nil {
			return false, fmt.Errorf("clear cart for payment %s: %w", p.TransactionID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit settlement %s: %w", p.TransactionID, err)
	}
	return true, nil
}

func (r *paymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	query := `
		SELECT id, email, transaction_id, price, class_ids, cart_ids, created_at
		FROM payments
		WHERE email = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list payments for %s: %w", email, err)
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(
			&p.ID, &p.Email, &p.TransactionID, &p.Price, &p.ClassIDs, &p.CartIDs, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) CountPayments(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (r *paymentRepo) TotalRevenue(ctx context.Context) (float64, error) {
	// Aggregate in the database rather than loading every payment row.
	var total float64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(price), 0) FROM payments`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum payment prices: %w", err)
	}
	return total, nil
}
