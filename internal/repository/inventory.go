package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DecrementStock applies a floor-at-zero decrement to a product's stock.
// The read locks the row (FOR UPDATE) so two concurrent decrements of the
// same product serialize instead of losing an update. A missing product is
// a no-op: inventory tracking is best-effort and must not block an order.
func (r *Repository) DecrementStock(ctx context.Context, productID int64, quantity int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin stock tx: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT qty_in_stock FROM product WHERE id = $1 FOR UPDATE`,
		productID,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read stock for product %d: %w", productID, err)
	}

	newLevel := current - quantity
	if newLevel < 0 {
		newLevel = 0
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE product SET qty_in_stock = $1 WHERE id = $2`,
		newLevel, productID,
	)
	if err != nil {
		return 0, fmt.Errorf("write stock for product %d: %w", productID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit stock tx: %w", err)
	}
	return newLevel, nil
}
