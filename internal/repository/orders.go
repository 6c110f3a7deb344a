package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"
)

// CreateOrder inserts the order header and one line per cart item in a single
// transaction. The header takes its store from the first cart item; status
// falls back to the column default ('pending'). Either every row exists
// afterward or none do.
func (r *Repository) CreateOrder(ctx context.Context, userID *int64, orderTotal float64, cart []domain.CartItem) (int64, error) {
	if len(cart) == 0 {
		return 0, errors.New("cart is empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO store_order (store_id, user_id, order_total)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		cart[0].StoreID, userID, orderTotal,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order header: %w", err)
	}

	for _, item := range cart {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_line (order_id, store_id, product_id, price, qty)
			 VALUES ($1, $2, $3, $4, $5)`,
			orderID, item.StoreID, item.ProductID, item.Price, item.Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order line for product %d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order tx: %w", err)
	}
	return orderID, nil
}

// GetOrder returns the header with the buyer's username plus every line,
// each enriched with its product's current name and image for display.
func (r *Repository) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	var username sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT o.id, o.store_id, o.user_id, COALESCE(u.username, ''), o.order_total, o.order_status, o.order_date
		 FROM store_order o
		 LEFT JOIN user_info u ON u.id = o.user_id
		 WHERE o.id = $1`,
		orderID,
	).Scan(&order.ID, &order.StoreID, &order.UserID, &username, &order.OrderTotal, &order.Status, &order.OrderDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order %d: %w", orderID, err)
	}
	order.Username = username.String

	rows, err := r.db.QueryContext(ctx,
		`SELECT l.id, l.store_id, l.product_id, l.price, l.qty,
		        COALESCE(p.product_name, ''), COALESCE(p.product_img, '')
		 FROM order_line l
		 LEFT JOIN product p ON p.id = l.product_id
		 WHERE l.order_id = $1
		 ORDER BY l.id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID,
			&line.StoreID,
			&line.ProductID,
			&line.Price,
			&line.Quantity,
			&line.ProductName,
			&line.Image,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order line iteration: %w", err)
	}

	return &order, nil
}

// ListOrdersByStore fetches ids first and then re-uses GetOrder per id.
// Fine for store dashboards with dozens of orders; not built for more.
func (r *Repository) ListOrdersByStore(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM store_order WHERE store_id = $1 ORDER BY order_date DESC`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query store orders: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order id iteration: %w", err)
	}

	orders := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := r.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
