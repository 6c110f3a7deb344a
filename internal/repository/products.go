package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"
)

type NewProduct struct {
	CategoryName string
	Name         string
	Description  string
	Image        string
	Price        float64
	Qty          int
}

// CreateProduct inserts a product under the named category, creating the
// category first if the store does not have it yet.
func (r *Repository) CreateProduct(ctx context.Context, storeID int64, p NewProduct) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin product tx: %w", err)
	}
	defer tx.Rollback()

	var categoryID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM category WHERE store_id = $1 AND category_name = $2`,
		storeID, p.CategoryName,
	).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO category (store_id, category_name) VALUES ($1, $2) RETURNING id`,
			storeID, p.CategoryName,
		).Scan(&categoryID)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve category %q: %w", p.CategoryName, err)
	}

	var productID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO product (store_id, category_id, product_name, product_description, product_img, price, qty_in_stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		storeID, categoryID, p.Name, p.Description, p.Image, p.Price, p.Qty,
	).Scan(&productID)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product tx: %w", err)
	}
	return productID, nil
}

func (r *Repository) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, store_id, category_id, product_name, product_description, product_img, price, qty_in_stock
		 FROM product WHERE id = $1`,
		productID,
	).Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description, &p.Image, &p.Price, &p.QtyInStock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", productID, err)
	}
	return &p, nil
}

// ListProducts returns a store's products, optionally narrowed by a name
// search and a price range.
func (r *Repository) ListProducts(ctx context.Context, storeID int64, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT id, store_id, category_id, product_name, product_description, product_img, price, qty_in_stock
	          FROM product WHERE store_id = $1`
	args := []interface{}{storeID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND product_name ILIKE $%d", len(args))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		query += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query store products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description, &p.Image, &p.Price, &p.QtyInStock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product iteration: %w", err)
	}
	return products, nil
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Image       *string
	Price       *float64
	Qty         *int
}

func (r *Repository) UpdateProduct(ctx context.Context, productID int64, upd ProductUpdate) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		`UPDATE product SET
		   product_name        = COALESCE($2, product_name),
		   product_description = COALESCE($3, product_description),
		   product_img         = COALESCE($4, product_img),
		   price               = COALESCE($5, price),
		   qty_in_stock        = COALESCE($6, qty_in_stock)
		 WHERE id = $1
		 RETURNING id, store_id, category_id, product_name, product_description, product_img, price, qty_in_stock`,
		productID, upd.Name, upd.Description, upd.Image, upd.Price, upd.Qty,
	).Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Description, &p.Image, &p.Price, &p.QtyInStock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", productID, err)
	}
	return &p, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, productID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", productID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}
