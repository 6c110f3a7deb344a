package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"
)

func (r *Repository) CreateCategory(ctx context.Context, storeID int64, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO category (store_id, category_name)
		 VALUES ($1, $2)
		 RETURNING id, store_id, category_name`,
		storeID, name,
	).Scan(&c.ID, &c.StoreID, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

// GetCategory returns the category with its products.
func (r *Repository) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, store_id, category_name FROM category WHERE id = $1`,
		categoryID,
	).Scan(&c.ID, &c.StoreID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category %d: %w", categoryID, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, store_id, category_id, product_name, product_description, product_img, price, qty_in_stock
		 FROM product WHERE category_id = $1 ORDER BY id`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("query category products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	c.Products = products
	return &c, nil
}

// ListCategories returns every category for a store, each with its products.
func (r *Repository) ListCategories(ctx context.Context, storeID int64) ([]domain.Category, error) {
	categories, err := r.listCategoryRows(ctx, storeID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		full, err := r.GetCategory(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Products = full.Products
	}
	return categories, nil
}

func (r *Repository) listCategoryRows(ctx context.Context, storeID int64) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, store_id, category_name FROM category WHERE store_id = $1 ORDER BY id`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query store categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category iteration: %w", err)
	}
	return categories, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, categoryID int64, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`UPDATE category SET category_name = $2 WHERE id = $1
		 RETURNING id, store_id, category_name`,
		categoryID, name,
	).Scan(&c.ID, &c.StoreID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", categoryID, err)
	}
	return &c, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, categoryID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", categoryID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
