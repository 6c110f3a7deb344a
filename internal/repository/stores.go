package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"

	"github.com/lib/pq"
)

type NewStore struct {
	Name        string
	Logo        string
	ColorScheme string
	SiteFont    string
}

func (r *Repository) CreateStore(ctx context.Context, ownerID int64, s NewStore) (*domain.Store, error) {
	var store domain.Store
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO store (owner_id, store_name, logo, color_scheme, site_font)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, owner_id, store_name, logo, color_scheme, site_font`,
		ownerID, s.Name, s.Logo, s.ColorScheme, s.SiteFont,
	).Scan(&store.ID, &store.OwnerID, &store.Name, &store.Logo, &store.ColorScheme, &store.SiteFont)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateStore
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}
	return &store, nil
}

// GetStore assembles the full storefront view: the store row plus its
// products, categories, promotions, and order summaries.
func (r *Repository) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	var store domain.Store
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, store_name, logo, color_scheme, site_font
		 FROM store WHERE id = $1`,
		storeID,
	).Scan(&store.ID, &store.OwnerID, &store.Name, &store.Logo, &store.ColorScheme, &store.SiteFont)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query store %d: %w", storeID, err)
	}

	products, err := r.ListProducts(ctx, storeID, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}
	store.Products = products

	categories, err := r.listCategoryRows(ctx, storeID)
	if err != nil {
		return nil, err
	}
	store.Categories = categories

	promoRows, err := r.db.QueryContext(ctx,
		`SELECT id, store_id, prom_description, prom_start_date, prom_end_date, discount_rate
		 FROM promotion WHERE store_id = $1 ORDER BY id`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query promotions: %w", err)
	}
	defer promoRows.Close()
	for promoRows.Next() {
		var p domain.Promotion
		if err := promoRows.Scan(&p.ID, &p.StoreID, &p.Description, &p.StartDate, &p.EndDate, &p.DiscountRate); err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		store.Promotions = append(store.Promotions, p)
	}
	if err := promoRows.Err(); err != nil {
		return nil, fmt.Errorf("promotion iteration: %w", err)
	}

	orderRows, err := r.db.QueryContext(ctx,
		`SELECT id, order_date, order_status, order_total
		 FROM store_order WHERE store_id = $1 ORDER BY order_date DESC`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query store order briefs: %w", err)
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var o domain.OrderBrief
		if err := orderRows.Scan(&o.ID, &o.OrderDate, &o.Status, &o.Total); err != nil {
			return nil, fmt.Errorf("scan order brief: %w", err)
		}
		store.Orders = append(store.Orders, o)
	}
	if err := orderRows.Err(); err != nil {
		return nil, fmt.Errorf("order brief iteration: %w", err)
	}

	return &store, nil
}

// GetStoreByOwner resolves the single store an owner operates.
func (r *Repository) GetStoreByOwner(ctx context.Context, ownerID int64) (*domain.Store, error) {
	var storeID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM store WHERE owner_id = $1`, ownerID,
	).Scan(&storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query store by owner %d: %w", ownerID, err)
	}
	return r.GetStore(ctx, storeID)
}

// GetStoreOwnerID is the lightweight ownership lookup used by the
// authorization checks; it avoids assembling the whole storefront view.
func (r *Repository) GetStoreOwnerID(ctx context.Context, storeID int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM store WHERE id = $1`, storeID,
	).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrStoreNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query store owner: %w", err)
	}
	return ownerID, nil
}

type StoreUpdate struct {
	Name        *string
	Logo        *string
	ColorScheme *string
	SiteFont    *string
}

func (r *Repository) UpdateStore(ctx context.Context, ownerID int64, upd StoreUpdate) (*domain.Store, error) {
	var store domain.Store
	err := r.db.QueryRowContext(ctx,
		`UPDATE store SET
		   store_name   = COALESCE($2, store_name),
		   logo         = COALESCE($3, logo),
		   color_scheme = COALESCE($4, color_scheme),
		   site_font    = COALESCE($5, site_font)
		 WHERE owner_id = $1
		 RETURNING id, owner_id, store_name, logo, color_scheme, site_font`,
		ownerID, upd.Name, upd.Logo, upd.ColorScheme, upd.SiteFont,
	).Scan(&store.ID, &store.OwnerID, &store.Name, &store.Logo, &store.ColorScheme, &store.SiteFont)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update store for owner %d: %w", ownerID, err)
	}
	return &store, nil
}

func (r *Repository) DeleteStore(ctx context.Context, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM store WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("delete store for owner %d: %w", ownerID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoreNotFound
	}
	return nil
}
