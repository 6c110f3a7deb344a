package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"
)

func (r *Repository) CreateAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO address (user_id, street_address, city, state_residence, zip_code)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		a.UserID, a.StreetAddress, a.City, a.State, a.ZipCode,
	).Scan(&a.ID)
	if err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	return &a, nil
}

type AddressUpdate struct {
	StreetAddress *string
	City          *string
	State         *string
	ZipCode       *string
}

func (r *Repository) UpdateAddress(ctx context.Context, userID int64, upd AddressUpdate) (*domain.Address, error) {
	var a domain.Address
	err := r.db.QueryRowContext(ctx,
		`UPDATE address SET
		   street_address  = COALESCE($2, street_address),
		   city            = COALESCE($3, city),
		   state_residence = COALESCE($4, state_residence),
		   zip_code        = COALESCE($5, zip_code)
		 WHERE user_id = $1
		 RETURNING id, user_id, street_address, city, state_residence, zip_code`,
		userID, upd.StreetAddress, upd.City, upd.State, upd.ZipCode,
	).Scan(&a.ID, &a.UserID, &a.StreetAddress, &a.City, &a.State, &a.ZipCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update address for user %d: %w", userID, err)
	}
	return &a, nil
}

func (r *Repository) DeleteAddress(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM address WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete address for user %d: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}
	return nil
}
