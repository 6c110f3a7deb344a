package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"

	"github.com/lib/pq"
)

type NewOwner struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Roles        string
	IsAdmin      bool
}

func (r *Repository) CreateOwner(ctx context.Context, o NewOwner) (*domain.Owner, error) {
	if o.Roles == "" {
		o.Roles = "owner"
	}
	var owner domain.Owner
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO store_owner (username, password, first_name, last_name, email, roles, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, username, first_name, last_name, email, roles, is_admin`,
		o.Username, o.PasswordHash, o.FirstName, o.LastName, o.Email, o.Roles, o.IsAdmin,
	).Scan(&owner.ID, &owner.Username, &owner.FirstName, &owner.LastName, &owner.Email, &owner.Roles, &owner.IsAdmin)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert owner: %w", err)
	}
	return &owner, nil
}

func (r *Repository) GetOwnerCredentials(ctx context.Context, username string) (*domain.Owner, string, error) {
	var owner domain.Owner
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password, first_name, last_name, email, roles, is_admin
		 FROM store_owner WHERE username = $1`,
		username,
	).Scan(&owner.ID, &owner.Username, &hash, &owner.FirstName, &owner.LastName, &owner.Email, &owner.Roles, &owner.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrOwnerNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("query owner credentials: %w", err)
	}
	return &owner, hash, nil
}

func (r *Repository) GetOwner(ctx context.Context, ownerID int64) (*domain.Owner, error) {
	var owner domain.Owner
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, first_name, last_name, email, roles, is_admin
		 FROM store_owner WHERE id = $1`,
		ownerID,
	).Scan(&owner.ID, &owner.Username, &owner.FirstName, &owner.LastName, &owner.Email, &owner.Roles, &owner.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query owner %d: %w", ownerID, err)
	}
	return &owner, nil
}

type OwnerUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (r *Repository) UpdateOwner(ctx context.Context, ownerID int64, upd OwnerUpdate) (*domain.Owner, error) {
	var owner domain.Owner
	err := r.db.QueryRowContext(ctx,
		`UPDATE store_owner SET
		   first_name = COALESCE($2, first_name),
		   last_name  = COALESCE($3, last_name),
		   email      = COALESCE($4, email)
		 WHERE id = $1
		 RETURNING id, username, first_name, last_name, email, roles, is_admin`,
		ownerID, upd.FirstName, upd.LastName, upd.Email,
	).Scan(&owner.ID, &owner.Username, &owner.FirstName, &owner.LastName, &owner.Email, &owner.Roles, &owner.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update owner %d: %w", ownerID, err)
	}
	return &owner, nil
}

func (r *Repository) DeleteOwner(ctx context.Context, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM store_owner WHERE id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("delete owner %d: %w", ownerID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOwnerNotFound
	}
	return nil
}
