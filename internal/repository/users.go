package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"

	"github.com/lib/pq"
)

// NewUser carries everything needed to insert an account. The password is
// already hashed by the caller; this layer never sees plaintext.
type NewUser struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	IsAdmin      bool
}

func (r *Repository) CreateUser(ctx context.Context, u NewUser) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_info (username, password, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, username, first_name, last_name, email, is_admin`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.IsAdmin,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

// GetUserCredentials returns the account and its password hash for login.
func (r *Repository) GetUserCredentials(ctx context.Context, username string) (*domain.User, string, error) {
	var user domain.User
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password, first_name, last_name, email, is_admin
		 FROM user_info WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &hash, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("query user credentials: %w", err)
	}
	return &user, hash, nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, first_name, last_name, email, is_admin
		 FROM user_info WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user %d: %w", userID, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, street_address, city, state_residence, zip_code
		 FROM address WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query user addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.StreetAddress, &a.City, &a.State, &a.ZipCode); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		user.Addresses = append(user.Addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("address iteration: %w", err)
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, first_name, last_name, email, is_admin
		 FROM user_info WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return &user, nil
}

// GetOrCreateUserByEmail provisions a guest account for an email captured by
// the payment processor's checkout form. ON CONFLICT DO NOTHING plus a
// re-read makes the lookup-or-create race-safe: duplicate webhook deliveries
// for the same email converge on one account.
func (r *Repository) GetOrCreateUserByEmail(ctx context.Context, email, name, placeholderHash string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_info (username, password, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, '', $1, false)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id, username, first_name, last_name, email, is_admin`,
		email, placeholderHash, name,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if err == nil {
		return &user, nil
	}
	// Guests use their email as username, so a duplicate can also surface as
	// a unique violation on the username index rather than a suppressed
	// conflict on email. Both mean the account already exists.
	var pqErr *pq.Error
	if !errors.Is(err, sql.ErrNoRows) && !(errors.As(err, &pqErr) && pqErr.Code == "23505") {
		return nil, fmt.Errorf("provision guest user: %w", err)
	}
	return r.GetUserByEmail(ctx, email)
}

type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (r *Repository) UpdateUser(ctx context.Context, userID int64, upd UserUpdate) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`UPDATE user_info SET
		   first_name = COALESCE($2, first_name),
		   last_name  = COALESCE($3, last_name),
		   email      = COALESCE($4, email)
		 WHERE id = $1
		 RETURNING id, username, first_name, last_name, email, is_admin`,
		userID, upd.FirstName, upd.LastName, upd.Email,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	return &user, nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_info WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
