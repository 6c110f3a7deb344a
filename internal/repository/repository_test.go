package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "./migrations",
	}

	repo, err := NewRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

// seedStore inserts an owner and a store, returning the store id.
func seedStore(t *testing.T, repo *Repository, storeName string) int64 {
	t.Helper()
	var ownerID int64
	err := repo.db.QueryRow(
		`INSERT INTO store_owner (username, password) VALUES ($1, 'x') RETURNING id`,
		storeName+"-owner",
	).Scan(&ownerID)
	require.NoError(t, err)

	var storeID int64
	err = repo.db.QueryRow(
		`INSERT INTO store (owner_id, store_name) VALUES ($1, $2) RETURNING id`,
		ownerID, storeName,
	).Scan(&storeID)
	require.NoError(t, err)
	return storeID
}

// seedProduct inserts a category and a product in it, returning the product id.
func seedProduct(t *testing.T, repo *Repository, storeID int64, name string, price float64, stock int) int64 {
	t.Helper()
	var categoryID int64
	err := repo.db.QueryRow(
		`INSERT INTO category (store_id, category_name) VALUES ($1, 'misc') RETURNING id`,
		storeID,
	).Scan(&categoryID)
	require.NoError(t, err)

	var productID int64
	err = repo.db.QueryRow(
		`INSERT INTO product (store_id, category_id, product_name, price, qty_in_stock)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		storeID, categoryID, name, price, stock,
	).Scan(&productID)
	require.NoError(t, err)
	return productID
}

func seedUser(t *testing.T, repo *Repository, username, email string) int64 {
	t.Helper()
	var userID int64
	err := repo.db.QueryRow(
		`INSERT INTO user_info (username, password, email) VALUES ($1, 'x', $2) RETURNING id`,
		username, email,
	).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func stockLevel(t *testing.T, repo *Repository, productID int64) int {
	t.Helper()
	var level int
	err := repo.db.QueryRow(`SELECT qty_in_stock FROM product WHERE id = $1`, productID).Scan(&level)
	require.NoError(t, err)
	return level
}
