package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementStock_Simple(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	storeID := seedStore(t, repo, "stock-simple")
	productID := seedProduct(t, repo, storeID, "Widget", 5.00, 10)

	level, err := repo.DecrementStock(ctx, productID, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, level)
	assert.Equal(t, 7, stockLevel(t, repo, productID))
}

func TestDecrementStock_FloorsAtZero(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	storeID := seedStore(t, repo, "stock-floor")
	productID := seedProduct(t, repo, storeID, "Scarce", 5.00, 5)

	level, err := repo.DecrementStock(ctx, productID, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
	assert.Equal(t, 0, stockLevel(t, repo, productID))
}

func TestDecrementStock_MissingProductIsNoOp(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	level, err := repo.DecrementStock(context.Background(), 99999, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
}

func TestDecrementStock_ConcurrentSerializes(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	storeID := seedStore(t, repo, "stock-concurrent")
	productID := seedProduct(t, repo, storeID, "Contested", 5.00, 5)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.DecrementStock(ctx, productID, 3)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	// 5 - 3 - 3 floors at zero; the row lock prevents a lost update
	assert.Equal(t, 0, stockLevel(t, repo, productID))
}
