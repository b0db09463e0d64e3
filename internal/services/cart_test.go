package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/feria/internal/models"
)

func cartItem(storeID uuid.UUID, price float64, qty int) models.CartItem {
	return models.CartItem{
		ProductID: uuid.New(),
		StoreID:   storeID,
		Quantity:  qty,
		UnitPrice: price,
	}
}

func TestGroupByStoreSplitsPerStore(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()

	// The reference two-store cart: 2x35 from A, 1x70 from B.
	groups := GroupByStore([]models.CartItem{
		cartItem(storeA, 35.00, 2),
		cartItem(storeB, 70.00, 1),
	}, 10.00)

	require.Len(t, groups, 2)

	assert.Equal(t, storeA, groups[0].StoreID)
	assert.Equal(t, 70.00, groups[0].Subtotal)
	assert.Equal(t, 10.00, groups[0].Shipping)
	assert.Equal(t, 80.00, groups[0].Total)

	assert.Equal(t, storeB, groups[1].StoreID)
	assert.Equal(t, 70.00, groups[1].Subtotal)
	assert.Equal(t, 10.00, groups[1].Shipping)
	assert.Equal(t, 80.00, groups[1].Total)
}

func TestGroupByStoreLosslessUnion(t *testing.T) {
	stores := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var items []models.CartItem
	for i := 0; i < 12; i++ {
		items = append(items, cartItem(stores[i%3], float64(i+1), i%4+1))
	}

	groups := GroupByStore(items, 10)
	require.Len(t, groups, 3)

	seen := map[uuid.UUID]bool{}
	var count int
	for _, group := range groups {
		for _, item := range group.Items {
			assert.Equal(t, group.StoreID, item.StoreID)
			assert.False(t, seen[item.ProductID], "item must appear in exactly one group")
			seen[item.ProductID] = true
			count++
		}
	}
	assert.Equal(t, len(items), count)
}

func TestGroupByStorePreservesStoreOrder(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()

	groups := GroupByStore([]models.CartItem{
		cartItem(storeB, 1, 1),
		cartItem(storeA, 2, 1),
		cartItem(storeB, 3, 1),
	}, 10)

	require.Len(t, groups, 2)
	assert.Equal(t, storeB, groups[0].StoreID)
	assert.Equal(t, storeA, groups[1].StoreID)
	assert.Len(t, groups[0].Items, 2)
	assert.Len(t, groups[1].Items, 1)
}

func TestGroupByStoreShippingPerStore(t *testing.T) {
	// N stores cost N times the flat fee, not one combined fee.
	var items []models.CartItem
	for i := 0; i < 4; i++ {
		items = append(items, cartItem(uuid.New(), 5, 1))
	}

	groups := GroupByStore(items, 10)
	require.Len(t, groups, 4)

	var shipping float64
	for _, group := range groups {
		shipping += group.Shipping
	}
	assert.Equal(t, 40.00, shipping)
}

func TestGroupByStoreTwoDecimalExact(t *testing.T) {
	storeID := uuid.New()

	// 0.1 + 0.2 style drift must not leak into totals.
	groups := GroupByStore([]models.CartItem{
		cartItem(storeID, 0.10, 1),
		cartItem(storeID, 0.20, 1),
	}, 10)

	require.Len(t, groups, 1)
	assert.Equal(t, 0.30, groups[0].Subtotal)
	assert.Equal(t, 10.30, groups[0].Total)
}

func TestGroupByStoreEmptyCart(t *testing.T) {
	groups := GroupByStore(nil, 10)
	assert.Empty(t, groups)
}

func TestGrandTotalRoundsToDisplayPrecision(t *testing.T) {
	// Three stores of 0.10 items plus flat shipping: summing the per-store
	// totals naively yields 30.299999999999997.
	var items []models.CartItem
	for i := 0; i < 3; i++ {
		items = append(items, cartItem(uuid.New(), 0.10, 1))
	}
	groups := GroupByStore(items, 10)
	require.Len(t, groups, 3)

	assert.Equal(t, 30.30, GrandTotal(groups))
}

func TestGrandTotalEmpty(t *testing.T) {
	assert.Zero(t, GrandTotal(nil))
}
