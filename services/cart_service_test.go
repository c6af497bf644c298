package services

import (
	"context"
	"sync"
	"testing"

	"foodorder/entity"
	"foodorder/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSetQuantityThenRemoveLastLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cart, err := f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.f1, cart.Items[0].FoodID)
	assert.Equal(t, int64(100), cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "R1", cart.Restaurant.Name)

	// replaces, never adds
	cart, err = f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 5})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, int64(500), cart.Subtotal)

	cart, err = f.carts.Remove(ctx, f.customer, f.rest, &RemoveFromCartIn{FoodID: f.f1})
	require.NoError(t, err)
	assert.Nil(t, cart)

	_, err = f.carts.Get(ctx, f.customer, f.rest)
	requireKind(t, err, apperr.KindNotFound)

	var n int64
	require.NoError(t, f.db.Model(&entity.Cart{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCartAddRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   AddToCartIn
		kind apperr.Kind
	}{
		{"zero quantity", AddToCartIn{FoodID: f.f1, Quantity: 0}, apperr.KindInvalidArgument},
		{"negative quantity", AddToCartIn{FoodID: f.f1, Quantity: -3}, apperr.KindInvalidArgument},
		{"over the cap", AddToCartIn{FoodID: f.f1, Quantity: 6}, apperr.KindInvalidArgument},
		{"food of another restaurant", AddToCartIn{FoodID: f.foreign, Quantity: 1}, apperr.KindInvalidArgument},
		{"unavailable food", AddToCartIn{FoodID: f.unavailable, Quantity: 1}, apperr.KindInvalidArgument},
		{"missing food", AddToCartIn{FoodID: 9999, Quantity: 1}, apperr.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.carts.Add(ctx, f.customer, f.rest, &tc.in)
			requireKind(t, err, tc.kind)

			// nothing left behind
			_, err = f.carts.Get(ctx, f.customer, f.rest)
			requireKind(t, err, apperr.KindNotFound)
		})
	}
}

func TestCartLineKeepsSnapshotAfterCatalogEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 1})
	require.NoError(t, err)

	price, lower, name := int64(999), 2, "F1 deluxe"
	_, err = f.catalog.UpdateFood(ctx, f.owner, f.rest, f.f1, &UpdateFoodIn{Price: &price, MaxQuantity: &lower, Name: &name})
	require.NoError(t, err)

	// the line keeps price, name and the cap it was created with
	cart, err := f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 4})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(100), cart.Items[0].Price)
	assert.Equal(t, "F1", cart.Items[0].Name)
	assert.Equal(t, 5, cart.Items[0].MaxQuantity)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	_, err = f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 6})
	requireKind(t, err, apperr.KindInvalidArgument)
}

func TestCartRemoveAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 1})
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f2, Quantity: 3})
	require.NoError(t, err)

	cart, err := f.carts.Remove(ctx, f.customer, f.rest, &RemoveFromCartIn{FoodID: f.f1})
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.f2, cart.Items[0].FoodID)

	_, err = f.carts.Remove(ctx, f.customer, f.rest, &RemoveFromCartIn{FoodID: f.f1})
	requireKind(t, err, apperr.KindNotFound)
	_, err = f.carts.Remove(ctx, f.customer, f.otherRest, &RemoveFromCartIn{FoodID: f.foreign})
	requireKind(t, err, apperr.KindNotFound)

	require.NoError(t, f.carts.Delete(ctx, f.customer, f.rest))
	requireKind(t, f.carts.Delete(ctx, f.customer, f.rest), apperr.KindNotFound)

	var lines int64
	require.NoError(t, f.db.Model(&entity.CartLine{}).Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestCartsArePerUserAndRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 1})
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, f.customer, f.otherRest, &AddToCartIn{FoodID: f.foreign, Quantity: 2})
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, f.otherCustomer, f.rest, &AddToCartIn{FoodID: f.f2, Quantity: 1})
	require.NoError(t, err)

	carts, err := f.carts.List(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, carts, 2)
	names := []string{carts[0].Restaurant.Name, carts[1].Restaurant.Name}
	assert.ElementsMatch(t, []string{"R1", "R2"}, names)

	mine, err := f.carts.Get(ctx, f.customer, f.rest)
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, f.f1, mine.Items[0].FoodID)
}

func TestConcurrentAddsToDifferentFoodsKeepAllLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	foods := []uint{f.f1, f.f2}
	for i := 0; i < 4; i++ {
		food, err := f.catalog.CreateFood(ctx, f.owner, f.rest, &CreateFoodIn{Name: "extra", Price: 10})
		require.NoError(t, err)
		foods = append(foods, food.ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(foods))
	for _, id := range foods {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := f.carts.Add(ctx, f.customer, f.rest, &AddToCartIn{FoodID: id, Quantity: 1})
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cart, err := f.carts.Get(ctx, f.customer, f.rest)
	require.NoError(t, err)
	assert.Len(t, cart.Items, len(foods))

	var carts int64
	require.NoError(t, f.db.Model(&entity.Cart{}).Where("user_id = ?", f.customer).Count(&carts).Error)
	assert.Equal(t, int64(1), carts)
}

func TestConcurrentAddAndRemoveOnSeparateCarts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const users, rounds = 24, 4
	var wg sync.WaitGroup
	errs := make(chan error, users*rounds*2)
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				_, err := f.carts.Add(ctx, userID, f.rest, &AddToCartIn{FoodID: f.f1, Quantity: 1})
				errs <- err
				_, err = f.carts.Remove(ctx, userID, f.rest, &RemoveFromCartIn{FoodID: f.f1})
				errs <- err
			}
		}(uint(1000 + u))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var carts, lines int64
	require.NoError(t, f.db.Model(&entity.Cart{}).Count(&carts).Error)
	require.NoError(t, f.db.Model(&entity.CartLine{}).Count(&lines).Error)
	assert.Zero(t, carts)
	assert.Zero(t, lines)
}

func TestConcurrentDeletesOnSeparateCarts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const users = 20
	for u := 0; u < users; u++ {
		_, err := f.carts.Add(ctx, uint(2000+u), f.rest, &AddToCartIn{FoodID: f.f2, Quantity: 2})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, users)
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			errs <- f.carts.Delete(ctx, userID, f.rest)
		}(uint(2000 + u))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var carts int64
	require.NoError(t, f.db.Model(&entity.Cart{}).Count(&carts).Error)
	assert.Zero(t, carts)
}
