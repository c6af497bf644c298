package services

import (
	"context"
	"testing"

	"foodorder/entity"
	"foodorder/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) deliveredOrder(t *testing.T) *entity.Order {
	t.Helper()
	o := f.placeOrder(t)
	partner := f.rider
	f.force(t, o.ID, entity.StatusOutForDelivery, &partner)
	got, err := f.orders.Complete(context.Background(), f.rider, o.ID, &CompleteOrderIn{})
	require.NoError(t, err)
	return got
}

func TestFavouriteOnlyOnceAfterDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.placeOrder(t)
	_, err := f.favs.Add(ctx, f.customer, pending.ID)
	requireKind(t, err, apperr.KindInvalidState)

	o := f.deliveredOrder(t)
	_, err = f.favs.Add(ctx, f.otherCustomer, o.ID)
	requireKind(t, err, apperr.KindForbidden)
	_, err = f.favs.Add(ctx, f.customer, 9999)
	requireKind(t, err, apperr.KindNotFound)

	fav, err := f.favs.Add(ctx, f.customer, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, fav.OrderID)

	_, err = f.favs.Add(ctx, f.customer, o.ID)
	requireKind(t, err, apperr.KindConflict)

	list, err := f.favs.List(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].Order.ID)
	assert.Equal(t, entity.StatusDelivered, list[0].Order.Status)
	assert.Equal(t, "R1", list[0].Restaurant.Name)

	require.NoError(t, f.favs.Remove(ctx, f.customer, o.ID))
	requireKind(t, f.favs.Remove(ctx, f.customer, o.ID), apperr.KindNotFound)

	list, err = f.favs.List(ctx, f.customer)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavouriteUniqueIndexBacksTheCheck(t *testing.T) {
	f := newFixture(t)
	o := f.deliveredOrder(t)

	require.NoError(t, f.favs.Repo.Create(context.Background(), &entity.Favourite{UserID: f.customer, OrderID: o.ID}))
	_, err := f.favs.Add(context.Background(), f.customer, o.ID)
	requireKind(t, err, apperr.KindConflict)
}

func TestReviewIsWrittenOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.placeOrder(t)
	_, err := f.orders.Review(ctx, f.customer, pending.ID, &ReviewIn{Rating: 5})
	requireKind(t, err, apperr.KindInvalidState)

	o := f.deliveredOrder(t)
	_, err = f.orders.Review(ctx, f.otherCustomer, o.ID, &ReviewIn{Rating: 5})
	requireKind(t, err, apperr.KindForbidden)
	_, err = f.orders.Review(ctx, f.customer, o.ID, &ReviewIn{Rating: 6})
	requireKind(t, err, apperr.KindInvalidArgument)
	_, err = f.orders.Review(ctx, f.customer, o.ID, &ReviewIn{Rating: 0})
	requireKind(t, err, apperr.KindInvalidArgument)

	got, err := f.orders.Review(ctx, f.customer, o.ID, &ReviewIn{Rating: 4, Review: " hot and fast "})
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	require.NotNil(t, got.Review)
	assert.Equal(t, "hot and fast", *got.Review)

	_, err = f.orders.Review(ctx, f.customer, o.ID, &ReviewIn{Rating: 1})
	requireKind(t, err, apperr.KindConflict)
}
