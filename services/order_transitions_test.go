package services

import (
	"testing"

	"foodorder/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		actor    entity.Actor
		from, to entity.OrderStatus
		want     bool
	}{
		{entity.ActorRestaurant, entity.StatusPending, entity.StatusConfirmed, true},
		{entity.ActorRestaurant, entity.StatusPending, entity.StatusCancelled, true},
		{entity.ActorRestaurant, entity.StatusConfirmed, entity.StatusPreparing, true},
		{entity.ActorRestaurant, entity.StatusConfirmed, entity.StatusReadyToDeliver, true},
		{entity.ActorRestaurant, entity.StatusConfirmed, entity.StatusCancelled, true},
		{entity.ActorRestaurant, entity.StatusPreparing, entity.StatusReadyToDeliver, true},
		{entity.ActorRestaurant, entity.StatusReadyToDeliver, entity.StatusOutForDelivery, true},
		{entity.ActorRestaurant, entity.StatusPreparing, entity.StatusCancelled, false},
		{entity.ActorRestaurant, entity.StatusOutForDelivery, entity.StatusDelivered, false},
		{entity.ActorRestaurant, entity.StatusConfirmed, entity.StatusPending, false},
		{entity.ActorRestaurant, entity.StatusDelivered, entity.StatusCancelled, false},

		{entity.ActorCustomer, entity.StatusPending, entity.StatusCancelled, true},
		{entity.ActorCustomer, entity.StatusConfirmed, entity.StatusCancelled, false},
		{entity.ActorCustomer, entity.StatusPreparing, entity.StatusCancelled, false},
		{entity.ActorCustomer, entity.StatusPending, entity.StatusConfirmed, false},

		{entity.ActorDelivery, entity.StatusConfirmed, entity.StatusDelivered, true},
		{entity.ActorDelivery, entity.StatusOutForDelivery, entity.StatusDelivered, true},
		{entity.ActorDelivery, entity.StatusPending, entity.StatusDelivered, false},
		{entity.ActorDelivery, entity.StatusCancelled, entity.StatusDelivered, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.actor, tc.from, tc.to), "%s %s -> %s", tc.actor, tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, actor := range []entity.Actor{entity.ActorCustomer, entity.ActorRestaurant, entity.ActorDelivery} {
		for _, from := range []entity.OrderStatus{entity.StatusDelivered, entity.StatusCancelled} {
			for _, to := range entity.AllOrderStatuses {
				assert.False(t, CanTransition(actor, from, to), "%s %s -> %s", actor, from, to)
			}
		}
	}
}
