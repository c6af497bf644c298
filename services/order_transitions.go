// services/order_transitions.go
package services

import (
	"context"
	"strings"

	"foodorder/entity"
	"foodorder/events"
	"foodorder/pkg/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// transitions lists, per actor, the statuses each status may move to.
// Anything absent is rejected.
var transitions = map[entity.Actor]map[entity.OrderStatus][]entity.OrderStatus{
	entity.ActorRestaurant: {
		entity.StatusPending:        {entity.StatusConfirmed, entity.StatusCancelled},
		entity.StatusConfirmed:      {entity.StatusPreparing, entity.StatusReadyToDeliver, entity.StatusCancelled},
		entity.StatusPreparing:      {entity.StatusReadyToDeliver},
		entity.StatusReadyToDeliver: {entity.StatusOutForDelivery},
	},
	entity.ActorCustomer: {
		entity.StatusPending: {entity.StatusCancelled},
	},
	entity.ActorDelivery: {
		entity.StatusConfirmed:      {entity.StatusDelivered},
		entity.StatusOutForDelivery: {entity.StatusDelivered},
	},
}

func CanTransition(actor entity.Actor, from, to entity.OrderStatus) bool {
	for _, s := range transitions[actor][from] {
		if s == to {
			return true
		}
	}
	return false
}

const partialRefundMsg = "order is already being prepared and cannot be cancelled; " +
	"a partial refund for items not yet prepared is possible, please contact support"

// ----- Restaurant actions -----

// UpdateByRestaurant moves an order of restID to status `to` on behalf of
// its owner. DELIVERED can only be set by the delivery partner.
func (s *OrderService) UpdateByRestaurant(ctx context.Context, ownerID, restID, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	if !to.Valid() {
		return nil, apperr.InvalidArgument("invalid order status %q", to)
	}
	o, err := s.loadForRestaurant(ctx, ownerID, restID, orderID)
	if err != nil {
		return nil, err
	}
	if err := terminalGuard(o); err != nil {
		return nil, err
	}
	if to == entity.StatusDelivered {
		return nil, apperr.Forbidden("a restaurant cannot mark an order as delivered")
	}
	return s.restaurantMove(ctx, o, to, nil)
}

// CancelByRestaurant cancels a PENDING or CONFIRMED order of restID.
func (s *OrderService) CancelByRestaurant(ctx context.Context, ownerID, restID, orderID uint, reason string) (*entity.Order, error) {
	o, err := s.loadForRestaurant(ctx, ownerID, restID, orderID)
	if err != nil {
		return nil, err
	}
	if err := terminalGuard(o); err != nil {
		return nil, err
	}
	var extra map[string]any
	if r := strings.TrimSpace(reason); r != "" {
		extra = map[string]any{"cancellation_reason": r}
	}
	return s.restaurantMove(ctx, o, entity.StatusCancelled, extra)
}

func (s *OrderService) restaurantMove(ctx context.Context, o *entity.Order, to entity.OrderStatus, extra map[string]any) (*entity.Order, error) {
	if !CanTransition(entity.ActorRestaurant, o.Status, to) {
		return nil, apperr.InvalidState("cannot move order %d from %s to %s", o.ID, o.Status, to)
	}
	if to == entity.StatusConfirmed && o.DeliveryPartnerID == nil {
		partner, err := s.Dispatch.AssignPartner(ctx, o)
		if err != nil {
			return nil, err
		}
		if partner != nil {
			if extra == nil {
				extra = map[string]any{}
			}
			extra["delivery_partner_id"] = *partner
		}
	}
	return s.apply(ctx, o, entity.ActorRestaurant, to, extra)
}

func (s *OrderService) loadForRestaurant(ctx context.Context, ownerID, restID, orderID uint) (*entity.Order, error) {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.RestaurantID != restID {
		return nil, apperr.Forbidden("order %d does not belong to restaurant %d", orderID, restID)
	}
	ok, err := s.Catalog.IsOwnedBy(ctx, restID, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("you do not own restaurant %d", restID)
	}
	return o, nil
}

// ----- Customer actions -----

// CancelByCustomer is only legal while the order is PENDING.
func (s *OrderService) CancelByCustomer(ctx context.Context, userID, orderID uint, reason string) (*entity.Order, error) {
	o, err := s.loadForCustomer(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := terminalGuard(o); err != nil {
		return nil, err
	}
	if o.Status == entity.StatusConfirmed || o.Status == entity.StatusPreparing {
		return nil, apperr.InvalidState(partialRefundMsg)
	}
	if !CanTransition(entity.ActorCustomer, o.Status, entity.StatusCancelled) {
		return nil, apperr.InvalidState("order %d is %s and can no longer be cancelled", o.ID, o.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.InvalidArgument("cancellation reason is required")
	}
	return s.apply(ctx, o, entity.ActorCustomer, entity.StatusCancelled, map[string]any{"cancellation_reason": reason})
}

// UpdateInstructions replaces specialInstructions on a non-terminal order.
func (s *OrderService) UpdateInstructions(ctx context.Context, userID, orderID uint, instructions string) (*entity.Order, error) {
	o, err := s.loadForCustomer(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := terminalGuard(o); err != nil {
		return nil, err
	}
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		return nil, apperr.InvalidArgument("special instructions are required")
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.UpdateGuarded(tx, o.ID, nonTerminal(),
			map[string]any{"special_instructions": instructions})
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.InvalidState("order %d is no longer open for changes", o.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, o.ID)
}

func (s *OrderService) loadForCustomer(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, apperr.Forbidden("you are not allowed to change order %d", orderID)
	}
	return o, nil
}

// ----- Delivery actions -----

type CompleteOrderIn struct {
	DeliveryRating *int `json:"deliveryRating" validate:"omitempty,min=0,max=5"`
}

// Complete marks the order DELIVERED. Only the assigned delivery partner may
// call it.
func (s *OrderService) Complete(ctx context.Context, partnerID, orderID uint, in *CompleteOrderIn) (*entity.Order, error) {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.DeliveryPartnerID == nil || *o.DeliveryPartnerID != partnerID {
		return nil, apperr.Forbidden("you are not the delivery partner of order %d", orderID)
	}
	if o.Status == entity.StatusDelivered {
		return nil, apperr.InvalidState("order %d is already delivered", o.ID)
	}
	if !CanTransition(entity.ActorDelivery, o.Status, entity.StatusDelivered) {
		return nil, apperr.InvalidState("order %d is %s and cannot be delivered", o.ID, o.Status)
	}
	if err := check(in); err != nil {
		return nil, err
	}
	rating := 0
	if in.DeliveryRating != nil {
		rating = *in.DeliveryRating
	}
	return s.apply(ctx, o, entity.ActorDelivery, entity.StatusDelivered, map[string]any{
		"actual_delivery_time": s.Now(),
		"delivery_rating":      rating,
	})
}

// ----- shared -----

// apply performs the move as one conditional update on the status the order
// was read with, so a concurrent change makes it fail instead of overwrite.
func (s *OrderService) apply(ctx context.Context, o *entity.Order, actor entity.Actor, to entity.OrderStatus, extra map[string]any) (*entity.Order, error) {
	from := o.Status
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, to, extra)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.InvalidState("order %d is no longer %s", o.ID, from)
		}
		return nil
	})
	if err != nil {
		if apperr.Is(err, apperr.KindInvalidState) {
			s.Log.Debug("transition lost race", zap.Uint("order_id", o.ID), zap.String("from", string(from)))
		}
		return nil, err
	}

	updated, err := s.load(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	s.Log.Info("order status changed",
		zap.Uint("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor", string(actor)))

	typ := events.TypeOrderStatusChanged
	if to == entity.StatusDelivered {
		typ = events.TypeOrderDelivered
	}
	s.publish(ctx, typ, updated, from, actor)
	return updated, nil
}

func terminalGuard(o *entity.Order) error {
	switch o.Status {
	case entity.StatusDelivered:
		return apperr.InvalidState("order %d is already delivered", o.ID)
	case entity.StatusCancelled:
		return apperr.InvalidState("order %d is already cancelled", o.ID)
	}
	return nil
}

func nonTerminal() []entity.OrderStatus {
	out := make([]entity.OrderStatus, 0, len(entity.AllOrderStatuses))
	for _, s := range entity.AllOrderStatuses {
		if !s.Terminal() {
			out = append(out, s)
		}
	}
	return out
}
