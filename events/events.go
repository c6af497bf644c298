package events

import (
	"context"
	"time"

	"foodorder/entity"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
	TypeOrderDelivered     = "order.delivered"
)

// OrderEvent is published after the change it describes has been committed.
type OrderEvent struct {
	EventID      string             `json:"event_id"`
	Type         string             `json:"type"`
	OrderID      uint               `json:"order_id"`
	UserID       uint               `json:"user_id"`
	RestaurantID uint               `json:"restaurant_id"`
	From         entity.OrderStatus `json:"from,omitempty"`
	Status       entity.OrderStatus `json:"status"`
	Actor        entity.Actor       `json:"actor,omitempty"`
	TotalAmount  int64              `json:"total_amount"`
	Timestamp    time.Time          `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }
