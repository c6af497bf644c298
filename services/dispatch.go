package services

import (
	"context"

	"foodorder/entity"
)

// Dispatcher picks the delivery partner for a confirmed order. There is no
// dispatch subsystem yet; StaticDispatcher stands in for it.
type Dispatcher interface {
	AssignPartner(ctx context.Context, o *entity.Order) (*uint, error)
}

// StaticDispatcher always assigns PartnerID, or nobody when it is zero.
type StaticDispatcher struct {
	PartnerID uint
}

func (d StaticDispatcher) AssignPartner(context.Context, *entity.Order) (*uint, error) {
	if d.PartnerID == 0 {
		return nil, nil
	}
	id := d.PartnerID
	return &id, nil
}
