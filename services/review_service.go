package services

import (
	"context"
	"strings"

	"foodorder/entity"
	"foodorder/pkg/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewIn struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Review string `json:"review" validate:"max=2000"`
}

// Review records the customer's rating of a delivered order. It can be
// written once.
func (s *OrderService) Review(ctx context.Context, userID, orderID uint, in *ReviewIn) (*entity.Order, error) {
	o, err := s.loadForCustomer(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.StatusDelivered {
		return nil, apperr.InvalidState("only delivered orders can be reviewed")
	}
	if o.Rating != nil || o.Review != nil {
		return nil, apperr.Conflict("order %d has already been reviewed", orderID)
	}
	if err := check(in); err != nil {
		return nil, err
	}
	var text *string
	if t := strings.TrimSpace(in.Review); t != "" {
		text = &t
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.SetReviewOnce(tx, o.ID, in.Rating, text)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.Conflict("order %d has already been reviewed", orderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("order reviewed", zap.Uint("order_id", o.ID), zap.Int("rating", in.Rating))
	return s.load(ctx, o.ID)
}
