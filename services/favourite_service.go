package services

import (
	"context"
	"errors"
	"time"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FavouriteService keeps a user's list of delivered orders to reorder from.
type FavouriteService struct {
	Repo   *repository.FavouriteRepository
	Orders *OrderService
	Log    *zap.Logger
}

func NewFavouriteService(repo *repository.FavouriteRepository, orders *OrderService, log *zap.Logger) *FavouriteService {
	return &FavouriteService{Repo: repo, Orders: orders, Log: log}
}

type FavouriteView struct {
	ID         uint                     `json:"id"`
	CreatedAt  time.Time                `json:"createdAt"`
	Order      FavouriteOrder           `json:"order"`
	Restaurant entity.RestaurantSummary `json:"restaurant"`
}

type FavouriteOrder struct {
	ID            uint               `json:"id"`
	OrderPlacedAt time.Time          `json:"orderPlacedAt"`
	Status        entity.OrderStatus `json:"status"`
	TotalAmount   int64              `json:"totalAmount"`
}

func (s *FavouriteService) Add(ctx context.Context, userID, orderID uint) (*entity.Favourite, error) {
	o, err := s.Orders.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, apperr.Forbidden("you are not allowed to favourite order %d", orderID)
	}
	if o.Status != entity.StatusDelivered {
		return nil, apperr.InvalidState("order must be delivered before it can be favourited")
	}
	exists, err := s.Repo.Exists(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("order %d is already in favourites", orderID)
	}
	f := &entity.Favourite{UserID: userID, OrderID: orderID}
	if err := s.Repo.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("order %d is already in favourites", orderID)
		}
		return nil, err
	}
	s.Log.Info("order favourited", zap.Uint("user_id", userID), zap.Uint("order_id", orderID))
	return f, nil
}

func (s *FavouriteService) Remove(ctx context.Context, userID, orderID uint) error {
	o, err := s.Orders.load(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return apperr.Forbidden("you are not allowed to change favourites of order %d", orderID)
	}
	n, err := s.Repo.Delete(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("order %d is not in favourites", orderID)
	}
	return nil
}

func (s *FavouriteService) List(ctx context.Context, userID uint) ([]FavouriteView, error) {
	favs, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.Order.RestaurantID)
	}
	sums, err := s.Orders.Catalog.RestaurantSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]FavouriteView, 0, len(favs))
	for _, f := range favs {
		out = append(out, FavouriteView{
			ID:        f.ID,
			CreatedAt: f.CreatedAt,
			Order: FavouriteOrder{
				ID:            f.Order.ID,
				OrderPlacedAt: f.Order.OrderPlacedAt,
				Status:        f.Order.Status,
				TotalAmount:   f.Order.TotalAmount,
			},
			Restaurant: summaryOr(sums, f.Order.RestaurantID),
		})
	}
	return out, nil
}
