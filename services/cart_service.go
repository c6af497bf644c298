package services

import (
	"context"
	"errors"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	Catalog  *CatalogService
	Log      *zap.Logger
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, catalog *CatalogService, log *zap.Logger) *CartService {
	return &CartService{DB: db, CartRepo: cr, Catalog: catalog, Log: log}
}

type AddToCartIn struct {
	FoodID   uint `json:"foodId" binding:"required"`
	Quantity int  `json:"quantity"`
}

type RemoveFromCartIn struct {
	FoodID uint `json:"foodId" binding:"required"`
}

// CartView is a cart joined with its restaurant summary.
type CartView struct {
	ID         uint                     `json:"id"`
	Restaurant entity.RestaurantSummary `json:"restaurant"`
	Items      []entity.CartLine        `json:"items"`
	Subtotal   int64                    `json:"subtotal"`
}

// Add sets the quantity of foodID in the (user, restaurant) cart, creating the
// cart or the line as needed. Calling it again for the same food replaces the
// quantity; it never adds to it.
func (s *CartService) Add(ctx context.Context, userID, restaurantID uint, in *AddToCartIn) (*CartView, error) {
	if in.Quantity <= 0 {
		return nil, apperr.InvalidArgument("quantity must be at least 1")
	}
	food, err := s.Catalog.LookupFood(ctx, in.FoodID)
	if err != nil {
		return nil, err
	}
	if !s.Catalog.FoodBelongsToRestaurant(food, restaurantID) {
		return nil, apperr.InvalidArgument("food item %d does not belong to restaurant %d", food.ID, restaurantID)
	}
	if !food.IsAvailable {
		return nil, apperr.InvalidArgument("food item %d is not available", food.ID)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartID, err := s.CartRepo.EnsureCart(tx, userID, restaurantID)
		if err != nil {
			return err
		}
		limit := food.MaxQuantity
		existing, err := s.CartRepo.FindLine(tx, cartID, food.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			limit = existing.MaxQuantity
		}
		if in.Quantity > limit {
			return apperr.InvalidArgument("quantity %d exceeds the maximum of %d for %q", in.Quantity, limit, food.Name)
		}

		line := &entity.CartLine{
			FoodID: food.ID, Name: food.Name, Price: food.Price,
			Quantity: in.Quantity, MaxQuantity: food.MaxQuantity,
		}
		applied, err := s.CartRepo.UpsertLine(tx, cartID, line)
		if err != nil {
			return err
		}
		if !applied {
			return apperr.InvalidArgument("quantity %d exceeds the maximum for %q", in.Quantity, food.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Debug("cart line set",
		zap.Uint("user_id", userID), zap.Uint("restaurant_id", restaurantID),
		zap.Uint("food_id", in.FoodID), zap.Int("quantity", in.Quantity))
	return s.Get(ctx, userID, restaurantID)
}

// Remove deletes one line. When it was the last line the cart is gone too and
// the returned view is nil.
func (s *CartService) Remove(ctx context.Context, userID, restaurantID uint, in *RemoveFromCartIn) (*CartView, error) {
	if in.FoodID == 0 {
		return nil, apperr.InvalidArgument("foodId is required")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveLine(tx, userID, restaurantID, in.FoodID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("food item %d is not in your cart for restaurant %d", in.FoodID, restaurantID)
	}
	if err != nil {
		return nil, err
	}
	v, err := s.Get(ctx, userID, restaurantID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	return v, err
}

func (s *CartService) Delete(ctx context.Context, userID, restaurantID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.DeleteCart(tx, userID, restaurantID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("cart not found")
	}
	return err
}

func (s *CartService) Get(ctx context.Context, userID, restaurantID uint) (*CartView, error) {
	c, err := s.CartRepo.FindCart(ctx, userID, restaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("cart not found")
	}
	if err != nil {
		return nil, err
	}
	sums, err := s.Catalog.RestaurantSummaries(ctx, []uint{restaurantID})
	if err != nil {
		return nil, err
	}
	v := toCartView(c, sums)
	return &v, nil
}

func (s *CartService) List(ctx context.Context, userID uint) ([]CartView, error) {
	carts, err := s.CartRepo.ListCarts(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(carts))
	for _, c := range carts {
		ids = append(ids, c.RestaurantID)
	}
	sums, err := s.Catalog.RestaurantSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]CartView, 0, len(carts))
	for i := range carts {
		out = append(out, toCartView(&carts[i], sums))
	}
	return out, nil
}

func toCartView(c *entity.Cart, sums map[uint]entity.RestaurantSummary) CartView {
	rest, ok := sums[c.RestaurantID]
	if !ok {
		rest = entity.RestaurantSummary{ID: c.RestaurantID}
	}
	var subtotal int64
	for _, it := range c.Items {
		subtotal += it.Price * int64(it.Quantity)
	}
	items := c.Items
	if items == nil {
		items = []entity.CartLine{}
	}
	return CartView{ID: c.ID, Restaurant: rest, Items: items, Subtotal: subtotal}
}
