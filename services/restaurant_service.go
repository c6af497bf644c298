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

// CatalogService is the read-mostly restaurant/food directory. Cart and order
// code only ever reads through it.
type CatalogService struct {
	RestRepo *repository.RestaurantRepository
	FoodRepo *repository.FoodRepository
	Log      *zap.Logger
}

func NewCatalogService(rr *repository.RestaurantRepository, fr *repository.FoodRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{RestRepo: rr, FoodRepo: fr, Log: log}
}

// ----- lookups used by cart/order -----

func (s *CatalogService) LookupFood(ctx context.Context, foodID uint) (*entity.FoodItem, error) {
	return s.LookupFoodTx(s.FoodRepo.DB.WithContext(ctx), foodID)
}

// LookupFoodTx is LookupFood inside tx.
func (s *CatalogService) LookupFoodTx(tx *gorm.DB, foodID uint) (*entity.FoodItem, error) {
	f, err := s.FoodRepo.FindByIDTx(tx, foodID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("food item %d not found", foodID)
	}
	return f, err
}

func (s *CatalogService) FoodBelongsToRestaurant(f *entity.FoodItem, restaurantID uint) bool {
	return f != nil && f.RestaurantID == restaurantID
}

func (s *CatalogService) IsOwnedBy(ctx context.Context, restID, userID uint) (bool, error) {
	return s.RestRepo.IsOwnedBy(ctx, restID, userID)
}

func (s *CatalogService) RestaurantSummaries(ctx context.Context, ids []uint) (map[uint]entity.RestaurantSummary, error) {
	return s.RestRepo.Summaries(ctx, ids)
}

// ----- directory -----

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]entity.Restaurant, error) {
	return s.RestRepo.FindAll(ctx)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id uint) (*entity.Restaurant, error) {
	r, err := s.RestRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("restaurant %d not found", id)
	}
	return r, err
}

func (s *CatalogService) ListFoods(ctx context.Context, restID uint) ([]entity.FoodItem, error) {
	if _, err := s.GetRestaurant(ctx, restID); err != nil {
		return nil, err
	}
	return s.FoodRepo.FindByRestaurant(ctx, restID)
}

type CreateRestaurantIn struct {
	Name        string         `json:"name" validate:"required,notblank"`
	Description string         `json:"description"`
	Address     entity.Address `json:"address"`
	Phone       string         `json:"phone"`
	IsOpen      *bool          `json:"isOpen"`
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, ownerID uint, in *CreateRestaurantIn) (*entity.Restaurant, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	r := &entity.Restaurant{
		Name: in.Name, Description: in.Description, Address: in.Address,
		Phone: in.Phone, IsOpen: true, OwnerID: ownerID,
	}
	if in.IsOpen != nil {
		r.IsOpen = *in.IsOpen
	}
	if err := s.RestRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.Log.Info("restaurant created", zap.Uint("restaurant_id", r.ID), zap.Uint("owner_id", ownerID))
	return r, nil
}

type CreateFoodIn struct {
	Name            string `json:"name" validate:"required,notblank"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Price           int64  `json:"price" validate:"gt=0"`
	PreparationTime int    `json:"preparationTime" validate:"gte=0"`
	MaxQuantity     int    `json:"maxQuantity" validate:"gte=0"`
	IsAvailable     *bool  `json:"isAvailable"`
}

func (s *CatalogService) CreateFood(ctx context.Context, ownerID, restID uint, in *CreateFoodIn) (*entity.FoodItem, error) {
	if err := s.requireOwner(ctx, restID, ownerID); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	f := &entity.FoodItem{
		Name: in.Name, Description: in.Description, Category: in.Category,
		Price: in.Price, PreparationTime: in.PreparationTime,
		IsAvailable: true, MaxQuantity: in.MaxQuantity, RestaurantID: restID,
	}
	if f.MaxQuantity == 0 {
		f.MaxQuantity = entity.DefaultMaxQuantity
	}
	if in.IsAvailable != nil {
		f.IsAvailable = *in.IsAvailable
	}
	if err := s.FoodRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFoodIn edits catalog data only; existing cart and order lines keep
// the values they were created with.
type UpdateFoodIn struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	IsAvailable *bool   `json:"isAvailable"`
	MaxQuantity *int    `json:"maxQuantity" validate:"omitempty,gt=0"`
}

func (s *CatalogService) UpdateFood(ctx context.Context, ownerID, restID, foodID uint, in *UpdateFoodIn) (*entity.FoodItem, error) {
	if err := s.requireOwner(ctx, restID, ownerID); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}
	if in.MaxQuantity != nil {
		updates["max_quantity"] = *in.MaxQuantity
	}
	if len(updates) == 0 {
		return nil, apperr.InvalidArgument("nothing to update")
	}
	n, err := s.FoodRepo.Update(ctx, restID, foodID, updates)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperr.NotFound("food item %d not found in restaurant %d", foodID, restID)
	}
	return s.LookupFood(ctx, foodID)
}

func (s *CatalogService) requireOwner(ctx context.Context, restID, userID uint) error {
	if _, err := s.GetRestaurant(ctx, restID); err != nil {
		return err
	}
	ok, err := s.RestRepo.IsOwnedBy(ctx, restID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("you do not own restaurant %d", restID)
	}
	return nil
}
