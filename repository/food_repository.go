// repository/food_repository.go
package repository

import (
	"context"

	"foodorder/entity"

	"gorm.io/gorm"
)

type FoodRepository struct {
	DB *gorm.DB
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{DB: db}
}

// all food items of a restaurant
func (r *FoodRepository) FindByRestaurant(ctx context.Context, restID uint) ([]entity.FoodItem, error) {
	var foods []entity.FoodItem
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ?", restID).
		Order("id ASC").
		Find(&foods).Error
	return foods, err
}

func (r *FoodRepository) FindByID(ctx context.Context, id uint) (*entity.FoodItem, error) {
	return r.FindByIDTx(r.DB.WithContext(ctx), id)
}

func (r *FoodRepository) FindByIDTx(tx *gorm.DB, id uint) (*entity.FoodItem, error) {
	var food entity.FoodItem
	if err := tx.First(&food, id).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *FoodRepository) Create(ctx context.Context, food *entity.FoodItem) error {
	return r.DB.WithContext(ctx).Create(food).Error
}

// Update touches only a food item that belongs to restID.
func (r *FoodRepository) Update(ctx context.Context, restID, foodID uint, updates map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.FoodItem{}).
		Where("id = ? AND restaurant_id = ?", foodID, restID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
