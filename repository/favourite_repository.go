package repository

import (
	"context"

	"foodorder/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavouriteRepository struct{ DB *gorm.DB }

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{DB: db}
}

func (r *FavouriteRepository) Exists(ctx context.Context, userID, orderID uint) (bool, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Favourite{}).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Count(&cnt).Error
	return cnt > 0, err
}

// Create relies on the (user_id, order_id) unique index; a duplicate
// surfaces as gorm.ErrDuplicatedKey when TranslateError is on.
func (r *FavouriteRepository) Create(ctx context.Context, f *entity.Favourite) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(f).Error
}

func (r *FavouriteRepository) Delete(ctx context.Context, userID, orderID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Delete(&entity.Favourite{})
	return res.RowsAffected, res.Error
}

func (r *FavouriteRepository) ListForUser(ctx context.Context, userID uint) ([]entity.Favourite, error) {
	var favs []entity.Favourite
	err := r.DB.WithContext(ctx).
		Preload("Order").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favs).Error
	return favs, err
}
