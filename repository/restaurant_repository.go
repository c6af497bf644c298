// repository/restaurant_repository.go
package repository

import (
	"context"

	"foodorder/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) FindAll(ctx context.Context) ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&rests).Error
	return rests, err
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *entity.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

func (r *RestaurantRepository) IsOwnedBy(ctx context.Context, restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// Summaries loads name/address for the given ids, keyed by id.
func (r *RestaurantRepository) Summaries(ctx context.Context, ids []uint) (map[uint]entity.RestaurantSummary, error) {
	out := make(map[uint]entity.RestaurantSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []entity.RestaurantSummary
	err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Select("id, name, address_street, address_city, address_state, address_country, address_pincode").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}
