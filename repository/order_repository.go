package repository

import (
	"context"
	"strings"
	"time"

	"foodorder/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the order together with its line snapshots.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// orders of a customer, newest first
func (r *OrderRepository) ListOrdersForUser(ctx context.Context, userID uint, limit int) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		Order("order_placed_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

type OwnerOrderSummary struct {
	ID            uint               `json:"id"`
	UserID        uint               `json:"userId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	TotalAmount   int64              `json:"totalAmount"`
	Status        entity.OrderStatus `json:"status"`
	OrderPlacedAt time.Time          `json:"orderPlacedAt"`
}

func (r *OrderRepository) ListOrdersForRestaurant(ctx context.Context, restID uint, status *entity.OrderStatus, page, limit int) ([]OwnerOrderSummary, int64, error) {
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.WithContext(ctx).Model(&entity.Order{}).Where("restaurant_id = ?", restID)
	if status != nil {
		dbCount = dbCount.Where("status = ?", *status)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID            uint
		UserID        uint
		TotalAmount   int64
		Status        entity.OrderStatus
		OrderPlacedAt time.Time
		Name          string
		Phone         string
	}
	db := r.DB.WithContext(ctx).Table("orders AS o").
		Select("o.id, o.user_id, o.total_amount, o.status, o.order_placed_at, u.name, u.phone").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID)
	if status != nil {
		db = db.Where("o.status = ?", *status)
	}
	if err := db.Order("o.order_placed_at DESC, o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]OwnerOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OwnerOrderSummary{
			ID:            row.ID,
			UserID:        row.UserID,
			CustomerName:  strings.TrimSpace(row.Name),
			CustomerPhone: row.Phone,
			TotalAmount:   row.TotalAmount,
			Status:        row.Status,
			OrderPlacedAt: row.OrderPlacedAt,
		})
	}
	return out, total, nil
}

// UpdateGuarded applies updates only while the order is still in one of the
// given statuses. RowsAffected == 0 means the guard did not hold.
func (r *OrderRepository) UpdateGuarded(tx *gorm.DB, orderID uint, from []entity.OrderStatus, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateStatusGuard is the single-source form of UpdateGuarded.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	return r.UpdateGuarded(tx, orderID, []entity.OrderStatus{from}, updates)
}

// SetReviewOnce writes rating/review on a delivered order that has none yet.
func (r *OrderRepository) SetReviewOnce(tx *gorm.DB, orderID uint, rating int, review *string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND rating IS NULL AND review IS NULL", orderID, entity.StatusDelivered).
		Updates(map[string]any{"rating": rating, "review": review})
	return res.RowsAffected, res.Error
}
