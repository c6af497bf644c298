package repository

import (
	"context"
	"errors"
	"time"

	"foodorder/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// FindCart returns the (user, restaurant) cart with its lines.
func (r *CartRepository) FindCart(ctx context.Context, userID, restaurantID uint) (*entity.Cart, error) {
	return r.LoadCart(r.DB.WithContext(ctx), userID, restaurantID)
}

// LoadCart is FindCart inside tx.
func (r *CartRepository) LoadCart(tx *gorm.DB, userID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) ListCarts(ctx context.Context, userID uint) ([]entity.Cart, error) {
	var carts []entity.Cart
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("updated_at DESC").
		Find(&carts).Error
	return carts, err
}

// EnsureCart creates the cart if missing; the unique (user_id, restaurant_id)
// index makes concurrent first-adds converge on one row.
func (r *CartRepository) EnsureCart(tx *gorm.DB, userID, restaurantID uint) (uint, error) {
	c := entity.Cart{UserID: userID, RestaurantID: restaurantID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "restaurant_id"}},
		DoNothing: true,
	}).Create(&c).Error
	if err != nil {
		return 0, err
	}
	var row struct{ ID uint }
	err = tx.Model(&entity.Cart{}).Select("id").
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Take(&row).Error
	return row.ID, err
}

// FindLine returns the existing line for foodID, or nil when the cart has none.
func (r *CartRepository) FindLine(tx *gorm.DB, cartID, foodID uint) (*entity.CartLine, error) {
	var l entity.CartLine
	err := tx.Where("cart_id = ? AND food_id = ?", cartID, foodID).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpsertLine appends the line or replaces the quantity of the existing one
// in a single statement. Price, name and cap of an existing line stay frozen;
// the replace only applies while the new quantity fits the frozen cap.
// Returns false when the existing line refused the quantity.
func (r *CartRepository) UpsertLine(tx *gorm.DB, cartID uint, line *entity.CartLine) (bool, error) {
	line.CartID = cartID
	res := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "food_id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "cart_lines.max_quantity >= excluded.quantity"},
		}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(line)
	if res.Error != nil {
		return false, res.Error
	}
	if err := tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		UpdateColumn("updated_at", time.Now()).Error; err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

// RemoveLine deletes one line and drops the cart when it is left empty.
// Returns gorm.ErrRecordNotFound when either the cart or the line is missing.
func (r *CartRepository) RemoveLine(tx *gorm.DB, userID, restaurantID, foodID uint) error {
	cartID, err := r.cartID(tx, userID, restaurantID)
	if err != nil {
		return err
	}
	res := tx.Where("cart_id = ? AND food_id = ?", cartID, foodID).Delete(&entity.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.DropIfEmpty(tx, cartID)
}

// DeleteLines removes the given lines of one cart and nothing else.
func (r *CartRepository) DeleteLines(tx *gorm.DB, cartID uint, lineIDs []uint) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return tx.Where("cart_id = ? AND id IN ?", cartID, lineIDs).Delete(&entity.CartLine{}).Error
}

// DropIfEmpty deletes the cart row only while no line refers to it.
func (r *CartRepository) DropIfEmpty(tx *gorm.DB, cartID uint) error {
	return tx.Exec(`
		DELETE FROM carts
		 WHERE id = ?
		   AND NOT EXISTS (SELECT 1 FROM cart_lines cl WHERE cl.cart_id = carts.id)
	`, cartID).Error
}

// DeleteCart removes the cart and all of its lines.
func (r *CartRepository) DeleteCart(tx *gorm.DB, userID, restaurantID uint) error {
	cartID, err := r.cartID(tx, userID, restaurantID)
	if err != nil {
		return err
	}
	if err := tx.Where("cart_id = ?", cartID).Delete(&entity.CartLine{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Cart{}, cartID).Error
}

func (r *CartRepository) cartID(tx *gorm.DB, userID, restaurantID uint) (uint, error) {
	var row struct{ ID uint }
	err := tx.Model(&entity.Cart{}).Select("id").
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, gorm.ErrRecordNotFound
	}
	return row.ID, err
}
