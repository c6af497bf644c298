package services

import (
	"context"
	"errors"
	"time"

	"foodorder/entity"
	"foodorder/events"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	Catalog  *CatalogService
	Dispatch Dispatcher
	Events   events.Publisher
	Log      *zap.Logger

	Now func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	catalog *CatalogService,
	dispatch Dispatcher,
	pub events.Publisher,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, Catalog: catalog,
		Dispatch: dispatch, Events: pub, Log: log, Now: time.Now,
	}
}

// ----- DTOs from Controller -----

type OrderLineIn struct {
	FoodID   uint `json:"foodId" validate:"required"`
	Quantity int  `json:"quantity"`
}

// OrderMeta is everything about an order except its lines.
type OrderMeta struct {
	DeliveryAddress     entity.Address       `json:"deliveryAddress"`
	PaymentMethod       entity.PaymentMethod `json:"paymentMethod" validate:"required,oneof=CASH UPI DEBIT_CARD CREDIT_CARD"`
	PaymentStatus       entity.PaymentStatus `json:"paymentStatus" validate:"required,oneof=PENDING PAID"`
	PreparationTime     int                  `json:"preparationTime" validate:"gt=0,max=1440"`
	IsGift              bool                 `json:"isGift"`
	SpecialInstructions string               `json:"specialInstructions"`
}

type InitiateOrderIn struct {
	Items []OrderLineIn `json:"items" validate:"required,min=1,dive"`
	OrderMeta
}

type CheckoutIn struct {
	OrderMeta
}

// OrderView is an order joined with its restaurant summary.
type OrderView struct {
	entity.Order
	Restaurant entity.RestaurantSummary `json:"restaurant"`
}

// ----- Create -----

// Initiate places a PENDING order from caller-supplied lines. Name, price and
// cap of every line are read from the catalog, never from the request. All
// guards run before anything is written.
func (s *OrderService) Initiate(ctx context.Context, userID, restaurantID uint, in *InitiateOrderIn) (*entity.Order, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	if err := s.checkMeta(ctx, restaurantID, &in.OrderMeta); err != nil {
		return nil, err
	}

	lines := make([]entity.OrderLine, 0, len(in.Items))
	seen := make(map[uint]bool, len(in.Items))
	for _, it := range in.Items {
		if seen[it.FoodID] {
			return nil, apperr.InvalidArgument("food item %d listed twice", it.FoodID)
		}
		seen[it.FoodID] = true
		if it.Quantity < 1 {
			return nil, apperr.InvalidArgument("quantity of food item %d must be at least 1", it.FoodID)
		}
		food, err := s.Catalog.LookupFood(ctx, it.FoodID)
		if err != nil {
			return nil, err
		}
		if err := s.checkFood(food, restaurantID, it.Quantity, food.MaxQuantity); err != nil {
			return nil, err
		}
		lines = append(lines, entity.OrderLine{
			FoodID: food.ID, Name: food.Name, Price: food.Price,
			Quantity: it.Quantity, MaxQuantity: food.MaxQuantity,
		})
	}
	return s.place(ctx, userID, restaurantID, &in.OrderMeta, lines)
}

// Checkout places a PENDING order from the caller's stored cart, keeping the
// prices frozen in the cart lines. The cart is read and consumed in the
// transaction that inserts the order, and only the lines copied into the
// order are removed from it.
func (s *OrderService) Checkout(ctx context.Context, userID, restaurantID uint, in *CheckoutIn) (*entity.Order, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	if err := s.checkMeta(ctx, restaurantID, &in.OrderMeta); err != nil {
		return nil, err
	}

	order := entity.Order{UserID: userID, RestaurantID: restaurantID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.LoadCart(tx, userID, restaurantID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("cart not found")
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return apperr.InvalidArgument("cart is empty")
		}

		lines := make([]entity.OrderLine, 0, len(cart.Items))
		lineIDs := make([]uint, 0, len(cart.Items))
		for _, it := range cart.Items {
			food, err := s.Catalog.LookupFoodTx(tx, it.FoodID)
			if err != nil {
				return err
			}
			if err := s.checkFood(food, restaurantID, it.Quantity, it.MaxQuantity); err != nil {
				return err
			}
			lines = append(lines, entity.OrderLine{
				FoodID: it.FoodID, Name: it.Name, Price: it.Price,
				Quantity: it.Quantity, MaxQuantity: it.MaxQuantity,
			})
			lineIDs = append(lineIDs, it.ID)
		}

		order = s.newOrder(userID, restaurantID, &in.OrderMeta, lines)
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		if err := s.CartRepo.DeleteLines(tx, cart.ID, lineIDs); err != nil {
			return err
		}
		return s.CartRepo.DropIfEmpty(tx, cart.ID)
	})
	return s.placed(ctx, &order, err)
}

func (s *OrderService) checkMeta(ctx context.Context, restaurantID uint, m *OrderMeta) error {
	if m.PaymentMethod == entity.PaymentCash && m.PaymentStatus == entity.PaymentPaid {
		return apperr.InvalidArgument("payment status cannot be PAID when payment method is CASH")
	}
	_, err := s.Catalog.GetRestaurant(ctx, restaurantID)
	return err
}

func (s *OrderService) checkFood(food *entity.FoodItem, restaurantID uint, qty, max int) error {
	if !s.Catalog.FoodBelongsToRestaurant(food, restaurantID) {
		return apperr.InvalidArgument("food item %d does not belong to restaurant %d", food.ID, restaurantID)
	}
	if !food.IsAvailable {
		return apperr.InvalidArgument("food item %d is not available", food.ID)
	}
	if qty < 1 || qty > max {
		return apperr.InvalidArgument("quantity %d of %q must be between 1 and %d", qty, food.Name, max)
	}
	return nil
}

// place writes the order and drops the caller's cart for the restaurant in
// one transaction.
func (s *OrderService) place(ctx context.Context, userID, restaurantID uint, m *OrderMeta, lines []entity.OrderLine) (*entity.Order, error) {
	order := s.newOrder(userID, restaurantID, m, lines)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		err := s.CartRepo.DeleteCart(tx, userID, restaurantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	})
	return s.placed(ctx, &order, err)
}

func (s *OrderService) newOrder(userID, restaurantID uint, m *OrderMeta, lines []entity.OrderLine) entity.Order {
	var total int64
	for _, l := range lines {
		total += l.Total()
	}
	now := s.Now()
	return entity.Order{
		UserID:                userID,
		RestaurantID:          restaurantID,
		Items:                 lines,
		TotalAmount:           total,
		DeliveryAddress:       m.DeliveryAddress,
		OrderPlacedAt:         now,
		EstimatedDeliveryTime: now.Add(time.Duration(m.PreparationTime) * time.Minute),
		Status:                entity.StatusPending,
		PaymentMethod:         m.PaymentMethod,
		PaymentStatus:         m.PaymentStatus,
		PreparationTime:       m.PreparationTime,
		IsGift:                m.IsGift,
		SpecialInstructions:   m.SpecialInstructions,
	}
}

// placed logs and announces a committed order, or passes err through.
func (s *OrderService) placed(ctx context.Context, order *entity.Order, err error) (*entity.Order, error) {
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			s.Log.Error("failed to place order",
				zap.Uint("user_id", order.UserID), zap.Uint("restaurant_id", order.RestaurantID), zap.Error(err))
		}
		return nil, err
	}

	s.Log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Uint("restaurant_id", order.RestaurantID),
		zap.Int64("total_amount", order.TotalAmount))
	s.publish(ctx, events.TypeOrderPlaced, order, "", "")
	return order, nil
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(ctx context.Context, userID uint, limit int) ([]OrderView, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrdersForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.RestaurantID)
	}
	sums, err := s.Catalog.RestaurantSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderView{Order: o, Restaurant: summaryOr(sums, o.RestaurantID)})
	}
	return out, nil
}

func (s *OrderService) DetailForUser(ctx context.Context, userID, orderID uint) (*OrderView, error) {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, apperr.Forbidden("you are not allowed to view order %d", orderID)
	}
	sums, err := s.Catalog.RestaurantSummaries(ctx, []uint{o.RestaurantID})
	if err != nil {
		return nil, err
	}
	return &OrderView{Order: *o, Restaurant: summaryOr(sums, o.RestaurantID)}, nil
}

type OwnerOrderListOut struct {
	Items []repository.OwnerOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (s *OrderService) ListForRestaurant(ctx context.Context, ownerID, restID uint, status string, page, limit int) (*OwnerOrderListOut, error) {
	if err := s.Catalog.requireOwner(ctx, restID, ownerID); err != nil {
		return nil, err
	}
	var filter *entity.OrderStatus
	if status != "" {
		st := entity.OrderStatus(status)
		if !st.Valid() {
			return nil, apperr.InvalidArgument("unknown order status %q", status)
		}
		filter = &st
	}
	if page < 1 {
		return nil, apperr.InvalidArgument("page must be at least 1, got %d", page)
	}
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	items, total, err := s.Repo.ListOrdersForRestaurant(ctx, restID, filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &OwnerOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// ----- helpers -----

const maxPageSize = 200

func checkLimit(limit int) error {
	if limit < 1 || limit > maxPageSize {
		return apperr.InvalidArgument("limit must be between 1 and %d, got %d", maxPageSize, limit)
	}
	return nil
}

func (s *OrderService) load(ctx context.Context, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order %d not found", orderID)
	}
	return o, err
}

func (s *OrderService) publish(ctx context.Context, typ string, o *entity.Order, from entity.OrderStatus, actor entity.Actor) {
	ev := events.OrderEvent{
		EventID:      uuid.NewString(),
		Type:         typ,
		OrderID:      o.ID,
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		From:         from,
		Status:       o.Status,
		Actor:        actor,
		TotalAmount:  o.TotalAmount,
		Timestamp:    s.Now(),
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		// the change is already committed; delivery of the event is best effort
		s.Log.Error("failed to publish event",
			zap.String("type", typ), zap.Uint("order_id", o.ID), zap.Error(err))
	}
}

func summaryOr(sums map[uint]entity.RestaurantSummary, id uint) entity.RestaurantSummary {
	if s, ok := sums[id]; ok {
		return s
	}
	return entity.RestaurantSummary{ID: id}
}
