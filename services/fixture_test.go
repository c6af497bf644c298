package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"foodorder/configs"
	"foodorder/entity"
	"foodorder/events"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db      *gorm.DB
	catalog *CatalogService
	carts   *CartService
	orders  *OrderService
	favs    *FavouriteService
	pub     *recordingPublisher
	now     time.Time

	customer, otherCustomer uint
	owner, otherOwner       uint
	rider, otherRider       uint

	rest, otherRest uint

	// f1: price 100, cap 5. f2: price 250, cap 10. unavailable: not orderable.
	// foreign: belongs to otherRest.
	f1, f2, unavailable, foreign uint
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// a file database with the production connection setup, so concurrent
	// requests really run on separate connections
	db, err := configs.ConnectionDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, configs.SetupDatabase(db))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	ctx := context.Background()
	f := &fixture{db: db, pub: &recordingPublisher{}, now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	mkUser := func(email, name, role string) uint {
		u := &entity.User{Email: email, Name: name, Role: role}
		require.NoError(t, repository.NewUserRepository(db).Create(ctx, u))
		return u.ID
	}
	f.customer = mkUser("cust@test.local", "Asha", entity.RoleCustomer)
	f.otherCustomer = mkUser("cust2@test.local", "Ravi", entity.RoleCustomer)
	f.owner = mkUser("owner@test.local", "Olga", entity.RoleOwner)
	f.otherOwner = mkUser("owner2@test.local", "Omar", entity.RoleOwner)
	f.rider = mkUser("rider@test.local", "Rita", entity.RoleRider)
	f.otherRider = mkUser("rider2@test.local", "Raj", entity.RoleRider)

	log := zap.NewNop()
	restRepo := repository.NewRestaurantRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	cartRepo := repository.NewCartRepository(db)
	f.catalog = NewCatalogService(restRepo, foodRepo, log)
	f.carts = NewCartService(db, cartRepo, f.catalog, log)
	f.orders = NewOrderService(db, repository.NewOrderRepository(db), cartRepo, f.catalog,
		StaticDispatcher{PartnerID: f.rider}, f.pub, log)
	f.orders.Now = func() time.Time { return f.now }
	f.favs = NewFavouriteService(repository.NewFavouriteRepository(db), f.orders, log)

	addr := entity.Address{Street: "1 Main St", City: "Pune", State: "MH", Country: "India", Pincode: "411001"}
	r1, err := f.catalog.CreateRestaurant(ctx, f.owner, &CreateRestaurantIn{Name: "R1", Address: addr})
	require.NoError(t, err)
	r2, err := f.catalog.CreateRestaurant(ctx, f.otherOwner, &CreateRestaurantIn{Name: "R2", Address: addr})
	require.NoError(t, err)
	f.rest, f.otherRest = r1.ID, r2.ID

	no := false
	mkFood := func(owner, rest uint, in CreateFoodIn) uint {
		food, err := f.catalog.CreateFood(ctx, owner, rest, &in)
		require.NoError(t, err)
		return food.ID
	}
	f.f1 = mkFood(f.owner, f.rest, CreateFoodIn{Name: "F1", Price: 100, MaxQuantity: 5})
	f.f2 = mkFood(f.owner, f.rest, CreateFoodIn{Name: "F2", Price: 250})
	f.unavailable = mkFood(f.owner, f.rest, CreateFoodIn{Name: "Off menu", Price: 50, IsAvailable: &no})
	f.foreign = mkFood(f.otherOwner, f.otherRest, CreateFoodIn{Name: "Elsewhere", Price: 80})
	return f
}

func (f *fixture) address() entity.Address {
	return entity.Address{Street: "7 Lake Rd", City: "Pune", State: "MH", Country: "India", Pincode: "411002"}
}

func (f *fixture) meta() OrderMeta {
	return OrderMeta{
		DeliveryAddress: f.address(),
		PaymentMethod:   entity.PaymentUPI,
		PaymentStatus:   entity.PaymentPaid,
		PreparationTime: 25,
	}
}

// placeOrder creates a PENDING order for f.customer at f.rest.
func (f *fixture) placeOrder(t *testing.T) *entity.Order {
	t.Helper()
	o, err := f.orders.Initiate(context.Background(), f.customer, f.rest, &InitiateOrderIn{
		Items:     []OrderLineIn{{FoodID: f.f1, Quantity: 2}, {FoodID: f.f2, Quantity: 1}},
		OrderMeta: f.meta(),
	})
	require.NoError(t, err)
	return o
}

// force puts an order straight into status st, bypassing the state machine.
func (f *fixture) force(t *testing.T, orderID uint, st entity.OrderStatus, partner *uint) {
	t.Helper()
	require.NoError(t, f.db.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"status": st, "delivery_partner_id": partner}).Error)
}

func (f *fixture) status(t *testing.T, orderID uint) entity.OrderStatus {
	t.Helper()
	var o entity.Order
	require.NoError(t, f.db.First(&o, orderID).Error)
	return o.Status
}

func requireKind(t *testing.T, err error, k apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "want apperr, got %v", err)
	require.Equal(t, k, ae.Kind, err.Error())
}
