package configs

import (
	"context"
	"errors"

	"foodorder/entity"
	"foodorder/repository"
	"foodorder/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "password123"

const demoRiderEmail = "rider@demo.local"

// SeedDemo creates a customer, an owner with one restaurant and menu, and a
// rider, then logs a dev token for each. Data is only written while the owner
// is missing.
// When no delivery partner is configured the demo rider becomes it.
func SeedDemo(ctx context.Context, database *gorm.DB, cfg *Config, log *zap.Logger) error {
	if err := seedDemoData(ctx, database, cfg, log); err != nil {
		return err
	}
	if cfg.DeliveryPartnerID != 0 {
		return nil
	}
	rider, err := repository.NewUserRepository(database).FindByEmail(ctx, demoRiderEmail)
	if err != nil {
		return err
	}
	cfg.DeliveryPartnerID = rider.ID
	log.Info("using demo rider as delivery partner",
		zap.Uint("delivery_partner_id", rider.ID),
		zap.String("hint", "set DELIVERY_PARTNER_ID to override"))
	return nil
}

func seedDemoData(ctx context.Context, database *gorm.DB, cfg *Config, log *zap.Logger) error {
	_, err := repository.NewUserRepository(database).FindByEmail(ctx, "owner@demo.local")
	if err == nil {
		log.Info("demo data already seeded")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []*entity.User{
		{Email: "customer@demo.local", Password: string(hash), Name: "Demo Customer", Phone: "9000000001", Role: entity.RoleCustomer},
		{Email: "owner@demo.local", Password: string(hash), Name: "Demo Owner", Phone: "9000000002", Role: entity.RoleOwner},
		{Email: demoRiderEmail, Password: string(hash), Name: "Demo Rider", Phone: "9000000003", Role: entity.RoleRider},
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := repository.NewUserRepository(tx)
		for _, u := range users {
			if err := userRepo.Create(ctx, u); err != nil {
				return err
			}
		}
		rest := entity.Restaurant{
			Name: "Tomato Kitchen", Description: "North Indian comfort food", Phone: "9000000010",
			IsOpen: true, OwnerID: users[1].ID,
			Address: entity.Address{Street: "12 MG Road", City: "Pune", State: "MH", Country: "India", Pincode: "411001"},
		}
		if err := repository.NewRestaurantRepository(tx).Create(ctx, &rest); err != nil {
			return err
		}
		foods := []entity.FoodItem{
			{Name: "Paneer Tikka", Category: "starters", Price: 24000, PreparationTime: 15, IsAvailable: true, MaxQuantity: 5, RestaurantID: rest.ID},
			{Name: "Dal Makhani", Category: "main course", Price: 22000, PreparationTime: 20, IsAvailable: true, MaxQuantity: 10, RestaurantID: rest.ID},
			{Name: "Gulab Jamun", Category: "desserts", Price: 9000, PreparationTime: 5, IsAvailable: true, MaxQuantity: 10, RestaurantID: rest.ID},
		}
		foodRepo := repository.NewFoodRepository(tx)
		for i := range foods {
			if err := foodRepo.Create(ctx, &foods[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, u := range users {
		tok, err := utils.GenerateToken(u.ID, u.Role, cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			return err
		}
		log.Info("demo user", zap.Uint("user_id", u.ID), zap.String("email", u.Email),
			zap.String("role", u.Role), zap.String("token", tok))
	}
	log.Info("demo data seeded")
	return nil
}
