package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/kaanaktas/campushub/internal/app/models"
	appRepos "github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/auth"
)

// CreateDefaultData ensures a default admin account and a starter set of
// canteen products exist. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	canteenRepo := appRepos.NewCanteenRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	password, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Name:     "Administrator",
		Email:    "admin@campushub.app",
		Password: password,
		RoleType: appModels.RoleAdmin,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default admin user")
			finalErr = errors.Join(finalErr, err)
		}
	} else {
		lgr.Info().Str("email", admin.Email).Msg("Default admin user created")
	}

	for _, p := range defaultProducts() {
		if err := canteenRepo.CreateProduct(ctx, p); err != nil {
			if !errors.Is(err, apperrors.ErrDuplicateKey) {
				lgr.Error().Err(err).Str("product", p.Name).Msg("Error creating default canteen product")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	return finalErr
}

// defaultProducts is the starter canteen catalog.
func defaultProducts() []*appModels.CanteenProduct {
	beverages, snacks := "beverages", "snacks"
	return []*appModels.CanteenProduct{
		{Name: "Tea", Price: 10, Category: &beverages, Quantity: 100, IsAvailable: true},
		{Name: "Coffee", Price: 20, Category: &beverages, Quantity: 100, IsAvailable: true},
		{Name: "Veg Sandwich", Price: 45, Category: &snacks, Quantity: 30, IsAvailable: true},
	}
}
