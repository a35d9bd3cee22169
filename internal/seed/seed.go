package seed

import (
	"context"
	"errors"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DefaultAdminEmail is the seeded administrator account
const DefaultAdminEmail = "admin@example.com"

const defaultAdminPassword = "admin"

// CreateDefaultData creates the default admin account if it does not exist
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.ExistsByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Debug().Msg("Admin user already exists, skipping creation")
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &models.User{
		Email:     DefaultAdminEmail,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		RoleType:  models.RoleAdmin,
	}

	adminID, err := userRepo.Create(ctx, admin)
	if err != nil {
		// A concurrent boot may have won the insert
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminId", adminID).Str("email", DefaultAdminEmail).Msg("Default admin user created")
	return nil
}
