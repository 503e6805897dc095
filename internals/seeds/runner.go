package seeds

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"admissions_backend/internals/configs"
	"admissions_backend/internals/features/admins/auth/repository"
	"admissions_backend/internals/seeds/admins"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB, cfg *configs.Config, log logrus.FieldLogger) error {
	//* Admin
	return admins.EnsureAdmin(ctx, repository.NewAdminRepository(db), cfg.AdminUsername, cfg.AdminPassword, log)
}
