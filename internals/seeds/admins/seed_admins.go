package admins

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"admissions_backend/internals/features/admins/auth/model"
	"admissions_backend/internals/features/admins/auth/repository"
	"admissions_backend/internals/features/admins/auth/service"
)

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
// An empty password disables bootstrapping; an existing account is never touched.
func EnsureAdmin(ctx context.Context, repo repository.AdminRepository, username, password string, log logrus.FieldLogger) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		log.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	exists, err := repo.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		log.WithField("username", username).Info("admin account already present, skipped")
		return nil
	}

	hashed, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	if err := repo.Create(ctx, &model.AdminModel{AdminUsername: username, AdminPassword: hashed}); err != nil {
		return err
	}
	log.WithField("username", username).Info("admin account created")
	return nil
}
