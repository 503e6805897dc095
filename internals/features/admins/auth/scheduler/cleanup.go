package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"admissions_backend/internals/features/admins/auth/repository"
)

// PurgeBlacklist deletes revoked tokens whose expiry has passed.
func PurgeBlacklist(ctx context.Context, repo repository.TokenBlacklistRepository, log logrus.FieldLogger) {
	n, err := repo.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		log.WithError(err).Error("token_blacklist cleanup failed")
		return
	}
	log.WithField("deleted", n).Info("token_blacklist cleanup done")
}

// StartBlacklistCleanupScheduler runs PurgeBlacklist on spec (standard cron or
// "@every 24h"). The caller stops the returned cron on shutdown.
func StartBlacklistCleanupScheduler(spec string, repo repository.TokenBlacklistRepository, log logrus.FieldLogger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		PurgeBlacklist(ctx, repo, log)
	})
	if err != nil {
		return nil, err
	}
	log.WithField("schedule", spec).Info("token_blacklist cleanup scheduled")
	c.Start()
	return c, nil
}
