package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"admissions_backend/internals/features/admins/auth/model"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminModel, error)
	Create(ctx context.Context, admin *model.AdminModel) error
	Exists(ctx context.Context, username string) (bool, error)
}

// TokenBlacklistRepository stores revoked session tokens by digest.
type TokenBlacklistRepository interface {
	Add(ctx context.Context, digest string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, digest string, now time.Time) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type adminRepository struct{ db *gorm.DB }

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*model.AdminModel, error) {
	var a model.AdminModel
	err := r.db.WithContext(ctx).Where("admin_username = ?", username).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *model.AdminModel) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) Exists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AdminModel{}).
		Where("admin_username = ?", username).
		Count(&n).Error
	return n > 0, err
}

type blacklistRepository struct{ db *gorm.DB }

func NewTokenBlacklistRepository(db *gorm.DB) TokenBlacklistRepository {
	return &blacklistRepository{db: db}
}

func (r *blacklistRepository) Add(ctx context.Context, digest string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
		}).
		Create(&model.TokenBlacklist{Token: digest, ExpiredAt: expiresAt}).Error
}

func (r *blacklistRepository) IsBlacklisted(ctx context.Context, digest string, now time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", digest, now).
		Count(&n).Error
	return n > 0, err
}

func (r *blacklistRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expired_at <= ?", now).
		Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
