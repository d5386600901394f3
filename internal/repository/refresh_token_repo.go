package repository

import (
	"context"
	"time"

	"taskboard/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetValid looks up a token by its exact string and treats absent, revoked
// and expired rows as one uniform miss (gorm.ErrRecordNotFound).
func (r *RefreshTokenRepository) GetValid(ctx context.Context, tokenStr string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", tokenStr).First(&t).Error
	if err != nil {
		return nil, err
	}
	if t.Revoked || t.IsExpired(time.Now()) {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

// Revoke soft-revokes a row. Revoking an already-revoked row is a no-op.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true).Error
}

// RevokeIfActive flips revoked in a single conditional update and reports
// whether this call was the one that did it. Concurrent rotations of the
// same token race on this statement; exactly one caller sees true.
func (r *RefreshTokenRepository) RevokeIfActive(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// FirstActiveByUser returns the oldest non-revoked token for a user, used by
// logout. Expiry is irrelevant there: revoking an expired row is harmless.
func (r *RefreshTokenRepository) FirstActiveByUser(ctx context.Context, userID int64) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ?", userID, false).
		Order("created_at ASC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteStale hard-deletes rows the auth flow can never touch again:
// past expiry, or revoked longer ago than keepRevoked.
func (r *RefreshTokenRepository) DeleteStale(ctx context.Context, keepRevoked time.Duration) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Or("revoked = ? AND created_at < ?", true, now.Add(-keepRevoked)).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
