package auth

import (
	"context"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/pkg/token"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetValid(ctx context.Context, tokenStr string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64) error
	RevokeIfActive(ctx context.Context, id int64) (bool, error)
	FirstActiveByUser(ctx context.Context, userID int64) (*domain.RefreshToken, error)
}

type OrgRepositoryInterface interface {
	CreateWithAdmin(ctx context.Context, org *domain.Organization, userID int64) error
}

type tokenService interface {
	IssueAccess(userID int64, email string) (string, error)
	IssueRefresh(userID int64, email string) (string, error)
	VerifyRefresh(tokenStr string) (*token.Claims, error)
	RefreshTTL() time.Duration
}
