package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication, including the
// refresh-token rotation engine.
type Service struct {
	users          UserRepositoryInterface
	orgs           OrgRepositoryInterface
	refreshTokens  RefreshTokenRepositoryInterface
	tokens         tokenService
	accessTTLLabel string
}

type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

func NewService(
	users UserRepositoryInterface,
	orgs OrgRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	tokens tokenService,
	accessTTLLabel string,
) *Service {
	return &Service{
		users:          users,
		orgs:           orgs,
		refreshTokens:  refreshTokens,
		tokens:         tokens,
		accessTTLLabel: accessTTLLabel,
	}
}

// Register creates the user, a personal workspace organization with an admin
// membership, and the first token pair.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two registrations racing past the ExistsByEmail check: the loser
		// hits the unique index and still gets the conflict answer.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	org := &domain.Organization{
		Name: fmt.Sprintf("%s's Workspace", req.FirstName),
		Slug: fmt.Sprintf("%s-%d", strings.ToLower(req.FirstName), time.Now().UnixMilli()),
	}
	if err := s.orgs.CreateWithAdmin(ctx, org, user.ID); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Tokens: *tokens}, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Tokens: *tokens}, nil
}

// Refresh rotates the presented refresh token: validate, revoke, reissue,
// persist, in that order. Absent, revoked and expired tokens all fail with
// the same ErrInvalidRefreshToken so probes learn nothing about token state.
//
// The revoke step is a conditional update; when two requests race on the
// same token, the one that loses the update observes the row as already
// revoked and fails. A crash after the revoke but before the new row is
// persisted leaves the subject with zero valid refresh tokens, never two.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshRaw)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	current, err := s.refreshTokens.GetValid(ctx, refreshRaw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	won, err := s.refreshTokens.RevokeIfActive(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrInvalidRefreshToken
	}

	newRefresh, err := s.tokens.IssueRefresh(claims.UserID, claims.Email)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    claims.UserID,
		Token:     newRefresh,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}); err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccess(claims.UserID, claims.Email)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    s.accessTTLLabel,
	}, nil
}

// Logout revokes the caller's first active refresh token. Finding nothing to
// revoke is success: logout is idempotent.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	current, err := s.refreshTokens.FirstActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return s.refreshTokens.Revoke(ctx, current.ID)
}

func (s *Service) issueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.accessTTLLabel,
	}, nil
}
