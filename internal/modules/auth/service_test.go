package auth

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Mock Org Repository
type mockOrgRepo struct {
	mock.Mock
}

func (m *mockOrgRepo) CreateWithAdmin(ctx context.Context, org *domain.Organization, userID int64) error {
	args := m.Called(ctx, org, userID)
	return args.Error(0)
}

// Mock Refresh Token Repository
type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) GetValid(ctx context.Context, tokenStr string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) RevokeIfActive(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRefreshTokenRepo) FirstActiveByUser(ctx context.Context, userID int64) (*domain.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

// Mock token service
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueAccess(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssueRefresh(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) VerifyRefresh(tokenStr string) (*token.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Claims), args.Error(1)
}

func (m *mockTokenService) RefreshTTL() time.Duration {
	return 7 * 24 * time.Hour
}

func newTestService(users *mockUserRepo, orgs *mockOrgRepo, refresh *mockRefreshTokenRepo, tokens *mockTokenService) *Service {
	return NewService(users, orgs, refresh, tokens, "15m")
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	users.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	orgs.On("CreateWithAdmin", mock.Anything, mock.MatchedBy(func(org *domain.Organization) bool {
		return org.Name == "A's Workspace"
	}), mock.Anything).Return(nil)
	tokens.On("IssueAccess", mock.Anything, "a@x.com").Return("access-token", nil)
	tokens.On("IssueRefresh", mock.Anything, "a@x.com").Return("refresh-token", nil)
	refresh.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(users, orgs, refresh, tokens)

	result, err := service.Register(context.Background(), RegisterRequest{
		Email:     "a@x.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", result.Tokens.AccessToken)
	assert.Equal(t, "refresh-token", result.Tokens.RefreshToken)
	assert.Equal(t, "15m", result.Tokens.ExpiresIn)

	users.AssertExpectations(t)
	orgs.AssertExpectations(t)
	refresh.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestService_Register_EmailExists(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	users.On("ExistsByEmail", mock.Anything, "exists@x.com").Return(true, nil)

	service := newTestService(users, orgs, refresh, tokens)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:     "exists@x.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Register_DuplicateRace(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	// The existence check passes, but a concurrent registration commits
	// first and our insert hits the unique index.
	users.On("ExistsByEmail", mock.Anything, "race@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	service := newTestService(users, orgs, refresh, tokens)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:     "race@x.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	orgs.AssertNotCalled(t, "CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existingUser := &domain.User{
		ID:           10,
		Email:        "user@x.com",
		PasswordHash: string(hashed),
	}

	users.On("GetByEmail", mock.Anything, "user@x.com").Return(existingUser, nil)
	tokens.On("IssueAccess", int64(10), "user@x.com").Return("login-access", nil)
	tokens.On("IssueRefresh", int64(10), "user@x.com").Return("login-refresh", nil)
	refresh.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(users, orgs, refresh, tokens)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@x.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "login-access", result.Tokens.AccessToken)
	assert.Equal(t, "login-refresh", result.Tokens.RefreshToken)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existingUser := &domain.User{ID: 10, Email: "user@x.com", PasswordHash: string(hashed)}

	users.On("GetByEmail", mock.Anything, "user@x.com").Return(existingUser, nil)

	service := newTestService(users, orgs, refresh, tokens)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@x.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	users.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, orgs, refresh, tokens)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@x.com",
		Password: "whatever",
	})

	// Same error as a wrong password: the caller can't tell which it was.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Refresh_Success(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	claims := &token.Claims{UserID: 10, Email: "user@x.com"}
	stored := &domain.RefreshToken{ID: 5, UserID: 10, Token: "old-refresh"}

	tokens.On("VerifyRefresh", "old-refresh").Return(claims, nil)
	refresh.On("GetValid", mock.Anything, "old-refresh").Return(stored, nil)
	refresh.On("RevokeIfActive", mock.Anything, int64(5)).Return(true, nil)
	tokens.On("IssueRefresh", int64(10), "user@x.com").Return("new-refresh", nil)
	refresh.On("Create", mock.Anything, mock.MatchedBy(func(t *domain.RefreshToken) bool {
		return t.Token == "new-refresh" && t.UserID == 10
	})).Return(nil)
	tokens.On("IssueAccess", int64(10), "user@x.com").Return("new-access", nil)

	service := newTestService(users, orgs, refresh, tokens)

	pair, err := service.Refresh(context.Background(), "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
	refresh.AssertExpectations(t)
}

func TestService_Refresh_BadSignature(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	tokens.On("VerifyRefresh", "forged").Return(nil, token.ErrInvalidToken)

	service := newTestService(users, orgs, refresh, tokens)

	_, err := service.Refresh(context.Background(), "forged")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	refresh.AssertNotCalled(t, "GetValid", mock.Anything, mock.Anything)
}

func TestService_Refresh_UnknownOrRevoked(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	claims := &token.Claims{UserID: 10, Email: "user@x.com"}
	tokens.On("VerifyRefresh", "rotated-away").Return(claims, nil)
	refresh.On("GetValid", mock.Anything, "rotated-away").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, orgs, refresh, tokens)

	_, err := service.Refresh(context.Background(), "rotated-away")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_LostRace(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	claims := &token.Claims{UserID: 10, Email: "user@x.com"}
	stored := &domain.RefreshToken{ID: 5, UserID: 10, Token: "contested"}

	tokens.On("VerifyRefresh", "contested").Return(claims, nil)
	refresh.On("GetValid", mock.Anything, "contested").Return(stored, nil)
	// A concurrent rotation revoked the row between our read and our update.
	refresh.On("RevokeIfActive", mock.Anything, int64(5)).Return(false, nil)

	service := newTestService(users, orgs, refresh, tokens)

	_, err := service.Refresh(context.Background(), "contested")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	tokens.AssertNotCalled(t, "IssueRefresh", mock.Anything, mock.Anything)
	refresh.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Logout_RevokesFirstActive(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	stored := &domain.RefreshToken{ID: 8, UserID: 10}
	refresh.On("FirstActiveByUser", mock.Anything, int64(10)).Return(stored, nil)
	refresh.On("Revoke", mock.Anything, int64(8)).Return(nil)

	service := newTestService(users, orgs, refresh, tokens)

	require.NoError(t, service.Logout(context.Background(), 10))
	refresh.AssertExpectations(t)
}

func TestService_Logout_Idempotent(t *testing.T) {
	users := new(mockUserRepo)
	orgs := new(mockOrgRepo)
	refresh := new(mockRefreshTokenRepo)
	tokens := new(mockTokenService)

	// Nothing left to revoke: still success.
	refresh.On("FirstActiveByUser", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, orgs, refresh, tokens)

	require.NoError(t, service.Logout(context.Background(), 10))
	refresh.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}
