package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/core/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopbooks/shopbooks/internal/platform/config"
	"github.com/shopbooks/shopbooks/internal/utils"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
	cfg          *config.Config
	user         domain.User
	password     string
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "shopbooks-test",
	}
	suite.service = services.NewAuthService(suite.cfg, suite.mockUserRepo, nil)

	suite.password = "s3cret-pass"
	hash, err := utils.HashPassword(suite.password)
	suite.Require().NoError(err)
	suite.user = domain.User{
		UserID:       "u-1",
		Username:     "fatima",
		PasswordHash: hash,
		Role:         "accountant",
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "fatima").Return(&suite.user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "  Fatima ", Password: suite.password})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)
	suite.Equal(suite.user.UserID, resp.User.UserID)
	suite.WithinDuration(time.Now().Add(time.Hour), resp.ExpireAt, 5*time.Second)

	// The token must verify against the configured secret and carry the user id.
	claims, err := utils.ParseAndValidateJWT(resp.Token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, claims.Subject)
	suite.Equal(suite.cfg.JWTIssuer, claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUsername() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "fatima").Return(&suite.user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "fatima", Password: "not-the-password"})

	suite.Require().Error(err)
	// Same error as an unknown username so the response leaks nothing.
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUser() {
	ctx := context.Background()
	inactive := suite.user
	inactive.IsActive = false

	suite.mockUserRepo.On("FindUserByUsername", ctx, "fatima").Return(&inactive, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "fatima", Password: suite.password})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
