package services_test

import (
	"context"
	"testing"

	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/core/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopbooks/shopbooks/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockUserRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.UserSvcFacade
	adminID        string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewUserService(
		suite.mockUserRepo,
		services.WithUserAuthorizer(suite.mockAuthorizer),
	)
	suite.adminID = "admin-1"
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username:   "  Fatima  ",
		FullName:   "Fatima Hassan",
		Password:   "s3cret-pass",
		Role:       "accountant",
		CanReports: true,
	}

	suite.mockAuthorizer.On("Require", ctx, suite.adminID, domain.CapManageUsers).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "fatima").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).
		Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	// Usernames are trimmed and lowercased so logins are case-insensitive.
	suite.Equal("fatima", saved.Username)
	suite.True(saved.IsActive)
	suite.Equal(suite.adminID, saved.CreatedBy)
	// Only the bcrypt hash is stored.
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "fatima", Password: "s3cret-pass", Role: "viewer"}

	suite.mockAuthorizer.On("Require", ctx, suite.adminID, domain.CapManageUsers).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "fatima").
		Return(&domain.User{UserID: "u-2", Username: "fatima"}, nil).Once()

	_, err := suite.service.CreateUser(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_RequiresCapability() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "fatima", Password: "s3cret-pass", Role: "viewer"}

	suite.mockAuthorizer.On("Require", ctx, suite.adminID, domain.CapManageUsers).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateUser(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_SelfDeactivationRejected() {
	ctx := context.Background()

	suite.mockAuthorizer.On("Require", ctx, suite.adminID, domain.CapManageUsers).Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, suite.adminID, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeactivateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_Success() {
	ctx := context.Background()

	suite.mockAuthorizer.On("Require", ctx, suite.adminID, domain.CapManageUsers).Return(nil).Once()
	suite.mockUserRepo.On("DeactivateUser", ctx, "u-2", suite.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, "u-2", suite.adminID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
