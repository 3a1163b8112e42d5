package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"roomnest/internal/auth"
	"roomnest/internal/errors"
	"roomnest/internal/model"
)

func newAuthServiceForTest(userRepo *MockUserRepository, tokenStore *MockTokenStore, photos *MockPhotoStore) AuthService {
	return NewAuthService(userRepo, auth.NewJWTService("test-secret"), tokenStore, photos)
}

func TestRegister_StudentSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	photos := new(MockPhotoStore)
	svc := newAuthServiceForTest(userRepo, tokenStore, photos)

	userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, gorm.ErrRecordNotFound)
	photos.On("Upload", mock.Anything, mock.AnythingOfType("string"), []byte("img"), "image/png").
		Return("http://blobs/users/abc.png", nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username:         "asha",
		Email:            "asha@example.com",
		Password:         "secret1",
		Role:             model.RoleStudent,
		Photo:            []byte("img"),
		PhotoContentType: "image/png",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.Equal(t, "http://blobs/users/abc.png", user.Photo)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthServiceForTest(userRepo, new(MockTokenStore), new(MockPhotoStore))

	existing := &model.User{ID: uuid.New(), Email: "asha@example.com"}
	userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(existing, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret1",
		Role:     model.RoleStudent,
	})

	assert.ErrorIs(t, err, errors.ErrUserAlreadyExists)
	assert.Nil(t, user)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthServiceForTest(userRepo, new(MockTokenStore), new(MockPhotoStore))

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "secret1",
		Role:     model.RoleAdmin,
	})

	assert.ErrorIs(t, err, errors.ErrForbidden)
	assert.Nil(t, user)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	svc := newAuthServiceForTest(userRepo, tokenStore, new(MockPhotoStore))

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &model.User{
		ID:           uuid.New(),
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}
	userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(user, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), user.ID, user.Email, user.Role, auth.RefreshTokenExpiry).
		Return(nil)

	accessToken, refreshToken, loggedIn, err := svc.Login(context.Background(), "asha@example.com", "secret1")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The access token must carry the identity and role the gate relies on.
	claims, err := auth.NewJWTService("test-secret").ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthServiceForTest(userRepo, new(MockTokenStore), new(MockPhotoStore))

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	user := &model.User{ID: uuid.New(), Email: "asha@example.com", PasswordHash: string(hash)}
	userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(user, nil)

	accessToken, refreshToken, loggedIn, err := svc.Login(context.Background(), "asha@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, loggedIn)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthServiceForTest(userRepo, new(MockTokenStore), new(MockPhotoStore))

	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "secret1")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvisionAdmin_CreatesAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthServiceForTest(userRepo, new(MockTokenStore), new(MockPhotoStore))

	userRepo.On("FindByEmail", mock.Anything, "ops@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	admin, err := svc.ProvisionAdmin(context.Background(), "ops", "ops@example.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	userRepo.AssertExpectations(t)
}

func TestProvisionAdmin_RefusesToPromoteExistingNonAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthServiceForTest(userRepo, new(MockTokenStore), new(MockPhotoStore))

	existing := &model.User{ID: uuid.New(), Email: "owner@example.com", Role: model.RoleOwner}
	userRepo.On("FindByEmail", mock.Anything, "owner@example.com").Return(existing, nil)

	admin, err := svc.ProvisionAdmin(context.Background(), "ops", "owner@example.com", "secret1")

	assert.ErrorIs(t, err, errors.ErrForbidden)
	assert.Nil(t, admin)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
