package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	infraRepo "github.com/freshveld/fulfillment-api/internal/infrastructure/repository"
	"github.com/freshveld/fulfillment-api/pkg/apperror"
	"github.com/freshveld/fulfillment-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewUserRepository(db), infraRepo.NewCustomerRepository(db), jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Thandi",
		Email:    "thandi@freshveld.co.za",
		Password: "correct horse battery",
		Role:     enum.UserRoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, user.Password, "correct horse battery")

	out, err := svc.Login(context.Background(), &LoginInput{
		Email:    "thandi@freshveld.co.za",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, user.ID, out.User.ID)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "thandi@freshveld.co.za",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Dup", Email: "dup@freshveld.co.za", Password: "password123", Role: enum.UserRoleDriver,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Name: "Dup Again", Email: "dup@freshveld.co.za", Password: "password123", Role: enum.UserRoleDriver,
	})
	assertAppErrorCode(t, err, http.StatusConflict)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Name: "Bad Role", Email: "badrole@freshveld.co.za", Password: "password123", Role: enum.UserRole("superuser"),
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)

	// Customer accounts need an existing customer record
	_, err = svc.Register(context.Background(), &RegisterInput{
		Name: "No Link", Email: "nolink@freshveld.co.za", Password: "password123", Role: enum.UserRoleCustomer,
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)

	ghost := uuid.New()
	_, err = svc.Register(context.Background(), &RegisterInput{
		Name: "Ghost Link", Email: "ghost@freshveld.co.za", Password: "password123",
		Role: enum.UserRoleCustomer, CustomerID: &ghost,
	})
	assertAppErrorCode(t, err, http.StatusNotFound)
}

func TestRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Sipho", Email: "sipho@freshveld.co.za", Password: "password123", Role: enum.UserRoleDriver,
	})
	require.NoError(t, err)

	out, err := svc.Login(context.Background(), &LoginInput{Email: "sipho@freshveld.co.za", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}
