package authController

import (
	"context"
	"strings"
	"testing"
	"time"

	"estatehub/config"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) (AuthControllerInterface, *services.AuthService) {
	sql := testdb.New(t)
	db := database.NewWithSQL(sql)
	cfg := config.Config{JWTSecret: "test-secret-with-enough-length-000", JWTExpiry: time.Hour}
	auth := services.NewAuthService(cfg)
	return New(services.Service{Auth: auth}, repositories.New(db), cfg, db), auth
}

func TestRegisterRequest_Validate(t *testing.T) {
	phone := "  "
	request := &RegisterRequest{
		FirstName: " Lina ",
		LastName:  "Landlord",
		Email:     " Lina@Example.COM ",
		Phone:     &phone,
		Password:  "longenough",
	}
	require.NoError(t, request.Validate())
	assert.Equal(t, "Lina", request.FirstName)
	assert.Equal(t, "lina@example.com", request.Email)
	assert.Nil(t, request.Phone)

	bad := &RegisterRequest{Email: "not-an-email", Password: "short"}
	var validation ValidationErrors
	require.ErrorAs(t, bad.Validate(), &validation)
	for _, field := range []string{"first_name", "last_name", "email", "password"} {
		assert.Contains(t, validation, field)
	}
}

func TestRegisterRequest_PasswordLimits(t *testing.T) {
	tests := []struct {
		name     string
		password string
		message  string
	}{
		{name: "seven characters", password: "1234567", message: "must be at least 8 characters"},
		{name: "exactly 72 bytes", password: strings.Repeat("p", 72)},
		{name: "73 bytes", password: strings.Repeat("p", 73), message: "must be at most 72 bytes"},
		{name: "multibyte over 72 bytes", password: strings.Repeat("ü", 40), message: "must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := &RegisterRequest{FirstName: "Lina", LastName: "Landlord", Email: "lina@example.com", Password: tt.password}
			err := request.Validate()
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}

			var validation ValidationErrors
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, ValidationErrors{"password": tt.message}, validation)
		})
	}
}

func TestRegister_LongPasswordIsValidationError(t *testing.T) {
	controller, _ := newController(t)

	_, err := controller.Register(context.Background(), &RegisterRequest{
		FirstName: "Lina",
		LastName:  "Landlord",
		Email:     "lina@example.com",
		Password:  strings.Repeat("x", 100),
	})

	var validation ValidationErrors
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation, "password")
}

func TestLogin_RequiresCredentials(t *testing.T) {
	controller, _ := newController(t)

	_, err := controller.Login(context.Background(), &LoginRequest{})

	var validation ValidationErrors
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation, "email")
	assert.Contains(t, validation, "password")
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	controller, auth := newController(t)

	registered, err := controller.Register(ctx, &RegisterRequest{
		FirstName: "Lina",
		LastName:  "Landlord",
		Email:     "lina@example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleLandlord, registered.User.Role)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Equal(t, int64(3600), registered.ExpiresIn)
	assert.NotEqual(t, "correct-horse", registered.User.Password)

	userID, err := auth.ParseToken(ctx, registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	_, err = controller.Register(ctx, &RegisterRequest{
		FirstName: "Other",
		LastName:  "Lina",
		Email:     "LINA@example.com",
		Password:  "another-password",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	loggedIn, err := controller.Login(ctx, &LoginRequest{Email: "Lina@Example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = controller.Login(ctx, &LoginRequest{Email: "lina@example.com", Password: "wrong-horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = controller.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
