package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mortex-shop/internal/apperr"
	"mortex-shop/internal/auth"
	"mortex-shop/internal/models"
	"mortex-shop/internal/testhelpers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()
	stores := testhelpers.NewStores(t)
	return auth.NewService(stores.Users, auth.NewTokens("test-secret", time.Hour))
}

func parseToken(secret, raw string) (*auth.Claims, error) {
	claims := &auth.Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return claims, err
}

func validInput() auth.RegisterInput {
	return auth.RegisterInput{Username: "anna", Email: "anna@example.com", Password: "secret1"}
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, field, ve.Field)
}

func TestRegister_UsernameLength(t *testing.T) {
	svc := newService(t)

	for _, name := range []string{"", "ab", strings.Repeat("x", 13), strings.Repeat("y", 40)} {
		in := validInput()
		in.Username = name
		_, err := svc.Register(context.Background(), in)
		requireValidation(t, err, "username")
		assert.Equal(t, "Invalid username", apperr.Message(err))
	}

	for _, name := range []string{"abc", strings.Repeat("z", 12), "Даша"} {
		in := validInput()
		in.Username = name
		in.Email = name + "@example.com"
		_, err := svc.Register(context.Background(), in)
		assert.NoError(t, err, name)
	}
}

func TestRegister_Email(t *testing.T) {
	svc := newService(t)

	for _, email := range []string{"", "anna", "anna@", "anna@example", "@example.com", "an na@example.com"} {
		in := validInput()
		in.Email = email
		_, err := svc.Register(context.Background(), in)
		requireValidation(t, err, "email")
		assert.Equal(t, "Invalid email", apperr.Message(err))
	}
}

func TestRegister_PasswordLength(t *testing.T) {
	svc := newService(t)

	for _, pw := range []string{"", "12345"} {
		in := validInput()
		in.Password = pw
		_, err := svc.Register(context.Background(), in)
		requireValidation(t, err, "password")
		assert.Equal(t, "Invalid password", apperr.Message(err))
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	svc := newService(t)

	user, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", user.PasswordHash)
	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, user.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Username = "other"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	stores := testhelpers.NewStores(t)
	tokens := auth.NewTokens("test-secret", time.Hour)
	svc := auth.NewService(stores.Users, tokens)

	registered, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), "anna@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)

		claims, err := parseToken("test-secret", token)
		require.NoError(t, err)
		require.NotNil(t, claims.ExpiresAt)
		require.NotNil(t, claims.IssuedAt)
		assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
		assert.Equal(t, registered.ID, claims.UserID)
		assert.Equal(t, "anna@example.com", claims.Email)
		assert.Equal(t, "anna", claims.Username)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, token, err := svc.Login(context.Background(), "ghost@example.com", "secret1")
		var ce *apperr.InvalidCredentialsError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "Invalid email", ce.Reason)
		assert.Empty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, token, err := svc.Login(context.Background(), "anna@example.com", "wrong-password")
		var ce *apperr.InvalidCredentialsError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "Invalid password", ce.Reason)
		assert.Empty(t, token)
	})
}

func TestTokens_RejectForeignSecret(t *testing.T) {
	issued, err := auth.NewTokens("secret-a", time.Hour).Issue(&models.User{ID: "1", Email: "a@b.cd", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = parseToken("secret-b", issued)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) error { return errors.New("db down") }
func (brokenUsers) ByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.New("db down")
}

func TestStoreFailuresArePersistenceErrors(t *testing.T) {
	svc := auth.NewService(brokenUsers{}, auth.NewTokens("s", time.Hour))

	_, err := svc.Register(context.Background(), validInput())
	var pe *apperr.PersistenceError
	assert.ErrorAs(t, err, &pe)

	_, _, err = svc.Login(context.Background(), "anna@example.com", "secret1")
	assert.ErrorAs(t, err, &pe)
}
