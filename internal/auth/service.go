package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"mortex-shop/internal/apperr"
	"mortex-shop/internal/models"
	"mortex-shop/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 12
	minPasswordLen = 6
	passwordCost   = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	users  repository.Users
	tokens *Tokens
	now    func() time.Time
}

func NewService(users repository.Users, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens, now: time.Now}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (in RegisterInput) validate() error {
	if n := utf8.RuneCountInString(in.Username); n < minUsernameLen || n > maxUsernameLen {
		return apperr.Invalid("username", "Invalid username")
	}
	if !emailPattern.MatchString(in.Email) {
		return apperr.Invalid("email", "Invalid email")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return apperr.Invalid("password", "Invalid password")
	}
	return nil
}

// Register создаёт пользователя с ролью покупателя.
// Отметку о входе в сессии ставит вызывающий HTTP-слой.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	_, err := s.users.ByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperr.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Persistence("find user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// гонка двух регистраций на один email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.ErrDuplicateEmail
		}
		return nil, apperr.Persistence("create user", err)
	}
	return user, nil
}

// Login проверяет пароль и выдаёт подписанный токен.
// Токен информационный: авторизация дальше идёт по сессии.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", &apperr.InvalidCredentialsError{Reason: "Invalid email"}
		}
		return nil, "", apperr.Persistence("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", &apperr.InvalidCredentialsError{Reason: "Invalid password"}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
