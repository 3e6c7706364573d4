package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", Invalid("username", "Invalid username"), "Invalid username"},
		{"wrapped validation", fmt.Errorf("register: %w", Invalid("email", "Invalid email")), "Invalid email"},
		{"credentials", &InvalidCredentialsError{Reason: "Invalid password"}, "Invalid password"},
		{"duplicate", fmt.Errorf("register: %w", ErrDuplicateEmail), "Email already in use"},
		{"product", ErrProductNotFound, "Product not found"},
		{"unauthenticated", ErrUnauthenticated, "Not logged in"},
		{"persistence", Persistence("save order", errors.New("connection reset")), "Something went wrong"},
		{"unknown", errors.New("boom"), "Something went wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Message(tc.err))
		})
	}
}

func TestPersistenceUnwrap(t *testing.T) {
	cause := errors.New("write timeout")
	err := Persistence("save order", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, IsBusiness(err))
	assert.True(t, IsBusiness(ErrDuplicateEmail))
}
