package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrProductNotFound = errors.New("product not found")
	ErrNotFound        = errors.New("page not found")
	ErrUnauthenticated = errors.New("not logged in")
)

// ValidationError: некорректный ввод.
// Message уже пригоден для показа пользователю.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Reason: "Invalid email" или "Invalid password".
type InvalidCredentialsError struct {
	Reason string
}

func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials: " + e.Reason
}

// PersistenceError оборачивает сбой хранилища.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// Message возвращает текст ошибки для JSON-ответа API.
// Ошибки, не относящиеся к бизнес-логике, скрываются за общим сообщением.
func Message(err error) string {
	var ve *ValidationError
	var ce *InvalidCredentialsError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ce):
		return ce.Reason
	case errors.Is(err, ErrDuplicateEmail):
		return "Email already in use"
	case errors.Is(err, ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, ErrUnauthenticated):
		return "Not logged in"
	default:
		return "Something went wrong"
	}
}

// IsBusiness сообщает, является ли ошибка ожидаемой (ошибкой клиента), а не сбоем инфраструктуры.
func IsBusiness(err error) bool {
	var ve *ValidationError
	var ce *InvalidCredentialsError
	return errors.As(err, &ve) ||
		errors.As(err, &ce) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrUnauthenticated)
}
