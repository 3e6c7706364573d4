// Package session хранит признак входа в cookie-сессии и переносит его
// в контекст запроса в виде Identity.
package session

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
)

const (
	keyLoggedIn = "userLoggedIn"
	keyEmail    = "email"
	keyLastSeen = "lastSeen"
)

type Identity struct {
	Email string
}

// Start помечает сессию как вошедшую.
func Start(s sessions.Session, email string, now time.Time) error {
	s.Set(keyLoggedIn, true)
	s.Set(keyEmail, email)
	s.Set(keyLastSeen, now.Unix())
	return s.Save()
}

// Destroy очищает сессию и просит браузер удалить cookie.
func Destroy(s sessions.Session) error {
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

// Resolve читает сессию. Сессия, неактивная дольше maxAge, считается анонимной
// и очищается; активная продлевается.
func Resolve(s sessions.Session, now time.Time, maxAge time.Duration) (Identity, bool, error) {
	loggedIn, _ := s.Get(keyLoggedIn).(bool)
	email, _ := s.Get(keyEmail).(string)
	lastSeen, _ := s.Get(keyLastSeen).(int64)
	if !loggedIn || email == "" {
		return Identity{}, false, nil
	}

	if seen := time.Unix(lastSeen, 0); now.Sub(seen) > maxAge {
		s.Clear()
		return Identity{}, false, s.Save()
	}

	s.Set(keyLastSeen, now.Unix())
	return Identity{Email: email}, true, s.Save()
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
