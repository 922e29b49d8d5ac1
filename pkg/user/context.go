package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

// UserKey carries the authenticated account through request contexts.
const UserKey contextKey = "user"

var ErrNoUser = errors.New("user not found")

// WithUser returns a child context carrying the given account. The request
// middleware attaches it once; services read it back with CurrentUser or
// CurrentId.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

// CurrentUser returns the account attached to the context, settings included.
// ErrNoUser when no account was attached.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("no account attached to context")
		return User{}, ErrNoUser
	}
	return u, nil
}

// CurrentId is a shorthand for callers that only need the owning account id.
func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}
