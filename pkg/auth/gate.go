package auth

import (
	"context"
	"errors"

	"droscher.com/BeerCritic/pkg/model"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin role required")
)

type UserKey struct{}

func IsAdmin(user *model.User) bool {
	return user != nil && user.Role == model.RoleAdmin
}

// Authorize is the admin gate: ErrUnauthenticated without a user,
// ErrForbidden for a non-admin, nil otherwise.
func Authorize(user *model.User) error {
	if user == nil {
		return ErrUnauthenticated
	}

	if !IsAdmin(user) {
		return ErrForbidden
	}

	return nil
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey{}).(*model.User)

	return user, ok && user != nil
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey{}, user)
}
