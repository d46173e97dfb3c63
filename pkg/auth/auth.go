package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	connect_go "github.com/bufbuild/connect-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/repository"
)

const sessionUserIDKey = "auth:user:id"

var (
	errNoAuthorization  = errors.New("authorization header not found")
	errBadAuthorization = errors.New("authorization format must be Bearer {token}")
)

type userLookup interface {
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
	GetUserByUUID(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// Manager resolves the caller of a request, from the session cookie or from
// a bearer token, and gates handlers on it.
type Manager struct {
	tokens   *Tokens
	sessions *scs.SessionManager
	users    userLookup
	logger   *zap.Logger
}

func NewAuthManager(tokens *Tokens, sessions *scs.SessionManager, users userLookup, logger *zap.Logger) *Manager {
	return &Manager{tokens: tokens, sessions: sessions, users: users, logger: logger}
}

// StartSession binds user to the current session, renewing its token.
func (a *Manager) StartSession(ctx context.Context, user *model.User) error {
	if err := a.sessions.RenewToken(ctx); err != nil {
		return err
	}

	a.sessions.Put(ctx, sessionUserIDKey, int(user.ID))

	return nil
}

func (a *Manager) EndSession(ctx context.Context) error {
	return a.sessions.Destroy(ctx)
}

// LoadUser puts the authenticated user, if any, in the request context. An
// invalid bearer token is rejected; a missing one is not.
func (a *Manager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.userFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)

			return
		}

		if user != nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, ErrUnauthenticated)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		err := Authorize(user)
		switch {
		case errors.Is(err, ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, err)
		case errors.Is(err, ErrForbidden):
			a.logger.Warn("admin route refused", zap.String("path", r.URL.Path), zap.Uint("user_id", user.ID))
			writeError(w, http.StatusForbidden, err)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// ConnectAuthInterceptor only accepts bearer tokens.
func (a *Manager) ConnectAuthInterceptor() connect_go.UnaryInterceptorFunc {
	return func(next connect_go.UnaryFunc) connect_go.UnaryFunc {
		return func(ctx context.Context, req connect_go.AnyRequest) (connect_go.AnyResponse, error) {
			accessToken, err := extractTokenFromHeader(req.Header())
			if err != nil {
				return nil, connect_go.NewError(connect_go.CodeUnauthenticated, err)
			}

			user, err := a.userFromToken(ctx, accessToken)
			if err != nil {
				return nil, connect_go.NewError(connect_go.CodeUnauthenticated, err)
			}

			return next(WithUser(ctx, user), req)
		}
	}
}

func (a *Manager) userFromRequest(r *http.Request) (*model.User, error) {
	accessToken, err := extractTokenFromHeader(r.Header)
	if err == nil {
		return a.userFromToken(r.Context(), accessToken)
	}

	if !errors.Is(err, errNoAuthorization) {
		return nil, err
	}

	userID := a.sessions.GetInt(r.Context(), sessionUserIDKey)
	if userID <= 0 {
		return nil, nil //nolint:nilnil // anonymous caller
	}

	user, err := a.users.GetUserByID(r.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			a.sessions.Remove(r.Context(), sessionUserIDKey)

			return nil, nil //nolint:nilnil // account deleted since login
		}

		a.logger.Error("error loading session user", zap.Int("user_id", userID), zap.Error(err))

		return nil, err
	}

	return user, nil
}

func (a *Manager) userFromToken(ctx context.Context, accessToken string) (*model.User, error) {
	userID, fp, err := a.tokens.ParseAccessToken(accessToken)
	if err != nil {
		a.logger.Error("error parsing token", zap.Error(err))

		return nil, err
	}

	user, err := a.users.GetUserByUUID(ctx, userID)
	if err != nil {
		a.logger.Error("error authenticating user", zap.Stringer("user_uuid", userID), zap.Error(err))

		return nil, ErrInvalidToken
	}

	if !MatchesFingerprint(user, fp) {
		a.logger.Warn("token issued before password change", zap.Uint("user_id", user.ID))

		return nil, fmt.Errorf("%w: password changed", ErrInvalidToken)
	}

	return user, nil
}

func extractTokenFromHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if len(authorization) == 0 {
		return "", errNoAuthorization
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found {
		return "", errBadAuthorization
	}

	return token, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
