package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/server/api"
	"droscher.com/BeerCritic/pkg/service"
)

type UserServer struct {
	users   *service.UserService
	reviews *service.ReviewService
	auth    *auth.Manager
	logger  *zap.Logger
}

func NewUserServer(users *service.UserService, reviews *service.ReviewService, authManager *auth.Manager, logger *zap.Logger) *UserServer {
	return &UserServer{users: users, reviews: reviews, auth: authManager, logger: logger}
}

// Register creates the account and logs it in.
func (u *UserServer) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decode(w, r, &input); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	user, err := u.users.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	if err = u.auth.StartSession(r.Context(), user); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	writeJSON(w, http.StatusCreated, api.UserFromModel(*user))
}

func (u *UserServer) Login(w http.ResponseWriter, r *http.Request) {
	var credentials api.Credentials
	if err := decode(w, r, &credentials); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	user, err := u.users.Authenticate(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	if err = u.auth.StartSession(r.Context(), user); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.UserFromModel(*user))
}

func (u *UserServer) Logout(w http.ResponseWriter, r *http.Request) {
	if err := u.auth.EndSession(r.Context()); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Token trades credentials for a bearer token, for clients without cookies.
func (u *UserServer) Token(w http.ResponseWriter, r *http.Request) {
	var credentials api.Credentials
	if err := decode(w, r, &credentials); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	token, expires, err := u.users.IssueToken(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.Token{Token: token, ExpiresAt: expires})
}

// ForgotPassword always answers 202 so callers cannot probe for accounts.
func (u *UserServer) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var input api.PasswordForgotten
	if err := decode(w, r, &input); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	if err := u.users.RequestPasswordReset(r.Context(), input.Email); err != nil {
		u.logger.Error("error requesting password reset", zap.Error(err))
	}

	w.WriteHeader(http.StatusAccepted)
}

func (u *UserServer) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input service.ResetInput
	if err := decode(w, r, &input); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	if err := u.users.ResetPassword(r.Context(), input); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (u *UserServer) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	writeJSON(w, http.StatusOK, api.UserFromModel(*user))
}

func (u *UserServer) MyReviews(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	reviews, err := u.reviews.ListUserReviews(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.ReviewsFromModel(reviews))
}

func (u *UserServer) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.UsersFromModel(users))
}

func (u *UserServer) SetRole(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.UserFromContext(r.Context())

	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	var change api.RoleChange
	if err = decode(w, r, &change); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	role, ok := model.ParseRole(change.Role)
	if !ok {
		writeError(w, r, u.logger, fmt.Errorf("%w: unknown role %q", service.ErrInvalidInput, change.Role))

		return
	}

	user, err := u.users.SetRole(r.Context(), actor, userID, role)
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.UserFromModel(*user))
}

func (u *UserServer) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.UserFromContext(r.Context())

	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	if err = u.users.DeleteUser(r.Context(), actor, userID); err != nil {
		writeError(w, r, u.logger, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
