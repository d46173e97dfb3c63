package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/notify"
	"droscher.com/BeerCritic/pkg/repository"
)

const resetSubject = "Reset your BeerCritic password"

type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,max=80"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type ResetInput struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UserService struct {
	store   repository.UnitOfWork
	tokens  *auth.Tokens
	mailer  notify.Mailer
	baseURL string
	logger  *zap.Logger
}

func NewUserService(store repository.UnitOfWork, tokens *auth.Tokens, mailer notify.Mailer, baseURL string, logger *zap.Logger) *UserService {
	return &UserService{
		store:   store,
		tokens:  tokens,
		mailer:  mailer,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Register creates a reader account. The very first account becomes admin.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var added *model.User

	err = s.store.InTransaction(ctx, func(store repository.Store) error {
		_, err := store.GetUserFromEmail(ctx, input.Email)
		switch {
		case err == nil:
			return ErrEmailTaken
		case !errors.Is(err, repository.ErrUserNotFound):
			return err
		}

		count, err := store.CountUsers(ctx)
		if err != nil {
			return err
		}

		role := model.RoleReader
		if count == 0 {
			role = model.RoleAdmin
		}

		added, err = store.AddUser(ctx, model.User{Email: input.Email, Name: input.Name, PasswordHash: hash, Role: role})
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailTaken
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", added.ID), zap.String("role", string(added.Role)))

	return added, nil
}

// Authenticate does not tell an unknown email from a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := s.store.GetUserFromEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err = auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	return user, nil
}

// IssueToken authenticates the caller and returns a bearer token for API use.
func (s *UserService) IssueToken(ctx context.Context, email string, password string) (string, time.Time, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", time.Time{}, err
	}

	return s.tokens.IssueAccessToken(user)
}

// RequestPasswordReset mails a reset link. Unknown addresses are accepted
// without any mail so the endpoint does not reveal who has an account.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.store.GetUserFromEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Debug("password reset for unknown email")

			return nil
		}

		return err
	}

	token, err := s.tokens.IssueResetToken(user)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/password/reset?token=%s", s.baseURL, url.QueryEscape(token))
	body := fmt.Sprintf("Hello %s,\n\nfollow this link to choose a new password:\n%s\n\nIf you did not ask for it, ignore this mail.\n", user.Name, link)

	if err = s.mailer.Send(ctx, user.Email, resetSubject, body); err != nil {
		s.logger.Error("error sending reset mail", zap.Uint("user_id", user.ID), zap.Error(err))

		return err
	}

	return nil
}

// ResetPassword sets a new password. The token is void once the password
// it was issued against has changed.
func (s *UserService) ResetPassword(ctx context.Context, input ResetInput) error {
	if err := validate.Struct(input); err != nil {
		return validationError(err)
	}

	email, fp, err := s.tokens.ParseResetToken(input.Token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return err
	}

	return s.store.InTransaction(ctx, func(store repository.Store) error {
		user, err := store.GetUserFromEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return auth.ErrInvalidToken
			}

			return err
		}

		if !auth.MatchesFingerprint(user, fp) {
			return fmt.Errorf("%w: token already used", auth.ErrInvalidToken)
		}

		user.PasswordHash = hash
		_, err = store.UpdateUser(ctx, user)

		return err
	})
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.GetUsers(ctx)
}

func (s *UserService) SetRole(ctx context.Context, actor *model.User, userID uint, role model.Role) (*model.User, error) {
	if actor != nil && actor.ID == userID {
		return nil, fmt.Errorf("%w: cannot change your own role", ErrInvalidInput)
	}

	var updated *model.User

	err := s.store.InTransaction(ctx, func(store repository.Store) error {
		user, err := store.GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err)
		}

		user.Role = role
		updated, err = store.UpdateUser(ctx, user)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user role changed", zap.Uint("user_id", userID), zap.String("role", string(role)))

	return updated, nil
}

// SetRoleByEmail is used by the command line, where there is no actor.
func (s *UserService) SetRoleByEmail(ctx context.Context, email string, role model.Role) (*model.User, error) {
	user, err := s.store.GetUserFromEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, notFound(err)
	}

	return s.SetRole(ctx, nil, user.ID, role)
}

// DeleteUser removes an account with its reviews and comments and refreshes
// the aggregates of every beer it had reviewed.
func (s *UserService) DeleteUser(ctx context.Context, actor *model.User, userID uint) error {
	if actor != nil && actor.ID == userID {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}

	err := s.store.InTransaction(ctx, func(store repository.Store) error {
		if _, err := store.GetUserByID(ctx, userID); err != nil {
			return notFound(err)
		}

		beerIDs, err := store.DeleteReviewsForUser(ctx, userID)
		if err != nil {
			return err
		}

		if err = store.DeleteCommentsForUser(ctx, userID); err != nil {
			return err
		}

		if err = store.DeleteUser(ctx, userID); err != nil {
			return notFound(err)
		}

		for _, beerID := range beerIDs {
			if _, err = recomputeBeer(ctx, store, beerID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Uint("user_id", userID))

	return nil
}
