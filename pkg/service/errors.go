// Package service implements the request-level operations of the catalog.
// Every mutation runs in a single transaction.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("not allowed")
	ErrInvalidInput       = errors.New("bad request")
	ErrVersionExists      = errors.New("beer version already exists")
	ErrEmailTaken         = errors.New("an account with this email already exists, please log in")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed %s", strings.ToLower(fieldError.Field()), fieldError.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, ", "))
}

// notFound turns the repository's not-found sentinels into ErrNotFound.
func notFound(err error) error {
	switch {
	case errors.Is(err, repository.ErrBeerNotFound),
		errors.Is(err, repository.ErrReviewNotFound),
		errors.Is(err, repository.ErrCommentNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}

func canModify(user *model.User, ownerID uint) bool {
	return user != nil && (user.ID == ownerID || auth.IsAdmin(user))
}
