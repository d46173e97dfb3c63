package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/repository"
)

type CommentInput struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type CommentService struct {
	store  repository.UnitOfWork
	logger *zap.Logger
}

func NewCommentService(store repository.UnitOfWork, logger *zap.Logger) *CommentService {
	return &CommentService{store: store, logger: logger}
}

func (s *CommentService) AddComment(ctx context.Context, user *model.User, beerID uint, input CommentInput) (*model.Comment, error) {
	input.Text = strings.TrimSpace(input.Text)

	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	var added *model.Comment

	err := s.store.InTransaction(ctx, func(store repository.Store) error {
		if _, err := store.GetBeerByID(ctx, beerID); err != nil {
			return notFound(err)
		}

		var err error

		added, err = store.AddComment(ctx, model.Comment{BeerID: beerID, UserID: user.ID, Text: input.Text})

		return err
	})
	if err != nil {
		return nil, err
	}

	added.User = *user

	return added, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, user *model.User, commentID uint) error {
	return s.store.InTransaction(ctx, func(store repository.Store) error {
		comment, err := store.GetCommentByID(ctx, commentID)
		if err != nil {
			return notFound(err)
		}

		if !canModify(user, comment.UserID) {
			return fmt.Errorf("%w: comment %d belongs to another user", ErrForbidden, commentID)
		}

		return notFound(store.DeleteComment(ctx, commentID))
	})
}

func (s *CommentService) ListComments(ctx context.Context, beerID uint) ([]model.Comment, error) {
	if _, err := s.store.GetBeerByID(ctx, beerID); err != nil {
		return nil, notFound(err)
	}

	return s.store.GetCommentsForBeer(ctx, beerID)
}
