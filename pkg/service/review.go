package service

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/catalog"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/repository"
)

// ReviewInput carries the ratings of a review keyed by field name. A null
// or absent rating means the reviewer left that field empty.
type ReviewInput struct {
	Ratings map[string]*int `json:"ratings"`
	Notes   string          `json:"notes" validate:"max=5000"`
}

type ReviewService struct {
	store  repository.UnitOfWork
	logger *zap.Logger
}

func NewReviewService(store repository.UnitOfWork, logger *zap.Logger) *ReviewService {
	return &ReviewService{store: store, logger: logger}
}

func (s *ReviewService) AddReview(ctx context.Context, user *model.User, beerID uint, input ReviewInput) (*model.Review, error) {
	review := model.Review{BeerID: beerID, UserID: user.ID}
	if err := applyReviewInput(&review, input); err != nil {
		return nil, err
	}

	var added *model.Review

	err := s.store.InTransaction(ctx, func(store repository.Store) error {
		if _, err := store.GetBeerByID(ctx, beerID); err != nil {
			return notFound(err)
		}

		var err error

		added, err = store.AddReview(ctx, review)
		if err != nil {
			return err
		}

		_, err = recomputeBeer(ctx, store, beerID)

		return err
	})
	if err != nil {
		return nil, err
	}

	added.User = *user

	s.logger.Info("review added", zap.Uint("review_id", added.ID), zap.Uint("beer_id", beerID), zap.Uint("user_id", user.ID))

	return added, nil
}

// UpdateReview replaces every rating and the notes of a review. Only the
// author or an admin may change it.
func (s *ReviewService) UpdateReview(ctx context.Context, user *model.User, reviewID uint, input ReviewInput) (*model.Review, error) {
	var updated *model.Review

	err := s.store.InTransaction(ctx, func(store repository.Store) error {
		review, err := store.GetReviewByID(ctx, reviewID)
		if err != nil {
			return notFound(err)
		}

		if !canModify(user, review.UserID) {
			return fmt.Errorf("%w: review %d belongs to another user", ErrForbidden, reviewID)
		}

		review.SensoryScores = model.SensoryScores{}
		review.Score = nil

		if err = applyReviewInput(review, input); err != nil {
			return err
		}

		updated, err = store.UpdateReview(ctx, review)
		if err != nil {
			return err
		}

		_, err = recomputeBeer(ctx, store, review.BeerID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, user *model.User, reviewID uint) error {
	return s.store.InTransaction(ctx, func(store repository.Store) error {
		review, err := store.GetReviewByID(ctx, reviewID)
		if err != nil {
			return notFound(err)
		}

		if !canModify(user, review.UserID) {
			return fmt.Errorf("%w: review %d belongs to another user", ErrForbidden, reviewID)
		}

		if err = store.DeleteReview(ctx, reviewID); err != nil {
			return notFound(err)
		}

		_, err = recomputeBeer(ctx, store, review.BeerID)

		return err
	})
}

func (s *ReviewService) ListReviews(ctx context.Context, beerID uint) ([]model.Review, error) {
	if _, err := s.store.GetBeerByID(ctx, beerID); err != nil {
		return nil, notFound(err)
	}

	return s.store.GetReviewsForBeer(ctx, beerID)
}

func (s *ReviewService) ListUserReviews(ctx context.Context, userID uint) ([]model.Review, error) {
	return s.store.GetReviewsForUser(ctx, userID)
}

// applyReviewInput copies the ratings onto review, reporting every unknown
// field and every out of range value at once.
func applyReviewInput(review *model.Review, input ReviewInput) error {
	if err := validate.Struct(input); err != nil {
		return validationError(err)
	}

	var errs error

	for name, value := range input.Ratings {
		field, found := model.LookupSensoryField(name)
		if !found {
			errs = multierr.Append(errs, fmt.Errorf("unknown field %q", name))

			continue
		}

		if value != nil && (*value < model.MinSensoryValue || *value > model.MaxSensoryValue) {
			errs = multierr.Append(errs, fmt.Errorf("%s must be between %d and %d", name, model.MinSensoryValue, model.MaxSensoryValue))

			continue
		}

		*field.Review(review) = value
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}

	review.Notes = input.Notes

	return nil
}

// recomputeBeer rebuilds the aggregates of a beer from its live reviews.
func recomputeBeer(ctx context.Context, store repository.Store, beerID uint) (*model.Beer, error) {
	beer, err := store.GetBeerByID(ctx, beerID)
	if err != nil {
		return nil, notFound(err)
	}

	reviews, err := store.GetReviewsForBeer(ctx, beerID)
	if err != nil {
		return nil, err
	}

	catalog.Recompute(beer, reviews)

	return store.UpdateBeer(ctx, beer)
}
