package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/BeerCritic/pkg/model"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	AddReview(ctx context.Context, review model.Review) (*model.Review, error)
	DeleteReview(ctx context.Context, reviewID uint) error
	DeleteReviewsForBeer(ctx context.Context, beerID uint) error
	DeleteReviewsForUser(ctx context.Context, userID uint) ([]uint, error)
	GetReviewByID(ctx context.Context, reviewID uint) (*model.Review, error)
	GetReviewsForBeer(ctx context.Context, beerID uint) ([]model.Review, error)
	GetReviewsForUser(ctx context.Context, userID uint) ([]model.Review, error)
	UpdateReview(ctx context.Context, review *model.Review) (*model.Review, error)
}

func (r *Repository) AddReview(ctx context.Context, review model.Review) (*model.Review, error) {
	if result := r.DB.WithContext(ctx).Omit(clause.Associations).Create(&review); result.Error != nil {
		return nil, result.Error
	}

	return &review, nil
}

func (r *Repository) GetReviewByID(ctx context.Context, reviewID uint) (*model.Review, error) {
	var review model.Review

	result := r.DB.WithContext(ctx).Joins("User").First(&review, reviewID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}

		return nil, result.Error
	}

	return &review, nil
}

func (r *Repository) GetReviewsForBeer(ctx context.Context, beerID uint) ([]model.Review, error) {
	var reviews []model.Review

	result := r.DB.WithContext(ctx).
		Joins("User").
		Where("reviews.beer_id = ?", beerID).
		Order("reviews.created_at desc").
		Find(&reviews)
	if result.Error != nil {
		r.Logger.Error("error getting reviews for beer", zap.Uint("beer_id", beerID), zap.Error(result.Error))

		return nil, result.Error
	}

	return reviews, nil
}

func (r *Repository) GetReviewsForUser(ctx context.Context, userID uint) ([]model.Review, error) {
	var reviews []model.Review

	result := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

func (r *Repository) UpdateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	if result := r.DB.WithContext(ctx).Omit(clause.Associations).Save(review); result.Error != nil {
		return nil, result.Error
	}

	return review, nil
}

func (r *Repository) DeleteReview(ctx context.Context, reviewID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Review{}, reviewID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func (r *Repository) DeleteReviewsForBeer(ctx context.Context, beerID uint) error {
	return r.DB.WithContext(ctx).Where("beer_id = ?", beerID).Delete(&model.Review{}).Error
}

// DeleteReviewsForUser returns the distinct IDs of the beers that lost a review.
func (r *Repository) DeleteReviewsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var beerIDs []uint

	result := r.DB.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("beer_id", &beerIDs)
	if result.Error != nil {
		return nil, result.Error
	}

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Review{}).Error; err != nil {
		return nil, err
	}

	return beerIDs, nil
}
