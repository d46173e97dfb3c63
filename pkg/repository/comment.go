package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/BeerCritic/pkg/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID uint) error
	DeleteCommentsForBeer(ctx context.Context, beerID uint) error
	DeleteCommentsForUser(ctx context.Context, userID uint) error
	GetCommentByID(ctx context.Context, commentID uint) (*model.Comment, error)
	GetCommentsForBeer(ctx context.Context, beerID uint) ([]model.Comment, error)
}

func (r *Repository) AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if result := r.DB.WithContext(ctx).Omit(clause.Associations).Create(&comment); result.Error != nil {
		return nil, result.Error
	}

	return &comment, nil
}

func (r *Repository) GetCommentByID(ctx context.Context, commentID uint) (*model.Comment, error) {
	var comment model.Comment

	result := r.DB.WithContext(ctx).First(&comment, commentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}

		return nil, result.Error
	}

	return &comment, nil
}

func (r *Repository) GetCommentsForBeer(ctx context.Context, beerID uint) ([]model.Comment, error) {
	var comments []model.Comment

	result := r.DB.WithContext(ctx).
		Joins("User").
		Where("comments.beer_id = ?", beerID).
		Order("comments.created_at asc").
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

func (r *Repository) DeleteComment(ctx context.Context, commentID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Comment{}, commentID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (r *Repository) DeleteCommentsForBeer(ctx context.Context, beerID uint) error {
	return r.DB.WithContext(ctx).Where("beer_id = ?", beerID).Delete(&model.Comment{}).Error
}

func (r *Repository) DeleteCommentsForUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Comment{}).Error
}
