package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"droscher.com/BeerCritic/pkg/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	AddUser(ctx context.Context, user model.User) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	DeleteUser(ctx context.Context, userID uint) error
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
	GetUserByUUID(ctx context.Context, uuid uuid.UUID) (*model.User, error)
	GetUserFromEmail(ctx context.Context, email string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
}

func (r *Repository) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		return nil, notFound(result.Error, ErrUserNotFound)
	}

	return &user, nil
}

func (r *Repository) GetUserByUUID(ctx context.Context, uuid uuid.UUID) (*model.User, error) {
	var user model.User

	result := r.DB.WithContext(ctx).Where("uuid = ?", uuid).First(&user)
	if result.Error != nil {
		return nil, notFound(result.Error, ErrUserNotFound)
	}

	return &user, nil
}

func (r *Repository) GetUserFromEmail(ctx context.Context, email string) (*model.User, error) {
	var user *model.User

	result := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user)
	if result.Error != nil {
		return nil, notFound(result.Error, ErrUserNotFound)
	}

	return user, nil
}

func (r *Repository) GetUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User

	if result := r.DB.WithContext(ctx).Order("email").Find(&users); result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	if result := r.DB.WithContext(ctx).Model(&model.User{}).Count(&count); result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (r *Repository) AddUser(ctx context.Context, user model.User) (*model.User, error) {
	if user.UUID == uuid.Nil {
		user.UUID = uuid.New()
	}

	user.Email = strings.ToLower(user.Email)

	if result := r.DB.WithContext(ctx).Create(&user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}

		return nil, result.Error
	}

	return &user, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if result := r.DB.WithContext(ctx).Save(user); result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

// DeleteUser removes the row for good so the email can register again.
func (r *Repository) DeleteUser(ctx context.Context, userID uint) error {
	result := r.DB.WithContext(ctx).Unscoped().Delete(&model.User{}, userID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}

	return err
}
