package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/BeerCritic/pkg/model"
)

var (
	ErrBeerNotFound = errors.New("beer not found")
	ErrDuplicate    = errors.New("record already exists")
)

type BeerRepository interface {
	AddBeer(ctx context.Context, beer model.Beer) (*model.Beer, error)
	DeleteBeer(ctx context.Context, beerID uint) error
	FindBeers(ctx context.Context, filter BeerFilter) ([]model.Beer, error)
	GetBeerByID(ctx context.Context, beerID uint) (*model.Beer, error)
	GetBeerVersions(ctx context.Context, name string) ([]model.Beer, error)
	GetMaxBeerVersion(ctx context.Context, name string) (int, error)
	UpdateBeer(ctx context.Context, beer *model.Beer) (*model.Beer, error)
}

// BeerFilter narrows FindBeers. Zero values match everything.
type BeerFilter struct {
	NameContains string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

var _ UnitOfWork = (*Repository)(nil)

func (r *Repository) AddBeer(ctx context.Context, beer model.Beer) (*model.Beer, error) {
	result := r.DB.WithContext(ctx).Omit(clause.Associations).Create(&beer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}

		return nil, result.Error
	}

	return &beer, nil
}

func (r *Repository) GetBeerByID(ctx context.Context, beerID uint) (*model.Beer, error) {
	var beer model.Beer

	result := r.DB.WithContext(ctx).First(&beer, beerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBeerNotFound
		}

		return nil, result.Error
	}

	return &beer, nil
}

func (r *Repository) GetBeerVersions(ctx context.Context, name string) ([]model.Beer, error) {
	var beers []model.Beer

	result := r.DB.WithContext(ctx).Where("name = ?", name).Order("version desc").Find(&beers)
	if result.Error != nil {
		return nil, result.Error
	}

	return beers, nil
}

func (r *Repository) GetMaxBeerVersion(ctx context.Context, name string) (int, error) {
	var version int

	row := r.DB.WithContext(ctx).Model(&model.Beer{}).
		Select("coalesce(max(version), 0)").
		Where("name = ?", name).
		Row()
	if err := row.Scan(&version); err != nil {
		return 0, err
	}

	return version, nil
}

func (r *Repository) FindBeers(ctx context.Context, filter BeerFilter) ([]model.Beer, error) {
	var beers []model.Beer

	query := r.DB.WithContext(ctx)

	if filter.NameContains != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.NameContains)) + "%"
		query = query.Where(`lower(name) LIKE ? ESCAPE '\'`, pattern)
	}

	if result := query.Order("name, version desc").Find(&beers); result.Error != nil {
		r.Logger.Error("error finding beers", zap.Any("filter", filter), zap.Error(result.Error))

		return nil, result.Error
	}

	return beers, nil
}

func (r *Repository) UpdateBeer(ctx context.Context, beer *model.Beer) (*model.Beer, error) {
	if result := r.DB.WithContext(ctx).Omit(clause.Associations).Save(beer); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}

		return nil, result.Error
	}

	return beer, nil
}

// DeleteBeer removes the row for good so its (name, version) pair can be reused.
func (r *Repository) DeleteBeer(ctx context.Context, beerID uint) error {
	result := r.DB.WithContext(ctx).Unscoped().Delete(&model.Beer{}, beerID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBeerNotFound
	}

	return nil
}
