package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/catalog"
	"droscher.com/BeerCritic/pkg/integrations"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/repository"
)

type linkImageGenerator interface {
	Generate(beerID uint) ([]byte, error)
}

type BeerInput struct {
	Name        string `json:"name"        validate:"required,max=120"`
	Type        string `json:"type"        validate:"required,max=80"`
	Version     int    `json:"version"     validate:"gte=0"`
	Description string `json:"description" validate:"max=10000"`
}

type BeerQuery struct {
	Type   string
	Search string
	Sort   string
}

type BeerDetails struct {
	Beer     model.Beer
	Current  bool
	Versions []model.Beer
	Reviews  []model.Review
	Comments []model.Comment
}

type BeerService struct {
	store       repository.UnitOfWork
	images      linkImageGenerator
	lookups     []integrations.Integration
	defaultSort catalog.SortKey
	logger      *zap.Logger
}

func NewBeerService(store repository.UnitOfWork, images linkImageGenerator, lookups []integrations.Integration, defaultSort string, logger *zap.Logger) *BeerService {
	sortKey, ok := catalog.ParseSortKey(defaultSort, catalog.DefaultSortKey)
	if !ok {
		logger.Warn("unknown default sort, using fallback", zap.String("sort", defaultSort), zap.String("fallback", string(sortKey)))
	}

	return &BeerService{store: store, images: images, lookups: lookups, defaultSort: sortKey, logger: logger}
}

// AddBeer stores a new beer version. A zero Version means the next version
// for that name.
func (b *BeerService) AddBeer(ctx context.Context, input BeerInput) (*model.Beer, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.TrimSpace(input.Type)

	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	var added *model.Beer

	err := b.store.InTransaction(ctx, func(store repository.Store) error {
		maxVersion, err := store.GetMaxBeerVersion(ctx, input.Name)
		if err != nil {
			return err
		}

		version := input.Version
		if version == 0 {
			version = catalog.NextVersion(maxVersion)
		}

		added, err = store.AddBeer(ctx, model.Beer{
			Name:        input.Name,
			Type:        input.Type,
			Version:     version,
			Description: input.Description,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("%w: %s version %d", ErrVersionExists, input.Name, version)
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("beer added", zap.Uint("beer_id", added.ID), zap.String("name", added.Name), zap.Int("version", added.Version))

	return added, nil
}

// UpdateBeer edits the descriptive fields of one version. The version
// number and the aggregates are not editable.
func (b *BeerService) UpdateBeer(ctx context.Context, beerID uint, input BeerInput) (*model.Beer, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.TrimSpace(input.Type)

	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	var updated *model.Beer

	err := b.store.InTransaction(ctx, func(store repository.Store) error {
		beer, err := store.GetBeerByID(ctx, beerID)
		if err != nil {
			return notFound(err)
		}

		beer.Name = input.Name
		beer.Type = input.Type
		beer.Description = input.Description

		updated, err = store.UpdateBeer(ctx, beer)
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("%w: %s version %d", ErrVersionExists, beer.Name, beer.Version)
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteBeer removes one version together with its reviews and comments.
func (b *BeerService) DeleteBeer(ctx context.Context, beerID uint) error {
	err := b.store.InTransaction(ctx, func(store repository.Store) error {
		if _, err := store.GetBeerByID(ctx, beerID); err != nil {
			return notFound(err)
		}

		if err := store.DeleteReviewsForBeer(ctx, beerID); err != nil {
			return err
		}

		if err := store.DeleteCommentsForBeer(ctx, beerID); err != nil {
			return err
		}

		return notFound(store.DeleteBeer(ctx, beerID))
	})
	if err != nil {
		return err
	}

	b.logger.Info("beer deleted", zap.Uint("beer_id", beerID))

	return nil
}

func (b *BeerService) GetBeer(ctx context.Context, beerID uint) (*BeerDetails, error) {
	beer, err := b.store.GetBeerByID(ctx, beerID)
	if err != nil {
		return nil, notFound(err)
	}

	versions, err := b.store.GetBeerVersions(ctx, beer.Name)
	if err != nil {
		return nil, err
	}

	reviews, err := b.store.GetReviewsForBeer(ctx, beerID)
	if err != nil {
		return nil, err
	}

	comments, err := b.store.GetCommentsForBeer(ctx, beerID)
	if err != nil {
		return nil, err
	}

	details := &BeerDetails{Beer: *beer, Versions: versions, Reviews: reviews, Comments: comments}

	if current, err := catalog.ResolveCurrent(beer.Name, versions); err == nil {
		details.Current = current.ID == beer.ID
	}

	return details, nil
}

// ListCurrent returns the current version of every beer matching query,
// sorted by query.Sort, or the default sort when that key is unknown.
func (b *BeerService) ListCurrent(ctx context.Context, query BeerQuery) ([]model.Beer, catalog.SortKey, error) {
	sortKey, ok := catalog.ParseSortKey(query.Sort, b.defaultSort)
	if !ok && query.Sort != "" {
		b.logger.Debug("unknown sort key, using default", zap.String("sort", query.Sort), zap.String("default", string(sortKey)))
	}

	beers, err := b.store.FindBeers(ctx, repository.BeerFilter{NameContains: query.Search})
	if err != nil {
		return nil, "", err
	}

	// the type filter applies to the current version only
	current := catalog.CurrentVersions(beers)
	if query.Type != "" {
		current = slices.DeleteFunc(current, func(beer model.Beer) bool {
			return !strings.EqualFold(beer.Type, strings.TrimSpace(query.Type))
		})
	}

	catalog.SortBeers(current, sortKey)

	return current, sortKey, nil
}

func (b *BeerService) LinkImage(ctx context.Context, beerID uint) ([]byte, error) {
	if _, err := b.store.GetBeerByID(ctx, beerID); err != nil {
		return nil, notFound(err)
	}

	return b.images.Generate(beerID)
}

// Lookup searches the configured integrations for beers named like query.
// Integration errors are logged; whatever an integration found is kept.
func (b *BeerService) Lookup(_ context.Context, query string) ([]model.BeerCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}

	candidates := make([]model.BeerCandidate, 0)

	for _, integration := range b.lookups {
		found, err := integration.FindBeer(query)
		if err != nil {
			b.logger.Error("failed beer search", zap.String("query", query), zap.Int("found", len(found)), zap.Error(err))
		}

		candidates = append(candidates, found...)
	}

	return candidates, nil
}
