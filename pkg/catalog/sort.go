package catalog

import (
	"cmp"
	"slices"
	"strings"

	"droscher.com/BeerCritic/pkg/model"
)

type SortKey string

const (
	SortByScore   SortKey = "score"
	SortByDate    SortKey = "date"
	SortByReviews SortKey = "reviews"
	SortByName    SortKey = "name"
	SortByVersion SortKey = "version"

	DefaultSortKey = SortByScore
)

// ParseSortKey accepts the fixed keys and any sensory field name. Anything
// else yields fallback, or DefaultSortKey when fallback is itself unknown,
// and ok is false.
func ParseSortKey(value string, fallback SortKey) (SortKey, bool) {
	if key, ok := lookupSortKey(value); ok {
		return key, true
	}

	if _, ok := lookupSortKey(string(fallback)); !ok {
		fallback = DefaultSortKey
	}

	return fallback, false
}

func lookupSortKey(value string) (SortKey, bool) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))

	switch key {
	case SortByScore, SortByDate, SortByReviews, SortByName, SortByVersion:
		return key, true
	}

	if _, found := model.LookupSensoryField(string(key)); found {
		return key, true
	}

	return "", false
}

// SortBeers orders beers in place: by name ascending for SortByName, by the
// key descending otherwise. Ties fall back to name, then newest version.
func SortBeers(beers []model.Beer, key SortKey) {
	primary := comparator(key)

	slices.SortStableFunc(beers, func(a, b model.Beer) int {
		if result := primary(a, b); result != 0 {
			return result
		}

		if result := strings.Compare(a.Name, b.Name); result != 0 {
			return result
		}

		return cmp.Compare(b.Version, a.Version)
	})
}

func comparator(key SortKey) func(a, b model.Beer) int {
	switch key {
	case SortByName:
		return func(_, _ model.Beer) int { return 0 }
	case SortByDate:
		return func(a, b model.Beer) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortByReviews:
		return func(a, b model.Beer) int { return cmp.Compare(b.ReviewCount, a.ReviewCount) }
	case SortByVersion:
		return func(a, b model.Beer) int { return cmp.Compare(b.Version, a.Version) }
	}

	field, found := model.LookupSensoryField(string(key))
	if !found {
		field = model.ScoreField
	}

	return func(a, b model.Beer) int {
		return cmp.Compare(*field.Aggregate(&b), *field.Aggregate(&a))
	}
}
