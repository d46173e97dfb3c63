package catalog

import (
	"errors"
	"fmt"

	"droscher.com/BeerCritic/pkg/model"
)

var ErrNoVersions = errors.New("no versions found")

// ResolveCurrent returns the highest version among the rows named name.
// Ties keep the first row seen.
func ResolveCurrent(name string, versions []model.Beer) (*model.Beer, error) {
	var current *model.Beer

	for index := range versions {
		beer := &versions[index]
		if beer.Name != name {
			continue
		}

		if current == nil || beer.Version > current.Version {
			current = beer
		}
	}

	if current == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoVersions, name)
	}

	return current, nil
}

// CurrentVersions keeps one row per name, the current version, in the order
// names are first seen.
func CurrentVersions(beers []model.Beer) []model.Beer {
	byName := make(map[string][]model.Beer)
	names := make([]string, 0)

	for _, beer := range beers {
		if _, found := byName[beer.Name]; !found {
			names = append(names, beer.Name)
		}

		byName[beer.Name] = append(byName[beer.Name], beer)
	}

	current := make([]model.Beer, 0, len(names))

	for _, name := range names {
		beer, err := ResolveCurrent(name, byName[name])
		if err != nil {
			continue
		}

		current = append(current, *beer)
	}

	return current
}

// NextVersion is the version a new row named like the given versions gets.
func NextVersion(maxVersion int) int {
	if maxVersion < 1 {
		return 1
	}

	return maxVersion + 1
}
