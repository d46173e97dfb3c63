// Package catalog holds the beer catalog rules that do not touch storage:
// review aggregation, version resolution and listing order.
package catalog

import (
	"math"

	"droscher.com/BeerCritic/pkg/model"
)

// Recompute sets every aggregate on beer to the mean of the matching review
// field. Unrated fields are left out of the mean; a field nobody rated is 0.
// The overall score is rounded to one decimal, half away from zero.
func Recompute(beer *model.Beer, reviews []model.Review) {
	for _, field := range model.SensoryFields {
		*field.Aggregate(beer) = mean(reviews, field)
	}

	*model.ScoreField.Aggregate(beer) = RoundScore(mean(reviews, model.ScoreField))
	beer.ReviewCount = len(reviews)
}

// RoundScore rounds score to one decimal place, half away from zero.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10 //nolint:mnd // one decimal place
}

func mean(reviews []model.Review, field model.SensoryField) float64 {
	var (
		sum   int
		count int
	)

	for index := range reviews {
		value := *field.Review(&reviews[index])
		if value == nil {
			continue
		}

		sum += *value
		count++
	}

	if count == 0 {
		return 0
	}

	return float64(sum) / float64(count)
}
