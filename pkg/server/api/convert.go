package api

import (
	"go.openly.dev/pointy"

	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/service"
)

func BeersFromModel(beers []model.Beer) []Beer {
	converted := make([]Beer, 0, len(beers))

	for _, beer := range beers {
		converted = append(converted, BeerFromModel(beer))
	}

	return converted
}

func BeerFromModel(beer model.Beer) Beer {
	sensory := make(map[string]float64, len(model.SensoryFields))
	for _, field := range model.SensoryFields {
		sensory[field.Name] = *field.Aggregate(&beer)
	}

	return Beer{
		ID:          beer.ID,
		Name:        beer.Name,
		Type:        beer.Type,
		Version:     beer.Version,
		Description: beer.Description,
		ReviewCount: beer.ReviewCount,
		Score:       beer.Score,
		Sensory:     sensory,
		CreatedAt:   beer.CreatedAt,
	}
}

func BeerDetailsFromModel(details *service.BeerDetails) BeerDetails {
	versions := make([]BeerVersion, 0, len(details.Versions))
	for _, version := range details.Versions {
		versions = append(versions, BeerVersion{ID: version.ID, Version: version.Version, CreatedAt: version.CreatedAt})
	}

	return BeerDetails{
		Beer:     BeerFromModel(details.Beer),
		Current:  details.Current,
		Versions: versions,
		Reviews:  ReviewsFromModel(details.Reviews),
		Comments: CommentsFromModel(details.Comments),
	}
}

func ReviewsFromModel(reviews []model.Review) []Review {
	converted := make([]Review, 0, len(reviews))

	for _, review := range reviews {
		converted = append(converted, ReviewFromModel(review))
	}

	return converted
}

// ReviewFromModel lists every rated field; unrated ones are null.
func ReviewFromModel(review model.Review) Review {
	ratings := make(map[string]*int, len(model.SensoryFields)+1)
	for _, field := range model.RatedFields() {
		if value := *field.Review(&review); value != nil {
			ratings[field.Name] = pointy.Int(*value)
		} else {
			ratings[field.Name] = nil
		}
	}

	return Review{
		ID:        review.ID,
		BeerID:    review.BeerID,
		Author:    Author{ID: review.UserID, Name: review.User.Name},
		Ratings:   ratings,
		Notes:     review.Notes,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

func CommentsFromModel(comments []model.Comment) []Comment {
	converted := make([]Comment, 0, len(comments))

	for _, comment := range comments {
		converted = append(converted, CommentFromModel(comment))
	}

	return converted
}

func CommentFromModel(comment model.Comment) Comment {
	return Comment{
		ID:        comment.ID,
		BeerID:    comment.BeerID,
		Author:    Author{ID: comment.UserID, Name: comment.User.Name},
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

func UsersFromModel(users []model.User) []User {
	converted := make([]User, 0, len(users))

	for _, user := range users {
		converted = append(converted, UserFromModel(user))
	}

	return converted
}

func UserFromModel(user model.User) User {
	return User{
		ID:        user.ID,
		UUID:      user.UUID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func CandidatesFromModel(candidates []model.BeerCandidate) []Candidate {
	converted := make([]Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		converted = append(converted, CandidateFromModel(candidate))
	}

	return converted
}

func CandidateFromModel(candidate model.BeerCandidate) Candidate {
	converted := Candidate{
		Name:        candidate.Name,
		Type:        candidate.Type,
		Description: candidate.Description,
		Brewery:     candidate.Brewery,
		ImageURL:    candidate.ImageURL,
	}

	if candidate.ABV != nil {
		converted.ABV = pointy.Float64(*candidate.ABV)
	}

	if candidate.IBU != nil {
		converted.IBU = pointy.Uint64(*candidate.IBU)
	}

	if candidate.ExternalID != nil {
		converted.ExternalID = pointy.Uint64(*candidate.ExternalID)
	}

	if candidate.ExternalSource != nil {
		converted.ExternalSource = pointy.String(*candidate.ExternalSource)
	}

	if candidate.ExternalRating != nil {
		converted.ExternalRating = pointy.Float64(*candidate.ExternalRating)
	}

	return converted
}
