package service_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"

	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/service"
)

type ReviewServiceTestSuite struct {
	ServiceSuite
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}

func (suite *ReviewServiceTestSuite) TestAddReview_RecomputesAggregates() {
	admin := suite.addUser("admin@example.com")
	reader := suite.addUser("reader@example.com")
	other := suite.addUser("other@example.com")
	tripel := suite.addBeer("Tripel", "Belgian")

	suite.rate(admin, tripel.ID, map[string]*int{"bitterness": pointy.Int(6), "score": pointy.Int(7)})
	suite.rate(reader, tripel.ID, map[string]*int{"bitterness": pointy.Int(8), "score": pointy.Int(7)})
	suite.rate(other, tripel.ID, map[string]*int{"bitterness": nil, "score": pointy.Int(8)})

	beer := suite.reload(tripel.ID)
	suite.InDelta(7.0, beer.Bitterness, 1e-9)
	suite.InDelta(7.3, beer.Score, 1e-9)
	suite.Equal(3, beer.ReviewCount)
	suite.Zero(beer.Foam)
}

func (suite *ReviewServiceTestSuite) TestAddReview_UnknownBeer() {
	user := suite.addUser("ann@example.com")

	_, err := suite.reviews.AddReview(suite.ctx, user, 99, service.ReviewInput{})
	suite.Require().ErrorIs(err, service.ErrNotFound)
}

func (suite *ReviewServiceTestSuite) TestAddReview_ReportsEveryBadField() {
	user := suite.addUser("ann@example.com")
	beer := suite.addBeer("Gose", "Sour")

	_, err := suite.reviews.AddReview(suite.ctx, user, beer.ID, service.ReviewInput{Ratings: map[string]*int{
		"foam":    pointy.Int(11),
		"acidity": pointy.Int(-1),
		"umami":   pointy.Int(3),
		"fruity":  pointy.Int(10),
	}})
	suite.Require().ErrorIs(err, service.ErrInvalidInput)
	suite.ErrorContains(err, "foam must be between 0 and 10")
	suite.ErrorContains(err, "acidity must be between 0 and 10")
	suite.ErrorContains(err, `unknown field "umami"`)
	suite.NotContains(err.Error(), "fruity")

	suite.Zero(suite.reload(beer.ID).ReviewCount)
}

func (suite *ReviewServiceTestSuite) TestUpdateReview_AuthorOrAdmin() {
	admin := suite.addUser("admin@example.com")
	author := suite.addUser("author@example.com")
	stranger := suite.addUser("stranger@example.com")
	beer := suite.addBeer("Bock", "Bock")
	review := suite.rate(author, beer.ID, map[string]*int{"score": pointy.Int(4), "caramel": pointy.Int(9)})

	_, err := suite.reviews.UpdateReview(suite.ctx, stranger, review.ID, service.ReviewInput{Ratings: map[string]*int{"score": pointy.Int(1)}})
	suite.Require().ErrorIs(err, service.ErrForbidden)
	suite.InDelta(4.0, suite.reload(beer.ID).Score, 1e-9)

	_, err = suite.reviews.UpdateReview(suite.ctx, author, review.ID, service.ReviewInput{Ratings: map[string]*int{"score": pointy.Int(6)}, Notes: "better cold"})
	suite.Require().NoError(err)

	updated := suite.reload(beer.ID)
	suite.InDelta(6.0, updated.Score, 1e-9)
	suite.Zero(updated.Caramel)

	_, err = suite.reviews.UpdateReview(suite.ctx, admin, review.ID, service.ReviewInput{Ratings: map[string]*int{"score": pointy.Int(2)}})
	suite.Require().NoError(err)
	suite.InDelta(2.0, suite.reload(beer.ID).Score, 1e-9)
}

func (suite *ReviewServiceTestSuite) TestDeleteReview_Recomputes() {
	first := suite.addUser("first@example.com")
	second := suite.addUser("second@example.com")
	beer := suite.addBeer("Weizen", "Wheat")

	suite.rate(first, beer.ID, map[string]*int{"score": pointy.Int(2)})
	review := suite.rate(second, beer.ID, map[string]*int{"score": pointy.Int(8)})
	suite.InDelta(5.0, suite.reload(beer.ID).Score, 1e-9)

	suite.Require().ErrorIs(suite.reviews.DeleteReview(suite.ctx, second, 12345), service.ErrNotFound)
	suite.Require().NoError(suite.reviews.DeleteReview(suite.ctx, second, review.ID))

	reloaded := suite.reload(beer.ID)
	suite.InDelta(2.0, reloaded.Score, 1e-9)
	suite.Equal(1, reloaded.ReviewCount)

	reviews, err := suite.reviews.ListReviews(suite.ctx, beer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(reviews, 1)
	suite.Equal("first@example.com", reviews[0].User.Email)
}

func (suite *ReviewServiceTestSuite) TestDeleteReview_LastReviewResetsAggregates() {
	user := suite.addUser("ann@example.com")
	beer := suite.addBeer("Saison", "Farmhouse")

	ratings := make(map[string]*int)
	for _, field := range model.RatedFields() {
		ratings[field.Name] = pointy.Int(7)
	}

	review := suite.rate(user, beer.ID, ratings)

	rated := suite.reload(beer.ID)
	suite.Equal(1, rated.ReviewCount)
	suite.InDelta(7.0, *model.ScoreField.Aggregate(&rated), 1e-9)

	suite.Require().NoError(suite.reviews.DeleteReview(suite.ctx, user, review.ID))

	reloaded := suite.reload(beer.ID)
	suite.Zero(reloaded.ReviewCount)

	for _, field := range model.RatedFields() {
		suite.Zero(*field.Aggregate(&reloaded), field.Name)
	}
}

func (suite *ReviewServiceTestSuite) TestListReviews_UnknownBeer() {
	_, err := suite.reviews.ListReviews(suite.ctx, 7)
	suite.Require().ErrorIs(err, service.ErrNotFound)
}

func (suite *ReviewServiceTestSuite) TestComments() {
	author := suite.addUser("author@example.com")
	stranger := suite.addUser("stranger@example.com")
	beer := suite.addBeer("Brown Ale", "Brown")

	_, err := suite.comments.AddComment(suite.ctx, author, beer.ID, service.CommentInput{Text: "   "})
	suite.Require().ErrorIs(err, service.ErrInvalidInput)

	comment, err := suite.comments.AddComment(suite.ctx, author, beer.ID, service.CommentInput{Text: "nutty finish"})
	suite.Require().NoError(err)

	suite.Require().ErrorIs(suite.comments.DeleteComment(suite.ctx, stranger, comment.ID), service.ErrForbidden)

	comments, err := suite.comments.ListComments(suite.ctx, beer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(comments, 1)
	suite.Equal("nutty finish", comments[0].Text)

	suite.Require().NoError(suite.comments.DeleteComment(suite.ctx, author, comment.ID))

	comments, err = suite.comments.ListComments(suite.ctx, beer.ID)
	suite.Require().NoError(err)
	suite.Empty(comments)
}
