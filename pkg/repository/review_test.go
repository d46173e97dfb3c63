package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"

	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/repository"
)

type ReviewStoreTestSuite struct {
	StoreSuite
}

func TestReviewStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewStoreTestSuite))
}

func (suite *ReviewStoreTestSuite) addUser(email string) *model.User {
	user, err := suite.repo.AddUser(context.Background(), model.User{Email: email, Name: email, Role: model.RoleReader})
	suite.Require().NoError(err)

	return user
}

func (suite *ReviewStoreTestSuite) addBeer(name string) *model.Beer {
	beer, err := suite.repo.AddBeer(context.Background(), model.Beer{Name: name, Version: 1})
	suite.Require().NoError(err)

	return beer
}

func (suite *ReviewStoreTestSuite) TestReviewsCarryTheirAuthor() {
	ctx := context.Background()
	user := suite.addUser("ann@example.com")
	beer := suite.addBeer("Tripel")

	added, err := suite.repo.AddReview(ctx, model.Review{
		BeerID:        beer.ID,
		UserID:        user.ID,
		SensoryScores: model.SensoryScores{Bitterness: pointy.Int(7)},
		Score:         pointy.Int(8),
	})
	suite.Require().NoError(err)

	review, err := suite.repo.GetReviewByID(ctx, added.ID)
	suite.Require().NoError(err)
	suite.Equal("ann@example.com", review.User.Email)
	suite.Equal(pointy.Int(7), review.Bitterness)
	suite.Nil(review.Foam)

	reviews, err := suite.repo.GetReviewsForBeer(ctx, beer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(reviews, 1)
	suite.Equal(user.ID, reviews[0].User.ID)
}

func (suite *ReviewStoreTestSuite) TestDeleteReviewsForUser_ReturnsAffectedBeers() {
	ctx := context.Background()
	ann := suite.addUser("ann@example.com")
	bob := suite.addUser("bob@example.com")
	tripel := suite.addBeer("Tripel")
	stout := suite.addBeer("Stout")

	for _, review := range []model.Review{
		{BeerID: tripel.ID, UserID: ann.ID},
		{BeerID: tripel.ID, UserID: ann.ID},
		{BeerID: stout.ID, UserID: ann.ID},
		{BeerID: stout.ID, UserID: bob.ID},
	} {
		_, err := suite.repo.AddReview(ctx, review)
		suite.Require().NoError(err)
	}

	beerIDs, err := suite.repo.DeleteReviewsForUser(ctx, ann.ID)
	suite.Require().NoError(err)
	suite.ElementsMatch([]uint{tripel.ID, stout.ID}, beerIDs)

	reviews, err := suite.repo.GetReviewsForBeer(ctx, stout.ID)
	suite.Require().NoError(err)
	suite.Require().Len(reviews, 1)
	suite.Equal(bob.ID, reviews[0].UserID)

	reviews, err = suite.repo.GetReviewsForUser(ctx, ann.ID)
	suite.Require().NoError(err)
	suite.Empty(reviews)
}

func (suite *ReviewStoreTestSuite) TestDeleteReview_Missing() {
	suite.Require().ErrorIs(suite.repo.DeleteReview(context.Background(), 31), repository.ErrReviewNotFound)
}

func (suite *ReviewStoreTestSuite) TestComments() {
	ctx := context.Background()
	user := suite.addUser("ann@example.com")
	beer := suite.addBeer("Porter")

	comment, err := suite.repo.AddComment(ctx, model.Comment{BeerID: beer.ID, UserID: user.ID, Text: "roasty"})
	suite.Require().NoError(err)

	comments, err := suite.repo.GetCommentsForBeer(ctx, beer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(comments, 1)
	suite.Equal("ann@example.com", comments[0].User.Email)

	suite.Require().NoError(suite.repo.DeleteCommentsForUser(ctx, user.ID))

	_, err = suite.repo.GetCommentByID(ctx, comment.ID)
	suite.Require().ErrorIs(err, repository.ErrCommentNotFound)
}

type UserStoreTestSuite struct {
	StoreSuite
}

func TestUserStoreTestSuite(t *testing.T) {
	suite.Run(t, new(UserStoreTestSuite))
}

func (suite *UserStoreTestSuite) TestAddUser_NormalizesEmail() {
	ctx := context.Background()

	user, err := suite.repo.AddUser(ctx, model.User{Email: "Ann@Example.COM", Name: "Ann"})
	suite.Require().NoError(err)
	suite.Equal("ann@example.com", user.Email)
	suite.NotEmpty(user.UUID.String())

	found, err := suite.repo.GetUserFromEmail(ctx, "ANN@example.com")
	suite.Require().NoError(err)
	suite.Equal(user.ID, found.ID)

	byUUID, err := suite.repo.GetUserByUUID(ctx, user.UUID)
	suite.Require().NoError(err)
	suite.Equal(user.ID, byUUID.ID)

	_, err = suite.repo.AddUser(ctx, model.User{Email: "ann@example.com", Name: "Other Ann"})
	suite.Require().ErrorIs(err, repository.ErrDuplicate)

	count, err := suite.repo.CountUsers(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *UserStoreTestSuite) TestDeleteUser_FreesEmail() {
	ctx := context.Background()

	user, err := suite.repo.AddUser(ctx, model.User{Email: "ann@example.com"})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.DeleteUser(ctx, user.ID))

	_, err = suite.repo.GetUserByID(ctx, user.ID)
	suite.Require().ErrorIs(err, repository.ErrUserNotFound)
	suite.Require().ErrorIs(suite.repo.DeleteUser(ctx, user.ID), repository.ErrUserNotFound)

	_, err = suite.repo.AddUser(ctx, model.User{Email: "ann@example.com"})
	suite.Require().NoError(err)
}
