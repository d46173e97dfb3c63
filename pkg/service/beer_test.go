package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"

	"droscher.com/BeerCritic/pkg/catalog"
	"droscher.com/BeerCritic/pkg/integrations"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/service"
)

type BeerServiceTestSuite struct {
	ServiceSuite
}

func TestBeerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BeerServiceTestSuite))
}

func (suite *BeerServiceTestSuite) TestAddBeer_AssignsNextVersion() {
	first := suite.addBeer("Pale Ale", "APA")
	second := suite.addBeer("Pale Ale", "APA")

	suite.Equal(1, first.Version)
	suite.Equal(2, second.Version)
}

func (suite *BeerServiceTestSuite) TestAddBeer_ExplicitVersionMustBeUnused() {
	_, err := suite.beers.AddBeer(suite.ctx, service.BeerInput{Name: "Stout", Type: "Stout", Version: 4})
	suite.Require().NoError(err)

	_, err = suite.beers.AddBeer(suite.ctx, service.BeerInput{Name: "Stout", Type: "Stout", Version: 4})
	suite.Require().ErrorIs(err, service.ErrVersionExists)
}

func (suite *BeerServiceTestSuite) TestAddBeer_Validation() {
	_, err := suite.beers.AddBeer(suite.ctx, service.BeerInput{Name: "  ", Type: "Lager", Version: -1})
	suite.Require().ErrorIs(err, service.ErrInvalidInput)
	suite.ErrorContains(err, "name failed required")
	suite.ErrorContains(err, "version failed gte")
}

func (suite *BeerServiceTestSuite) TestUpdateBeer_KeepsVersionAndAggregates() {
	user := suite.addUser("ann@example.com")
	beer := suite.addBeer("Dubbel", "Belgian")
	suite.rate(user, beer.ID, map[string]*int{"score": pointy.Int(8)})

	updated, err := suite.beers.UpdateBeer(suite.ctx, beer.ID, service.BeerInput{Name: "Dubbel", Type: "Abbey", Version: 9, Description: "dark"})
	suite.Require().NoError(err)
	suite.Equal(1, updated.Version)
	suite.Equal("Abbey", updated.Type)
	suite.InDelta(8.0, updated.Score, 1e-9)
	suite.Equal(1, updated.ReviewCount)
}

func (suite *BeerServiceTestSuite) TestUpdateBeer_NotFound() {
	_, err := suite.beers.UpdateBeer(suite.ctx, 404, service.BeerInput{Name: "Ghost", Type: "Ale"})
	suite.Require().ErrorIs(err, service.ErrNotFound)
}

func (suite *BeerServiceTestSuite) TestDeleteBeer_RemovesReviewsAndComments() {
	user := suite.addUser("ann@example.com")
	beer := suite.addBeer("Porter", "Porter")
	suite.rate(user, beer.ID, map[string]*int{"score": pointy.Int(5)})
	_, err := suite.comments.AddComment(suite.ctx, user, beer.ID, service.CommentInput{Text: "smoky"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.beers.DeleteBeer(suite.ctx, beer.ID))

	_, err = suite.beers.GetBeer(suite.ctx, beer.ID)
	suite.Require().ErrorIs(err, service.ErrNotFound)

	reviews, err := suite.reviews.ListUserReviews(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Empty(reviews)

	suite.Require().ErrorIs(suite.beers.DeleteBeer(suite.ctx, beer.ID), service.ErrNotFound)
}

func (suite *BeerServiceTestSuite) TestGetBeer_MarksCurrentVersion() {
	old := suite.addBeer("IPA", "IPA")
	current := suite.addBeer("IPA", "IPA")

	details, err := suite.beers.GetBeer(suite.ctx, old.ID)
	suite.Require().NoError(err)
	suite.False(details.Current)
	suite.Len(details.Versions, 2)

	details, err = suite.beers.GetBeer(suite.ctx, current.ID)
	suite.Require().NoError(err)
	suite.True(details.Current)
}

func (suite *BeerServiceTestSuite) TestListCurrent_OneRowPerNameSorted() {
	user := suite.addUser("ann@example.com")

	suite.addBeer("Pale Ale", "APA")
	paleAle := suite.addBeer("Pale Ale", "APA")
	stout := suite.addBeer("Stout", "Stout")
	suite.addBeer("Lager", "Lager")

	suite.rate(user, paleAle.ID, map[string]*int{"score": pointy.Int(6)})
	suite.rate(user, stout.ID, map[string]*int{"score": pointy.Int(9)})

	beers, sortKey, err := suite.beers.ListCurrent(suite.ctx, service.BeerQuery{})
	suite.Require().NoError(err)
	suite.Equal(catalog.SortByScore, sortKey)
	suite.Require().Len(beers, 3)
	suite.Equal("Stout", beers[0].Name)
	suite.Equal("Pale Ale", beers[1].Name)
	suite.Equal(2, beers[1].Version)
	suite.Equal("Lager", beers[2].Name)

	beers, sortKey, err = suite.beers.ListCurrent(suite.ctx, service.BeerQuery{Sort: "name", Type: "apa"})
	suite.Require().NoError(err)
	suite.Equal(catalog.SortByName, sortKey)
	suite.Require().Len(beers, 1)
	suite.Equal(paleAle.ID, beers[0].ID)
}

func (suite *BeerServiceTestSuite) TestListCurrent_TypeFilterUsesCurrentVersion() {
	suite.addBeer("Pale Ale", "APA")
	current := suite.addBeer("Pale Ale", "IPA")

	beers, _, err := suite.beers.ListCurrent(suite.ctx, service.BeerQuery{Type: "apa"})
	suite.Require().NoError(err)
	suite.Empty(beers)

	beers, _, err = suite.beers.ListCurrent(suite.ctx, service.BeerQuery{Type: "ipa"})
	suite.Require().NoError(err)
	suite.Require().Len(beers, 1)
	suite.Equal(current.ID, beers[0].ID)
	suite.Equal(2, beers[0].Version)
}

func (suite *BeerServiceTestSuite) TestListCurrent_SearchMatchesLiterally() {
	suite.addBeer("100% Brett", "Wild")
	suite.addBeer("1000 Hops", "IPA")

	beers, _, err := suite.beers.ListCurrent(suite.ctx, service.BeerQuery{Search: "100%"})
	suite.Require().NoError(err)
	suite.Require().Len(beers, 1)
	suite.Equal("100% Brett", beers[0].Name)
}

func (suite *BeerServiceTestSuite) TestListCurrent_UnknownSortFallsBack() {
	_, sortKey, err := suite.beers.ListCurrent(suite.ctx, service.BeerQuery{Sort: "drop table"})
	suite.Require().NoError(err)
	suite.Equal(catalog.SortByScore, sortKey)
}

func (suite *BeerServiceTestSuite) TestLinkImage() {
	beer := suite.addBeer("Kolsch", "Kolsch")

	image, err := suite.beers.LinkImage(suite.ctx, beer.ID)
	suite.Require().NoError(err)
	suite.Equal([]byte("png"), image)

	_, err = suite.beers.LinkImage(suite.ctx, beer.ID+1)
	suite.Require().ErrorIs(err, service.ErrNotFound)
}

func (suite *BeerServiceTestSuite) TestLookup_SkipsFailingIntegration() {
	candidates, err := suite.beers.Lookup(suite.ctx, "pliny")
	suite.Require().NoError(err)
	suite.Require().Len(candidates, 1)
	suite.Equal("Russian River", candidates[0].Brewery)
	suite.Equal(1, suite.observedLogs.FilterMessage("failed beer search").Len())

	_, err = suite.beers.Lookup(suite.ctx, " ")
	suite.Require().ErrorIs(err, service.ErrInvalidInput)
}

func (suite *BeerServiceTestSuite) TestLookup_KeepsPartialResults() {
	partial := stubIntegration{
		candidates: []model.BeerCandidate{{Name: "Heady Topper", Brewery: "The Alchemist"}},
		err:        errors.New("detail page timed out"),
	}
	beers := service.NewBeerService(suite.repo, stubImages{}, []integrations.Integration{partial}, "score", suite.logger)

	candidates, err := beers.Lookup(suite.ctx, "heady")
	suite.Require().NoError(err)
	suite.Require().Len(candidates, 1)
	suite.Equal("Heady Topper", candidates[0].Name)

	logs := suite.observedLogs.FilterMessage("failed beer search")
	suite.Require().Equal(1, logs.Len())
	suite.Equal(int64(1), logs.All()[0].ContextMap()["found"])
}
