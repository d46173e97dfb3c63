package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"droscher.com/BeerCritic/configs"
	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/integrations"
	"droscher.com/BeerCritic/pkg/model"
	"droscher.com/BeerCritic/pkg/repository"
	"droscher.com/BeerCritic/pkg/service"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to string, subject string, body string) error {
	args := m.Called(ctx, to, subject, body)

	return args.Error(0)
}

type stubImages struct{}

func (stubImages) Generate(_ uint) ([]byte, error) {
	return []byte("png"), nil
}

type stubIntegration struct {
	candidates []model.BeerCandidate
	err        error
}

func (s stubIntegration) FindBeer(_ string) ([]model.BeerCandidate, error) {
	return s.candidates, s.err
}

// ServiceSuite wires every service to a fresh in-memory database.
type ServiceSuite struct {
	suite.Suite
	ctx          context.Context
	repo         *repository.Repository
	observedLogs *observer.ObservedLogs
	logger       *zap.Logger
	mailer       *mockMailer
	tokens       *auth.Tokens
	lookups      []integrations.Integration
	beers        *service.BeerService
	reviews      *service.ReviewService
	comments     *service.CommentService
	users        *service.UserService
}

func (suite *ServiceSuite) SetupTest() {
	var (
		err             error
		observedZapCore zapcore.Core
	)

	observedZapCore, suite.observedLogs = observer.New(zap.InfoLevel)
	logger := zap.New(observedZapCore)
	suite.logger = logger

	suite.ctx = context.Background()
	suite.repo, err = repository.OpenInMemory(logger)
	suite.Require().NoError(err)

	suite.mailer = new(mockMailer)
	suite.tokens = auth.NewTokens(configs.Auth{
		SecretKey: "test-secret",
		Audience:  "beercritic",
		Domain:    "beercritic.test",
		TokenTTL:  time.Hour,
		ResetTTL:  time.Hour,
	})
	suite.lookups = []integrations.Integration{
		stubIntegration{err: errors.New("site down")},
		stubIntegration{candidates: []model.BeerCandidate{{Name: "Pliny the Elder", Brewery: "Russian River"}}},
	}

	suite.beers = service.NewBeerService(suite.repo, stubImages{}, suite.lookups, "score", logger)
	suite.reviews = service.NewReviewService(suite.repo, logger)
	suite.comments = service.NewCommentService(suite.repo, logger)
	suite.users = service.NewUserService(suite.repo, suite.tokens, suite.mailer, "http://critic.test/", logger)
}

func (suite *ServiceSuite) TearDownTest() {
	suite.repo.Close()
}

func (suite *ServiceSuite) addUser(email string) *model.User {
	user, err := suite.users.Register(suite.ctx, service.RegisterInput{Email: email, Name: email, Password: "correct horse"})
	suite.Require().NoError(err)

	return user
}

func (suite *ServiceSuite) addBeer(name string, beerType string) *model.Beer {
	beer, err := suite.beers.AddBeer(suite.ctx, service.BeerInput{Name: name, Type: beerType})
	suite.Require().NoError(err)

	return beer
}

func (suite *ServiceSuite) rate(user *model.User, beerID uint, ratings map[string]*int) *model.Review {
	review, err := suite.reviews.AddReview(suite.ctx, user, beerID, service.ReviewInput{Ratings: ratings})
	suite.Require().NoError(err)

	return review
}

func (suite *ServiceSuite) reload(beerID uint) model.Beer {
	details, err := suite.beers.GetBeer(suite.ctx, beerID)
	suite.Require().NoError(err)

	return details.Beer
}
