// Package rpc exposes the read side of the catalog over Connect.
package rpc

import (
	"context"
	"errors"
	"net/http"

	connect_go "github.com/bufbuild/connect-go"
	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/server/api"
	"droscher.com/BeerCritic/pkg/service"
)

const CatalogServiceName = "beercritic.v1.CatalogService"

const (
	ListBeersProcedure   = "/" + CatalogServiceName + "/ListBeers"
	GetBeerProcedure     = "/" + CatalogServiceName + "/GetBeer"
	ListReviewsProcedure = "/" + CatalogServiceName + "/ListReviews"
)

type CatalogServer struct {
	beers   *service.BeerService
	reviews *service.ReviewService
	logger  *zap.Logger
}

func NewCatalogServer(beers *service.BeerService, reviews *service.ReviewService, logger *zap.Logger) *CatalogServer {
	return &CatalogServer{beers: beers, reviews: reviews, logger: logger}
}

// NewCatalogServiceHandler returns the path to mount the service on and its
// handler. The JSON codec is always added to opts.
func NewCatalogServiceHandler(server *CatalogServer, opts ...connect_go.HandlerOption) (string, http.Handler) {
	opts = append(opts, connect_go.WithCodec(Codec{}))

	mux := http.NewServeMux()
	mux.Handle(ListBeersProcedure, connect_go.NewUnaryHandler(ListBeersProcedure, server.ListBeers, opts...))
	mux.Handle(GetBeerProcedure, connect_go.NewUnaryHandler(GetBeerProcedure, server.GetBeer, opts...))
	mux.Handle(ListReviewsProcedure, connect_go.NewUnaryHandler(ListReviewsProcedure, server.ListReviews, opts...))

	return "/" + CatalogServiceName + "/", mux
}

func (c *CatalogServer) ListBeers(ctx context.Context, request *connect_go.Request[api.ListBeersRequest]) (*connect_go.Response[api.BeerList], error) {
	beers, sortKey, err := c.beers.ListCurrent(ctx, service.BeerQuery{
		Type:   request.Msg.Type,
		Search: request.Msg.Query,
		Sort:   request.Msg.Sort,
	})
	if err != nil {
		return nil, c.connectError(err)
	}

	return connect_go.NewResponse(&api.BeerList{Sort: string(sortKey), Beers: api.BeersFromModel(beers)}), nil
}

func (c *CatalogServer) GetBeer(ctx context.Context, request *connect_go.Request[api.GetBeerRequest]) (*connect_go.Response[api.BeerDetails], error) {
	details, err := c.beers.GetBeer(ctx, request.Msg.ID)
	if err != nil {
		return nil, c.connectError(err)
	}

	response := api.BeerDetailsFromModel(details)

	return connect_go.NewResponse(&response), nil
}

func (c *CatalogServer) ListReviews(ctx context.Context, request *connect_go.Request[api.ListReviewsRequest]) (*connect_go.Response[api.ListReviewsResponse], error) {
	reviews, err := c.reviews.ListReviews(ctx, request.Msg.BeerID)
	if err != nil {
		return nil, c.connectError(err)
	}

	return connect_go.NewResponse(&api.ListReviewsResponse{Reviews: api.ReviewsFromModel(reviews)}), nil
}

func (c *CatalogServer) connectError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return connect_go.NewError(connect_go.CodeNotFound, err)
	case errors.Is(err, service.ErrInvalidInput):
		return connect_go.NewError(connect_go.CodeInvalidArgument, err)
	default:
		c.logger.Error("catalog call failed", zap.Error(err))

		return connect_go.NewError(connect_go.CodeInternal, errors.New("internal error"))
	}
}
