package server

import (
	"net/http"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/server/api"
	"droscher.com/BeerCritic/pkg/service"
)

type BeerServer struct {
	beers  *service.BeerService
	logger *zap.Logger
}

func NewBeerServer(beers *service.BeerService, logger *zap.Logger) *BeerServer {
	return &BeerServer{beers: beers, logger: logger}
}

func (b *BeerServer) ListBeers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	beers, sortKey, err := b.beers.ListCurrent(r.Context(), service.BeerQuery{
		Type:   query.Get("type"),
		Search: query.Get("q"),
		Sort:   query.Get("sort"),
	})
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.BeerList{Sort: string(sortKey), Beers: api.BeersFromModel(beers)})
}

func (b *BeerServer) GetBeer(w http.ResponseWriter, r *http.Request) {
	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	details, err := b.beers.GetBeer(r.Context(), beerID)
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.BeerDetailsFromModel(details))
}

func (b *BeerServer) QRCode(w http.ResponseWriter, r *http.Request) {
	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	image, err := b.beers.LinkImage(r.Context(), beerID)
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image)
}

func (b *BeerServer) AddBeer(w http.ResponseWriter, r *http.Request) {
	var input service.BeerInput
	if err := decode(w, r, &input); err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	beer, err := b.beers.AddBeer(r.Context(), input)
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	writeJSON(w, http.StatusCreated, api.BeerFromModel(*beer))
}

func (b *BeerServer) UpdateBeer(w http.ResponseWriter, r *http.Request) {
	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	var input service.BeerInput
	if err = decode(w, r, &input); err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	beer, err := b.beers.UpdateBeer(r.Context(), beerID, input)
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.BeerFromModel(*beer))
}

func (b *BeerServer) DeleteBeer(w http.ResponseWriter, r *http.Request) {
	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	if err = b.beers.DeleteBeer(r.Context(), beerID); err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (b *BeerServer) FindBeer(w http.ResponseWriter, r *http.Request) {
	candidates, err := b.beers.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, b.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.CandidatesFromModel(candidates))
}
