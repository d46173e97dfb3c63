package server

import (
	"net/http"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/auth"
	"droscher.com/BeerCritic/pkg/server/api"
	"droscher.com/BeerCritic/pkg/service"
)

// ReviewServer serves reviews and comments. Mutating handlers sit behind
// RequireUser, so the context always carries the caller.
type ReviewServer struct {
	reviews  *service.ReviewService
	comments *service.CommentService
	logger   *zap.Logger
}

func NewReviewServer(reviews *service.ReviewService, comments *service.CommentService, logger *zap.Logger) *ReviewServer {
	return &ReviewServer{reviews: reviews, comments: comments, logger: logger}
}

func (s *ReviewServer) ListReviews(w http.ResponseWriter, r *http.Request) {
	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	reviews, err := s.reviews.ListReviews(r.Context(), beerID)
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.ReviewsFromModel(reviews))
}

func (s *ReviewServer) AddReview(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	var input service.ReviewInput
	if err = decode(w, r, &input); err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	review, err := s.reviews.AddReview(r.Context(), user, beerID, input)
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	writeJSON(w, http.StatusCreated, api.ReviewFromModel(*review))
}

func (s *ReviewServer) UpdateReview(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	reviewID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	var input service.ReviewInput
	if err = decode(w, r, &input); err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	review, err := s.reviews.UpdateReview(r.Context(), user, reviewID, input)
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.ReviewFromModel(*review))
}

func (s *ReviewServer) DeleteReview(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	reviewID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	if err = s.reviews.DeleteReview(r.Context(), user, reviewID); err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *ReviewServer) ListComments(w http.ResponseWriter, r *http.Request) {
	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	comments, err := s.comments.ListComments(r.Context(), beerID)
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	writeJSON(w, http.StatusOK, api.CommentsFromModel(comments))
}

func (s *ReviewServer) AddComment(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	beerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	var input service.CommentInput
	if err = decode(w, r, &input); err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	comment, err := s.comments.AddComment(r.Context(), user, beerID, input)
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	writeJSON(w, http.StatusCreated, api.CommentFromModel(*comment))
}

func (s *ReviewServer) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	commentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	if err = s.comments.DeleteComment(r.Context(), user, commentID); err != nil {
		writeError(w, r, s.logger, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
