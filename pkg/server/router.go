package server

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"droscher.com/BeerCritic/pkg/auth"
)

// NewRouter maps the JSON API. Every route sees the session and, when there
// is one, the caller; the user and admin groups are gated on top of that.
func NewRouter(sessions *scs.SessionManager, authManager *auth.Manager, beers *BeerServer, reviews *ReviewServer, users *UserServer) http.Handler {
	mux := http.NewServeMux()

	public := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, handler)
	}
	user := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, authManager.RequireUser(handler))
	}
	admin := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, authManager.RequireAdmin(handler))
	}

	public("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	public("POST /register", users.Register)
	public("POST /login", users.Login)
	public("POST /logout", users.Logout)
	public("POST /token", users.Token)
	public("POST /password/forgot", users.ForgotPassword)
	public("POST /password/reset", users.ResetPassword)

	public("GET /beers", beers.ListBeers)
	public("GET /beers/{id}", beers.GetBeer)
	public("GET /beers/{id}/qrcode", beers.QRCode)
	public("GET /beers/{id}/reviews", reviews.ListReviews)
	public("GET /beers/{id}/comments", reviews.ListComments)

	user("POST /beers/{id}/reviews", reviews.AddReview)
	user("PUT /reviews/{id}", reviews.UpdateReview)
	user("DELETE /reviews/{id}", reviews.DeleteReview)
	user("POST /beers/{id}/comments", reviews.AddComment)
	user("DELETE /comments/{id}", reviews.DeleteComment)
	user("GET /me", users.Me)
	user("GET /me/reviews", users.MyReviews)

	admin("POST /admin/beers", beers.AddBeer)
	admin("PUT /admin/beers/{id}", beers.UpdateBeer)
	admin("DELETE /admin/beers/{id}", beers.DeleteBeer)
	admin("GET /admin/beers/lookup", beers.FindBeer)
	admin("GET /admin/users", users.ListUsers)
	admin("PUT /admin/users/{id}/role", users.SetRole)
	admin("DELETE /admin/users/{id}", users.DeleteUser)

	return sessions.LoadAndSave(authManager.LoadUser(mux))
}
