package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/smartentrance/backend/internal/core/ports"
)

func NewHandler(
	authHandler *AuthHandler,
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
	jwtSecret []byte,
	revoker ports.TokenRevoker,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(jwtSecret, revoker))
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret, revoker))

			r.Route("/buildings/{buildingID}/polls", func(r chi.Router) {
				r.Get("/", pollHandler.ListPolls)
				r.Post("/", pollHandler.CreatePoll)
				r.Post("/{pollID}/vote", voteHandler.CastVote)
			})

			r.Get("/polls/{pollID}", pollHandler.GetPoll)
		})
	})

	return r
}
