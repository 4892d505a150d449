package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// compressionLevel is the gzip level of compressed JSON responses.
const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(h.requestTimeout))
	router.Use(middleware.Compress(compressionLevel, "application/json"))

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Route("/api", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Get("/version", h.getServerVersion)

			r.Post("/users", h.createUser)
			r.Post("/account_activations", h.activateAccount)
			r.Post("/password_resets", h.requestPasswordReset)
			r.Put("/password_resets", h.resetPassword)

			r.Post("/login", h.login)
			r.Post("/login/remember", h.rememberLogin)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/users", h.listUsers)
			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/", h.getUser)
				r.Patch("/", h.updateUser)
				r.Delete("/", h.deleteUser)
				r.Get("/following", h.following)
				r.Get("/followers", h.followers)
				r.Get("/posts", h.userPosts)
			})

			r.Delete("/logout", h.logout)

			r.Post("/relationships", h.follow)
			r.Delete("/relationships/{followed_id}", h.unfollow)

			r.Post("/posts", h.createPost)
			r.Get("/feed", h.feed)
		})
	})

	return router
}
