package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/siahsang/conduit/internal/metrics"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	handle := func(method, path string, h http.HandlerFunc) {
		router.HandlerFunc(method, path, metrics.Instrument(path, h))
	}
	authenticated := app.requireAuthenticatedUser

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", metrics.Exposer())

	// Not require authentication for these routes
	handle(http.MethodPost, "/api/users", app.registerUserHandler)
	handle(http.MethodPost, "/api/users/login", app.loginHandler)
	handle(http.MethodGet, "/api/profiles/:username", app.getProfileHandler)
	handle(http.MethodGet, "/api/articles", app.listArticlesHandler)
	handle(http.MethodGet, "/api/articles/:slug", app.getArticleHandler)
	handle(http.MethodGet, "/api/articles/:slug/comments", app.listCommentsHandler)
	handle(http.MethodGet, "/api/tags", app.listTagsHandler)

	// Require authentication for these routes
	handle(http.MethodGet, "/api/user", authenticated(app.getCurrentUserHandler))
	handle(http.MethodPut, "/api/user", authenticated(app.updateUserHandler))
	handle(http.MethodPost, "/api/profiles/:username/follow", authenticated(app.followUserHandler))
	handle(http.MethodDelete, "/api/profiles/:username/follow", authenticated(app.unfollowUserHandler))
	handle(http.MethodPost, "/api/articles", authenticated(app.createArticleHandler))
	handle(http.MethodPut, "/api/articles/:slug", authenticated(app.updateArticleHandler))
	handle(http.MethodDelete, "/api/articles/:slug", authenticated(app.deleteArticleHandler))
	handle(http.MethodPost, "/api/articles/:slug/favorite", authenticated(app.favoriteArticleHandler))
	handle(http.MethodDelete, "/api/articles/:slug/favorite", authenticated(app.unfavoriteArticleHandler))
	handle(http.MethodPost, "/api/articles/:slug/comments", authenticated(app.createCommentHandler))
	handle(http.MethodDelete, "/api/articles/:slug/comments/:id", authenticated(app.deleteCommentHandler))

	return app.recoverPanic(app.requestID(app.logRequest(app.authenticate(app.rateLimit(router)))))
}
