package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/blogapi/internal/metrics"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	handle := func(method, pattern string, h http.HandlerFunc) {
		router.HandlerFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
			contextSetRoute(r, pattern)
			h(w, r)
		})
	}

	handle(http.MethodGet, "/healthcheck", app.healthCheckHandler)
	handle(http.MethodGet, "/metrics", metrics.Handler(app.registry).ServeHTTP)

	handle(http.MethodPost, "/auth/signup", app.signupHandler)
	handle(http.MethodPost, "/auth/login", app.loginHandler)
	handle(http.MethodPost, "/auth/logout", app.logoutHandler)
	handle(http.MethodGet, "/auth/me", app.requireAuth(app.meHandler))

	handle(http.MethodPost, "/post/blogs", app.protectWrites(app.createBlogHandler))
	handle(http.MethodGet, "/get/blogs", app.listBlogsHandler)
	handle(http.MethodGet, "/get/blogs/:id", app.showBlogHandler)
	handle(http.MethodGet, "/get/user/blogs", app.listUserBlogsHandler)
	handle(http.MethodPut, "/put/blogs/:id", app.protectWrites(app.updateBlogHandler))
	handle(http.MethodDelete, "/delete/blogs/:id", app.protectWrites(app.deleteBlogHandler))
	handle(http.MethodGet, "/blogs", app.searchBlogsHandler)

	return app.middleware(router)
}

// middleware wraps the router in the shared chain. recordMetrics sits outside recoverPanic so that
// recovered panics are counted as 500s.
func (app *application) middleware(next http.Handler) http.Handler {
	return app.recordMetrics(app.recoverPanic(app.logRequest(app.enableCORS(next))))
}
