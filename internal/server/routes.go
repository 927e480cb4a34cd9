package server

import (
	"net/http"

	"github.com/danielledeleo/createpage/internal/embedded"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP routes. Page routes live under the configured
// article path, e.g. /wiki/Special:CreatePage/Template.
func NewRouter(app *App) *mux.Router {
	router := mux.NewRouter()
	prefix := app.URLs.ArticlePathPrefix()

	static := http.StripPrefix("/static/", http.FileServer(http.FS(embedded.Static())))
	router.PathPrefix("/static/").Handler(cacheControlHandler(static, "public, max-age=86400"))

	router.Handle("/metrics", promhttp.HandlerFor(app.Metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")

	router.HandleFunc("/", noStore(app.HomeHandler)).Methods("GET", "HEAD")

	// Foo:Bar URLs; only the Special namespace is served here. A trailing
	// slash is an empty subpage, so POSTs to it are served rather than redirected.
	router.HandleFunc(prefix+"{namespace:[^:/]+}:{page}/{subpage:.*}", noStore(app.SpecialPageHandler)).Methods("GET", "HEAD", "POST")
	router.HandleFunc(prefix+"{namespace:[^:/]+}:{page}", noStore(app.SpecialPageHandler)).Methods("GET", "HEAD", "POST")

	router.NotFoundHandler = noStore(app.NotFoundHandler)

	return router
}
