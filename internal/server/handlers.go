package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielledeleo/createpage/special"
	"github.com/danielledeleo/createpage/wiki"
	"github.com/danielledeleo/createpage/wiki/service"
	"github.com/gorilla/mux"
)

// HomeHandler sends visitors to the create page form.
func (a *App) HomeHandler(rw http.ResponseWriter, req *http.Request) {
	http.Redirect(rw, req, a.URLs.SpecialURL(service.CreatePageName), http.StatusFound)
}

// NotFoundHandler renders the error page for unknown routes.
func (a *App) NotFoundHandler(rw http.ResponseWriter, req *http.Request) {
	a.ErrorHandler(http.StatusNotFound, rw, req, fmt.Errorf("%w: %s", wiki.ErrGenericNotFound, req.URL.Path))
}

func (a *App) ErrorHandler(responseCode int, rw http.ResponseWriter, req *http.Request, errors ...error) {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(responseCode)
	errorTitle := fmt.Sprintf("%d: %s", responseCode, http.StatusText(responseCode))
	err := a.RenderTemplate(rw, "error.html", "index.html",
		map[string]interface{}{
			"Page": wiki.NewStaticPage(errorTitle),
			"Error": map[string]interface{}{
				"Code":   responseCode,
				"Errors": errors,
			}})
	if err != nil {
		slog.Error("failed to render error page", "error", err)
		fmt.Fprintln(rw, errorTitle)
	}
}

// SpecialPageHandler dispatches /wiki/Special:{page}[/{subpage}] to the
// registered special page. The namespace part may use any name or alias of
// the Special namespace, in any case.
func (a *App) SpecialPageHandler(rw http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	pageName := vars["page"]

	if ns, ok := a.Namespaces.CanonicalIndex(vars["namespace"]); !ok || ns != wiki.NamespaceSpecial {
		a.ErrorHandler(http.StatusNotFound, rw, req,
			fmt.Errorf("%w: %s:%s", wiki.ErrGenericNotFound, vars["namespace"], pageName))
		return
	}

	handler, ok := a.SpecialPages.Get(pageName)
	if !ok {
		a.ErrorHandler(http.StatusNotFound, rw, req,
			fmt.Errorf("%w: %s", wiki.ErrSpecialPageNotFound, pageName))
		return
	}

	handler.Handle(rw, req.WithContext(special.WithSubpage(req.Context(), vars["subpage"])))
}
