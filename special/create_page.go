package special

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielledeleo/createpage/wiki"
)

// CreationRouter is the interface needed by CreatePage.
type CreationRouter interface {
	Route(ctx context.Context, rawTitle, namespaceHint string) (*wiki.RoutingDecision, error)
}

// CreatePageTemplater renders the create_page template.
type CreatePageTemplater interface {
	RenderTemplate(w io.Writer, name string, base string, data map[string]interface{}) error
}

// OutcomeRecorder counts how form submissions end.
type OutcomeRecorder interface {
	RecordOutcome(outcome string)
}

// Submission outcomes passed to OutcomeRecorder.
const (
	OutcomeRedirect         = "redirect"
	OutcomeAlreadyExists    = "already_exists"
	OutcomeInvalidTitle     = "invalid_title"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeBadToken         = "bad_token"
	OutcomeError            = "error"
)

// CreatePage handles Special:CreatePage requests. The subpage, if any, names
// the namespace new pages go to, e.g. Special:CreatePage/Template.
type CreatePage struct {
	router       CreationRouter
	templater    CreatePageTemplater
	tokens       *FormTokens
	storeTimeout time.Duration
	outcomes     OutcomeRecorder
}

// NewCreatePage creates a new CreatePage special page handler. A zero
// storeTimeout leaves the existence check bounded only by the request.
// outcomes may be nil.
func NewCreatePage(router CreationRouter, templater CreatePageTemplater, tokens *FormTokens, storeTimeout time.Duration, outcomes OutcomeRecorder) *CreatePage {
	return &CreatePage{
		router:       router,
		templater:    templater,
		tokens:       tokens,
		storeTimeout: storeTimeout,
		outcomes:     outcomes,
	}
}

// Handle shows the form on GET and routes the submitted title on POST.
func (p *CreatePage) Handle(rw http.ResponseWriter, req *http.Request) {
	rw.Header().Set("Cache-Control", "no-store")

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		p.renderForm(rw, req, http.StatusOK, req.URL.Query().Get("wpTitle"), "")
	case http.MethodPost:
		p.submit(rw, req)
	default:
		rw.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(rw, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (p *CreatePage) submit(rw http.ResponseWriter, req *http.Request) {
	rawTitle := req.PostFormValue("wpTitle")
	hint := Subpage(req)

	if err := p.tokens.Verify(req, req.PostFormValue("wpEditToken")); err != nil {
		slog.Warn("create page form token rejected", "category", "createpage", "action", "submit", "ip", req.RemoteAddr)
		p.record(OutcomeBadToken)
		p.renderForm(rw, req, http.StatusForbidden, rawTitle, err.Error())
		return
	}

	ctx := req.Context()
	if p.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.storeTimeout)
		defer cancel()
	}

	decision, err := p.router.Route(ctx, rawTitle, hint)
	if err != nil {
		var malformed *wiki.MalformedTitleError
		switch {
		case errors.As(err, &malformed):
			slog.Info("invalid title submitted", "category", "createpage", "action", "submit", "title", rawTitle, "reason", malformed.Reason)
			p.record(OutcomeInvalidTitle)
			p.renderForm(rw, req, http.StatusBadRequest, rawTitle, "the requested page title is invalid: "+malformed.Reason)
		case errors.Is(err, wiki.ErrStoreUnavailable):
			slog.Error("page store unavailable", "category", "createpage", "action", "submit", "title", rawTitle, "error", err)
			p.record(OutcomeStoreUnavailable)
			rw.Header().Set("Retry-After", "5")
			p.renderForm(rw, req, http.StatusServiceUnavailable, rawTitle, "the page store is temporarily unavailable, please try again")
		default:
			slog.Error("create page routing failed", "category", "createpage", "action", "submit", "title", rawTitle, "error", err)
			p.record(OutcomeError)
			http.Error(rw, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	switch decision.Kind {
	case wiki.DecisionRedirect:
		if decision.Title != nil {
			slog.Info("redirecting to editor", "category", "createpage", "action", "submit", "page", decision.Title.PrefixedText())
		}
		p.record(OutcomeRedirect)
		http.Redirect(rw, req, decision.TargetURL, http.StatusSeeOther)
	case wiki.DecisionAlreadyExists:
		slog.Info("page already exists", "category", "createpage", "action", "submit", "page", decision.Title.PrefixedText())
		p.record(OutcomeAlreadyExists)
		p.render(rw, http.StatusOK, map[string]interface{}{
			"Page":          wiki.NewStaticPage("Create a page"),
			"Exists":        true,
			"ExistingTitle": decision.Title.PrefixedText(),
			"EditURL":       decision.EditURL,
			"RetryURL":      decision.RetryURL,
		})
	default:
		slog.Error("unknown routing decision", "category", "createpage", "kind", decision.Kind.String())
		p.record(OutcomeError)
		http.Error(rw, "Internal server error", http.StatusInternalServerError)
	}
}

func (p *CreatePage) record(outcome string) {
	if p.outcomes != nil {
		p.outcomes.RecordOutcome(outcome)
	}
}

func (p *CreatePage) renderForm(rw http.ResponseWriter, req *http.Request, status int, titleValue, message string) {
	token, err := p.tokens.Issue(rw, req)
	if err != nil {
		slog.Error("failed to issue form token", "error", err)
		http.Error(rw, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Page":       wiki.NewStaticPage("Create a page"),
		"FormAction": req.URL.EscapedPath(),
		"TitleValue": titleValue,
		"Token":      token,
	}
	if message != "" {
		data["calloutMessage"] = message
		data["calloutClasses"] = "pw-error"
	}

	p.render(rw, status, data)
}

func (p *CreatePage) render(rw http.ResponseWriter, status int, data map[string]interface{}) {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	if err := p.templater.RenderTemplate(rw, "create_page.html", "index.html", data); err != nil {
		slog.Error("failed to render create_page template", "error", err)
	}
}
