package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielledeleo/createpage/wiki"
)

// CreatePageName is the special page name the router sends users back to.
const CreatePageName = "CreatePage"

// PageChecker is the part of PageService the router needs.
type PageChecker interface {
	PageExists(ctx context.Context, title *wiki.Title) (bool, error)
}

// PageCreationRouter decides where a create-page request should go.
type PageCreationRouter interface {
	// Resolve turns the submitted text and the namespace hint into a title.
	// An explicit, known namespace prefix in rawTitle wins over the hint.
	Resolve(rawTitle, namespaceHint string) (*wiki.Title, error)

	// Route resolves the title and checks the store. Errors are either a
	// *wiki.MalformedTitleError or wrap wiki.ErrStoreUnavailable.
	Route(ctx context.Context, rawTitle, namespaceHint string) (*wiki.RoutingDecision, error)
}

type pageCreationRouter struct {
	namespaces *wiki.NamespaceRegistry
	parser     *wiki.TitleParser
	pages      PageChecker
	urls       *wiki.URLBuilder
	editor     EditorMode
}

// NewPageCreationRouter creates a PageCreationRouter.
func NewPageCreationRouter(namespaces *wiki.NamespaceRegistry, pages PageChecker, urls *wiki.URLBuilder, editor EditorMode) PageCreationRouter {
	return &pageCreationRouter{
		namespaces: namespaces,
		parser:     wiki.NewTitleParser(namespaces),
		pages:      pages,
		urls:       urls,
		editor:     editor,
	}
}

func (r *pageCreationRouter) Resolve(rawTitle, namespaceHint string) (*wiki.Title, error) {
	return r.parser.Parse(strings.TrimSpace(rawTitle), r.hintNamespace(namespaceHint))
}

// hintNamespace maps the subpage of the request to a namespace. Unknown and
// virtual namespaces fall back to the main namespace.
func (r *pageCreationRouter) hintNamespace(hint string) wiki.NamespaceID {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return wiki.NamespaceMain
	}
	id, ok := r.namespaces.CanonicalIndex(hint)
	if !ok {
		slog.Debug("unknown namespace hint", "category", "createpage", "hint", hint)
		return wiki.NamespaceMain
	}
	if ns, _ := r.namespaces.Get(id); ns.IsVirtual() {
		return wiki.NamespaceMain
	}
	return id
}

func (r *pageCreationRouter) Route(ctx context.Context, rawTitle, namespaceHint string) (*wiki.RoutingDecision, error) {
	self := r.urls.SpecialURL(CreatePageName)

	if strings.TrimSpace(rawTitle) == "" {
		return &wiki.RoutingDecision{Kind: wiki.DecisionRedirect, TargetURL: self}, nil
	}

	title, err := r.Resolve(rawTitle, namespaceHint)
	if err != nil {
		return nil, err
	}

	exists, err := r.pages.PageExists(ctx, title)
	if err != nil {
		return nil, err
	}

	editURL := r.urls.EditURL(title, r.editor.UseRichEditor(ctx))

	if exists {
		slog.Debug("page already exists", "category", "createpage", "action", "route", "page", title.PrefixedText())
		return &wiki.RoutingDecision{
			Kind:     wiki.DecisionAlreadyExists,
			Title:    title,
			EditURL:  editURL,
			RetryURL: self,
		}, nil
	}

	slog.Debug("redirecting to editor", "category", "createpage", "action", "route", "page", title.PrefixedText())
	return &wiki.RoutingDecision{
		Kind:      wiki.DecisionRedirect,
		Title:     title,
		TargetURL: editURL,
	}, nil
}
