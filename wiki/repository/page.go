package repository

import (
	"context"

	"github.com/danielledeleo/createpage/wiki"
)

// PageRepository defines the interface for page store operations.
type PageRepository interface {
	// SelectPageExists reports whether a page is stored under namespace and dbkey.
	SelectPageExists(ctx context.Context, namespace wiki.NamespaceID, dbkey string) (bool, error)

	// InsertPage stores a new page. It returns wiki.ErrPageAlreadyExists if the
	// page is already present.
	InsertPage(ctx context.Context, namespace wiki.NamespaceID, dbkey string) error

	// DeletePage removes a page. It returns wiki.ErrGenericNotFound if the page
	// is not present.
	DeletePage(ctx context.Context, namespace wiki.NamespaceID, dbkey string) error

	// SelectAllPages returns every stored page ordered by namespace and title.
	SelectAllPages(ctx context.Context) ([]*wiki.PageSummary, error)
}
