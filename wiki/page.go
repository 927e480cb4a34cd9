package wiki

import "time"

// Page represents any page that can be displayed with a title.
type Page interface {
	DisplayTitle() string
}

// StaticPage represents a non-content page like a form or an error page.
type StaticPage struct {
	title string
}

// NewStaticPage creates a new StaticPage with the given title.
func NewStaticPage(title string) *StaticPage {
	return &StaticPage{title: title}
}

// DisplayTitle returns the page's display title.
func (p *StaticPage) DisplayTitle() string {
	return p.title
}

// PageSummary is a lightweight stored-page record for listings.
type PageSummary struct {
	ID        int         `db:"id"`
	Namespace NamespaceID `db:"namespace"`
	DBKey     string      `db:"title"`
	Created   time.Time   `db:"-"`
}
