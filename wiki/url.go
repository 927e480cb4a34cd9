package wiki

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultArticlePath is where pages live relative to the base URL.
// "$1" is replaced by the prefixed title.
const DefaultArticlePath = "/wiki/$1"

// keep these literal in page paths, like the wiki itself does
var titlePathUnescaper = strings.NewReplacer(
	"%3B", ";", "%40", "@", "%24", "$", "%21", "!", "%2A", "*",
	"%28", "(", "%29", ")", "%2C", ",", "%2F", "/", "%7E", "~", "%3A", ":",
)

// URLBuilder produces absolute URLs for pages and special pages.
type URLBuilder struct {
	base        string
	articlePath string
}

// NewURLBuilder validates baseURL and articlePath and returns a builder.
// An empty articlePath means DefaultArticlePath.
func NewURLBuilder(baseURL, articlePath string) (*URLBuilder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if articlePath == "" {
		articlePath = DefaultArticlePath
	}
	if !strings.HasPrefix(articlePath, "/") || strings.Count(articlePath, "$1") != 1 {
		return nil, fmt.Errorf("article path %q must start with / and contain $1 once", articlePath)
	}

	return &URLBuilder{
		base:        strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/"),
		articlePath: articlePath,
	}, nil
}

// ArticlePathPrefix returns the article path up to the title placeholder,
// e.g. "/wiki/".
func (b *URLBuilder) ArticlePathPrefix() string {
	return strings.TrimSuffix(b.articlePath, "$1")
}

// PageURL returns the URL of a page with optional query parameters.
func (b *URLBuilder) PageURL(t *Title, query url.Values) string {
	return b.pathURL(t.PrefixedDBKey(), query)
}

// EditURL returns the URL of the editor for t. When rich is true the rich
// editor is requested instead of the plain one.
func (b *URLBuilder) EditURL(t *Title, rich bool) string {
	query := url.Values{}
	if rich {
		query.Set("veaction", "edit")
	} else {
		query.Set("action", "edit")
	}
	return b.PageURL(t, query)
}

// SpecialURL returns the URL of a special page, e.g. SpecialURL("CreatePage").
func (b *URLBuilder) SpecialURL(name string) string {
	return b.pathURL("Special:"+name, nil)
}

func (b *URLBuilder) pathURL(dbkey string, query url.Values) string {
	path := strings.Replace(b.articlePath, "$1", EscapeTitlePath(dbkey), 1)
	u := b.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// EscapeTitlePath encodes a title for use in a URL path.
func EscapeTitlePath(dbkey string) string {
	return titlePathUnescaper.Replace(url.PathEscape(dbkey))
}
