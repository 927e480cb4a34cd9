package wiki

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxTitleBytes is the longest local name, in bytes, a stored page may have.
const MaxTitleBytes = 255

// Title is a fully qualified, normalised page title.
type Title struct {
	Namespace     NamespaceID
	NamespaceName string
	LocalName     string // spaces, never underscores
	Fragment      string
}

// DBKey returns the local name with spaces replaced by underscores.
func (t *Title) DBKey() string {
	return strings.ReplaceAll(t.LocalName, " ", "_")
}

// PrefixedText returns the title as a reader would type it, e.g. "Template:Foo bar".
func (t *Title) PrefixedText() string {
	if t.NamespaceName == "" {
		return t.LocalName
	}
	return t.NamespaceName + ":" + t.LocalName
}

// PrefixedDBKey returns the title in URL form, e.g. "Template:Foo_bar".
func (t *Title) PrefixedDBKey() string {
	return strings.ReplaceAll(t.PrefixedText(), " ", "_")
}

// DisplayTitle implements Page.
func (t *Title) DisplayTitle() string {
	return t.PrefixedText()
}

func (t *Title) String() string {
	return t.PrefixedText()
}

var (
	percentEncoded = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
	htmlEntity     = regexp.MustCompile(`&[A-Za-z0-9\x{80}-\x{10FFFF}]+;`)
)

// TitleParser turns user-entered text into a Title using the namespace table.
type TitleParser struct {
	namespaces *NamespaceRegistry
}

// NewTitleParser creates a TitleParser backed by the given namespace table.
func NewTitleParser(namespaces *NamespaceRegistry) *TitleParser {
	return &TitleParser{namespaces: namespaces}
}

// Parse normalises text into a Title. A recognised "Namespace:" prefix in
// text takes precedence over defaultNS; any other colon is part of the name.
// Malformed input yields a *MalformedTitleError.
func (p *TitleParser) Parse(text string, defaultNS NamespaceID) (*Title, error) {
	if !utf8.ValidString(text) {
		return nil, malformed(text, "contains invalid UTF-8")
	}

	key := normalizeWhitespace(stripBidi(norm.NFC.String(text)))
	if key == "" {
		return nil, malformed(text, "title is empty")
	}

	ns := defaultNS
	if key[0] == ':' {
		ns = NamespaceMain
		key = strings.TrimLeft(key[1:], " ")
	}

	if i := strings.IndexByte(key, ':'); i > 0 {
		prefix := strings.TrimRight(key[:i], " ")
		if id, ok := p.namespaces.CanonicalIndex(prefix); ok {
			ns = id
			key = strings.TrimLeft(key[i+1:], " ")
		}
	}

	namespace, ok := p.namespaces.Get(ns)
	if !ok {
		return nil, malformed(text, "unknown namespace")
	}
	if namespace.IsVirtual() {
		return nil, malformed(text, "pages cannot be created in the "+namespace.Name+" namespace")
	}

	var fragment string
	if i := strings.IndexByte(key, '#'); i >= 0 {
		fragment = strings.TrimSpace(key[i+1:])
		key = strings.TrimRight(key[:i], " ")
	}

	if err := validateLocalName(text, key); err != nil {
		return nil, err
	}

	if !namespace.CaseSensitive {
		key = upperFirst(key)
	}

	return &Title{
		Namespace:     ns,
		NamespaceName: namespace.Name,
		LocalName:     key,
		Fragment:      fragment,
	}, nil
}

func validateLocalName(text, key string) error {
	switch {
	case key == "":
		return malformed(text, "title has no name after the namespace prefix")
	case key[0] == ':':
		return malformed(text, "title starts with a colon")
	case len(key) > MaxTitleBytes:
		return malformed(text, "title exceeds 255 bytes")
	case strings.Contains(key, "~~~"):
		return malformed(text, "title contains three or more consecutive tildes")
	case percentEncoded.MatchString(key):
		return malformed(text, "title contains a percent-encoded character")
	case htmlEntity.MatchString(key):
		return malformed(text, "title contains an HTML entity")
	case isRelativePath(key):
		return malformed(text, "title is a relative path")
	}

	for _, c := range key {
		if c < 0x20 || c == 0x7f || strings.ContainsRune("#<>[]|{}", c) {
			return malformed(text, "title contains the forbidden character "+quoteRune(c))
		}
	}
	return nil
}

func isRelativePath(key string) bool {
	if key == "." || key == ".." {
		return true
	}
	if strings.HasPrefix(key, "./") || strings.HasPrefix(key, "../") {
		return true
	}
	if strings.Contains(key, "/./") || strings.Contains(key, "/../") {
		return true
	}
	return strings.HasSuffix(key, "/.") || strings.HasSuffix(key, "/..")
}

// stripBidi removes directional marks that browsers insert when copying text.
func stripBidi(s string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c == '\u200e', c == '\u200f':
			return -1
		case c >= '\u202a' && c <= '\u202e':
			return -1
		}
		return c
	}, s)
}

// normalizeWhitespace collapses runs of underscores and space separators to a
// single space and trims both ends. Other control characters are kept so
// validation can reject them.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, c := range s {
		if c == '_' || unicode.Is(unicode.Zs, c) || c == '\u2028' || c == '\u2029' {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(c)
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}

func quoteRune(c rune) string {
	if unicode.IsPrint(c) {
		return strconv.QuoteRune(c)
	}
	return fmt.Sprintf("U+%04X", c)
}
