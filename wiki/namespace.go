package wiki

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// NamespaceID identifies a namespace. Negative ids are virtual namespaces
// whose pages are generated rather than stored.
type NamespaceID int

// Built-in namespace ids.
const (
	NamespaceMedia         NamespaceID = -2
	NamespaceSpecial       NamespaceID = -1
	NamespaceMain          NamespaceID = 0
	NamespaceTalk          NamespaceID = 1
	NamespaceUser          NamespaceID = 2
	NamespaceUserTalk      NamespaceID = 3
	NamespaceProject       NamespaceID = 4
	NamespaceProjectTalk   NamespaceID = 5
	NamespaceFile          NamespaceID = 6
	NamespaceFileTalk      NamespaceID = 7
	NamespaceMediaWiki     NamespaceID = 8
	NamespaceMediaWikiTalk NamespaceID = 9
	NamespaceTemplate      NamespaceID = 10
	NamespaceTemplateTalk  NamespaceID = 11
	NamespaceHelp          NamespaceID = 12
	NamespaceHelpTalk      NamespaceID = 13
	NamespaceCategory      NamespaceID = 14
	NamespaceCategoryTalk  NamespaceID = 15
)

// Namespace is a logical partition of the page store.
type Namespace struct {
	ID            NamespaceID
	Name          string
	Aliases       []string
	CaseSensitive bool
}

// IsVirtual reports whether pages can never be stored in the namespace.
func (ns Namespace) IsVirtual() bool {
	return ns.ID < 0
}

// IsTalk reports whether the namespace holds discussion pages.
func (ns Namespace) IsTalk() bool {
	return ns.ID > 0 && ns.ID%2 == 1
}

// DefaultNamespaces returns the built-in namespace table. The project
// namespace is displayed under projectName and keeps "Project" as an alias.
func DefaultNamespaces(projectName string) []Namespace {
	project := "Project"
	var projectAliases, projectTalkAliases []string
	if projectName != "" && !strings.EqualFold(projectName, project) {
		project = projectName
		projectAliases = []string{"Project"}
		projectTalkAliases = []string{"Project talk"}
	}

	return []Namespace{
		{ID: NamespaceMedia, Name: "Media"},
		{ID: NamespaceSpecial, Name: "Special"},
		{ID: NamespaceMain, Name: ""},
		{ID: NamespaceTalk, Name: "Talk"},
		{ID: NamespaceUser, Name: "User"},
		{ID: NamespaceUserTalk, Name: "User talk"},
		{ID: NamespaceProject, Name: project, Aliases: projectAliases},
		{ID: NamespaceProjectTalk, Name: project + " talk", Aliases: projectTalkAliases},
		{ID: NamespaceFile, Name: "File", Aliases: []string{"Image"}},
		{ID: NamespaceFileTalk, Name: "File talk", Aliases: []string{"Image talk"}},
		{ID: NamespaceMediaWiki, Name: "MediaWiki"},
		{ID: NamespaceMediaWikiTalk, Name: "MediaWiki talk"},
		{ID: NamespaceTemplate, Name: "Template"},
		{ID: NamespaceTemplateTalk, Name: "Template talk"},
		{ID: NamespaceHelp, Name: "Help"},
		{ID: NamespaceHelpTalk, Name: "Help talk"},
		{ID: NamespaceCategory, Name: "Category"},
		{ID: NamespaceCategoryTalk, Name: "Category talk"},
	}
}

// NamespaceRegistry maps namespace names and aliases to ids.
// It is read-only after construction and safe for concurrent use.
type NamespaceRegistry struct {
	byID   map[NamespaceID]Namespace
	byName map[string]NamespaceID
}

// NewNamespaceRegistry builds a registry from the given namespaces.
// Duplicate ids or names are rejected.
func NewNamespaceRegistry(namespaces ...Namespace) (*NamespaceRegistry, error) {
	r := &NamespaceRegistry{
		byID:   make(map[NamespaceID]Namespace, len(namespaces)),
		byName: make(map[string]NamespaceID, len(namespaces)*2),
	}

	for _, ns := range namespaces {
		if _, dup := r.byID[ns.ID]; dup {
			return nil, fmt.Errorf("duplicate namespace id %d", ns.ID)
		}
		r.byID[ns.ID] = ns

		names := append([]string{ns.Name}, ns.Aliases...)
		for _, name := range names {
			key := r.key(name)
			if key == "" {
				continue
			}
			if other, dup := r.byName[key]; dup && other != ns.ID {
				return nil, fmt.Errorf("namespace name %q used by both %d and %d", name, other, ns.ID)
			}
			r.byName[key] = ns.ID
		}
	}

	if _, ok := r.byID[NamespaceMain]; !ok {
		return nil, fmt.Errorf("main namespace is not defined")
	}

	return r, nil
}

// NewNamespaceRegistryFromConfig builds the default table and applies the
// namespaces listed in the config. Entries whose id already exists add aliases
// to that namespace.
func NewNamespaceRegistryFromConfig(conf *Config) (*NamespaceRegistry, error) {
	namespaces := DefaultNamespaces(conf.ProjectName)

	index := make(map[NamespaceID]int, len(namespaces))
	for i, ns := range namespaces {
		index[ns.ID] = i
	}

	for _, nc := range conf.Namespaces {
		id := NamespaceID(nc.ID)
		if i, ok := index[id]; ok {
			namespaces[i].Aliases = append(namespaces[i].Aliases, nc.Aliases...)
			if nc.Name != "" && nc.Name != namespaces[i].Name {
				namespaces[i].Aliases = append(namespaces[i].Aliases, nc.Name)
			}
			namespaces[i].CaseSensitive = namespaces[i].CaseSensitive || nc.CaseSensitive
			continue
		}
		if nc.Name == "" {
			return nil, fmt.Errorf("namespace %d has no name", nc.ID)
		}
		index[id] = len(namespaces)
		namespaces = append(namespaces, Namespace{
			ID:            id,
			Name:          nc.Name,
			Aliases:       nc.Aliases,
			CaseSensitive: nc.CaseSensitive,
		})
	}

	return NewNamespaceRegistry(namespaces...)
}

// CanonicalIndex looks up a namespace by display name or alias. Matching is
// case-insensitive and treats underscores as spaces.
func (r *NamespaceRegistry) CanonicalIndex(name string) (NamespaceID, bool) {
	key := r.key(name)
	if key == "" {
		return NamespaceMain, false
	}
	id, ok := r.byName[key]
	return id, ok
}

// Get returns the namespace with the given id.
func (r *NamespaceRegistry) Get(id NamespaceID) (Namespace, bool) {
	ns, ok := r.byID[id]
	return ns, ok
}

// Name returns the display name of a namespace, or "" if unknown.
func (r *NamespaceRegistry) Name(id NamespaceID) string {
	return r.byID[id].Name
}

// All returns every namespace ordered by id.
func (r *NamespaceRegistry) All() []Namespace {
	all := make([]Namespace, 0, len(r.byID))
	for _, ns := range r.byID {
		all = append(all, ns)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (r *NamespaceRegistry) key(name string) string {
	name = strings.Map(func(c rune) rune {
		if c == '_' || unicode.IsSpace(c) {
			return ' '
		}
		return c
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	// A Caser holds state, so each lookup gets its own.
	return cases.Fold().String(name)
}
