package templater

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"unicode"
	"unicode/utf8"
)

// Templater ecapsulates the map to prevent direct access. See RenderTemplate
type Templater struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
}

func New() *Templater {
	return &Templater{
		funcs: template.FuncMap{
			"capitalize": capitalize,
			"statusText": http.StatusText,
		},
	}
}

// Load loads or reloads template files from fsys. Here, baseGlob refers to
// base templates (usually a wrapper containing headers and such) and
// mainGlobs refer to the templates that are used to fill the base templates.
// Globs are of the io/fs format, i.e. layouts/*.html
func (t *Templater) Load(fsys fs.FS, baseGlob string, mainGlobs ...string) error {
	templates := make(map[string]*template.Template)

	base, err := fs.Glob(fsys, baseGlob)
	if err != nil {
		return err
	}
	if len(base) == 0 {
		return fmt.Errorf("no base templates match %s", baseGlob)
	}

	for _, glob := range mainGlobs {
		layouts, err := fs.Glob(fsys, glob)
		if err != nil {
			return err
		}
		for _, layout := range layouts {
			name := path.Base(layout)
			if _, dup := templates[name]; dup {
				return fmt.Errorf("template %s defined twice", name)
			}
			files := append(append([]string{}, base...), layout)
			tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(fsys, files...)
			if err != nil {
				return err
			}
			templates[name] = tmpl
		}
	}

	t.templates = templates
	return nil
}

// RenderTemplate makes sure templates exist and renders them. Don't mix up name and base!
// Output is buffered so a failed render writes nothing.
func (t *Templater) RenderTemplate(w io.Writer, name string, base string, data map[string]interface{}) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return fmt.Errorf("content template %s does not exist", name)
	}

	if tmpl.Lookup(base) == nil {
		return fmt.Errorf("base template %s does not exist", base)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, base, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + s[size:]
}
