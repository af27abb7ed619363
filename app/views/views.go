// Package views parses the HTML templates of the blog. The templates are
// embedded in the binary; a directory with the same layout can replace them.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Page names accepted by Render.
const (
	Index = "index"
	Show  = "show"
	New   = "new"
)

//go:embed templates
var embedded embed.FS

var pages = map[string][]string{
	Index: {"layout.html", "posts/index.html"},
	Show:  {"layout.html", "posts/show.html"},
	New:   {"layout.html", "posts/new.html"},
}

// Views holds one parsed template set per page.
type Views struct {
	templates map[string]*template.Template
}

// Load parses the templates found in dir, or the embedded ones when dir is
// empty.
func Load(dir string) (*Views, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	funcs := template.FuncMap{
		"markdown": func(src string) (template.HTML, error) {
			var buf bytes.Buffer
			if err := md.Convert([]byte(src), &buf); err != nil {
				return "", err
			}
			// Raw HTML in the source is dropped by goldmark's default renderer.
			return template.HTML(buf.String()), nil
		},
	}

	v := &Views{templates: make(map[string]*template.Template, len(pages))}
	for name, files := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		v.templates[name] = tmpl
	}
	return v, nil
}

// Render executes the layout of the named page into w.
func (v *Views) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := v.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
