// Package render implements echo.Renderer over the embedded HTML templates.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layout = "templates/base.html"

// Renderer holds one template set per page, each composed with the layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template in the embedded set.
func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layout {
			continue
		}
		t, err := template.New(path.Base(layout)).Funcs(funcs).ParseFS(templateFS, layout, f)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", f, err)
		}
		r.pages[path.Base(f)] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer. name is the page file name, e.g. "home.html".
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, path.Base(layout), data)
}

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}
