package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/orderhub/order-admin/internal/entities"
	"github.com/orderhub/order-admin/internal/format"
)

//go:embed templates
var templatesFS embed.FS

var pages = []string{"list.html", "detail.html", "form.html"}

var funcMap = template.FuncMap{
	"currency":    format.Currency,
	"date":        format.Date,
	"statusClass": format.StatusClass,
	"inCatalog": func(products []entities.Product, id string) bool {
		for _, p := range products {
			if p.ID == id {
				return true
			}
		}
		return false
	},
}

// templateSet holds one compiled template per page, each sharing the
// base layout.
type templateSet struct {
	pages map[string]*template.Template
}

func loadTemplates() (*templateSet, error) {
	set := &templateSet{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New("base.html").Funcs(funcMap).
			ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		set.pages[page] = tmpl
	}
	return set, nil
}

func (s *templateSet) execute(w io.Writer, page string, data any) error {
	tmpl, ok := s.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}
