// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site
// and the admin screens. Every page template is paired with the base
// layout; standalone templates ship their own <html> skeleton.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"actuweb/internal/middleware"
	"actuweb/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string          // Page title for the <title> tag
	Section   string          // Active nav section (e.g. "actu", "category")
	Session   *session.Data   // Current user session (nil if unauthenticated)
	CSRFToken string          // CSRF token for forms
	Status    int             // HTTP status to write (0 means 200)
	Data      map[string]any  // Page-specific data
	Flashes   []session.Flash // One-time notification messages
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout.
var standaloneTemplates = map[string]bool{
	"login": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// frDate formats a timestamp the way the site displays dates.
			// Accepts time.Time or *time.Time so optional timestamps work.
			"frDate": func(v any) string {
				switch t := v.(type) {
				case time.Time:
					return t.Format("02/01/2006 15:04")
				case *time.Time:
					if t == nil {
						return ""
					}
					return t.Format("02/01/2006 15:04")
				}
				return ""
			},
			"flashStyle": StyleFor,
			"navLinks":   NavLinks,
			"activeClass": func(current, target string) string {
				if current == target {
					return "active"
				}
				return ""
			},
			// int64Eq compares an *int64 pointer with an int64 value.
			"int64Eq": func(ptr *int64, val int64) bool {
				return ptr != nil && *ptr == val
			},
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == "base.html" {
			continue
		}
		tmplName := name[:len(name)-len(filepath.Ext(name))]

		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page using the named template. The CSRF token and
// session are injected from the request context, and Status (when set)
// is written before the body so invalid forms can answer 422.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data.CSRFToken == "" {
		data.CSRFToken = middleware.GetCSRFToken(r)
	}
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Status != 0 {
		w.WriteHeader(data.Status)
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page with the French wording the site uses.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rn.Page(w, r, "error404", &PageData{
		Title:  "Page introuvable",
		Status: http.StatusNotFound,
	})
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
