// Package web renders the landing/login and dashboard pages.
package web

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

// IndexData feeds the landing page; Error is shown above the login form.
type IndexData struct {
	Error string
}

// Render executes the named page template.
func Render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
