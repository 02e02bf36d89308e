// Package templates embeds the HTML views.
package templates

import (
	"MediCore/models"
	"embed"
	"html/template"
	"time"
)

//go:embed *.html
var files embed.FS

// FuncMap holds the helpers available to every view.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.UTC().Format("2006-01-02")
		},
		"datetime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"weekday": models.WeekdayName,
	}
}

// Parse parses every embedded view. Templates are named after their file.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(files, "*.html")
}
