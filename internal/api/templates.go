package api

import (
	"embed"
	"html/template"

	"github.com/lox/bcwildfires/internal/render"
)

//go:embed templates/*
var templateFS embed.FS

// newTemplates parses the page templates. Surface ids are exposed as
// functions so the page script and the renderers agree on them.
func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"mapID":          func() string { return render.MapID },
		"temporalID":     func() string { return render.TemporalID },
		"mapContainerID": func() string { return render.MapContainerID },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
