package api

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lox/bcwildfires/internal/layout"
)

// IndexData is the page model: both surfaces rendered for the default
// viewport, replaced by the page script once the real size is known.
type IndexData struct {
	Map       template.HTML
	Temporal  template.HTML
	Province  string
	FirstYear int
	LastYear  int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	out, err := s.controller.Rebuild(s.viewport)
	if err != nil {
		log.Printf("index: rebuild: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	settings := s.controller.Settings()
	data := IndexData{
		Map:       template.HTML(out.Map.String()),
		Temporal:  template.HTML(out.Temporal.String()),
		Province:  settings.Province,
		FirstYear: settings.FirstYear,
		LastYear:  settings.LastYear,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("template error: %v", err)
	}
}

var errBadQuery = errors.New("bad viewport query")

// parseViewport reads width, height and container from the query. Missing
// values fall back to def; container falls back to width.
func parseViewport(q url.Values, def layout.Viewport) (layout.Viewport, error) {
	v := def
	read := func(key string, dst *float64) error {
		raw := q.Get(key)
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", errBadQuery, key, raw)
		}
		*dst = f
		return nil
	}

	if err := read("width", &v.Width); err != nil {
		return v, err
	}
	if err := read("height", &v.Height); err != nil {
		return v, err
	}
	if q.Get("width") != "" && q.Get("container") == "" {
		v.ContainerWidth = v.Width
	}
	if err := read("container", &v.ContainerWidth); err != nil {
		return v, err
	}
	return v, v.Validate()
}

func (s *Server) rebuildFromQuery(w http.ResponseWriter, r *http.Request) (*layout.Output, bool) {
	v, err := parseViewport(r.URL.Query(), s.viewport)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	out, err := s.controller.Rebuild(v)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, layout.ErrInvalidViewport) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return nil, false
	}
	return out, true
}

type surface int

const (
	mapSurface surface = iota
	temporalSurface
)

func (s *Server) handleSVG(which surface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, ok := s.rebuildFromQuery(w, r)
		if !ok {
			return
		}
		el := out.Map
		if which == temporalSurface {
			el = out.Temporal
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		if _, err := el.WriteTo(w); err != nil {
			log.Printf("svg: write: %v", err)
		}
	}
}
