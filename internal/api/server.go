package api

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/bcwildfires/internal/imagegen"
	"github.com/lox/bcwildfires/internal/layout"
)

// DefaultViewport sizes the server-rendered page before the browser
// reports its real size.
var DefaultViewport = layout.Viewport{Width: 1280, Height: 800, ContainerWidth: 1280}

type Server struct {
	controller   *layout.Controller
	port         string
	tmpl         *template.Template
	ogImageCache *imagegen.OGImageCache
	viewport     layout.Viewport
}

func NewServer(controller *layout.Controller, port string) *Server {
	return &Server{
		controller:   controller,
		port:         port,
		tmpl:         newTemplates(),
		ogImageCache: imagegen.NewOGImageCache(time.Hour),
		viewport:     DefaultViewport,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/svg/map", s.handleSVG(mapSurface))
	mux.HandleFunc("/svg/temporal", s.handleSVG(temporalSurface))
	mux.HandleFunc("/api/series", s.handleAPISeries)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/og-image.png", s.handleOGImage)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
