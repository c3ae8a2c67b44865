package api

import (
	"log"
	"net/http"

	"github.com/lox/bcwildfires/internal/imagegen"
)

// handleOGImage serves a raster preview of the map for social media cards.
// The scene never changes after load, so the cache only bounds how often
// the PNG is re-encoded.
func (s *Server) handleOGImage(w http.ResponseWriter, r *http.Request) {
	if data, ok := s.ogImageCache.Get(); ok {
		s.servePNG(w, data)
		return
	}

	data, err := imagegen.RenderMapPNG(s.controller.Scene(), s.controller.Settings(), imagegen.OGWidth, imagegen.OGHeight)
	if err != nil {
		log.Printf("og-image: failed to generate: %v", err)
		http.Error(w, "Failed to generate preview image", http.StatusInternalServerError)
		return
	}

	s.ogImageCache.Set(data)
	s.servePNG(w, data)
}

func (s *Server) servePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write(data)
}
