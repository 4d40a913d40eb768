package web

import (
	"log"
	"net/http"
	"time"
)

func (s *Server) statsRatings(w http.ResponseWriter, r *http.Request) {
	svg, err := s.back.GetRatingsDistributionGraph()
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 1*time.Hour)
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(svg); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}
