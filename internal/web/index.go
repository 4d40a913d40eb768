package web

import (
	"inhouse/internal/back"
	"net/http"
	"time"
)

// index serves the leaderboard and the recent matches feed.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.cache(w, "public", 5*time.Minute)
	s.response(w, r, http.StatusOK, "index.html", s.getIndexTemplateData())
}

type indexTemplateData struct {
	Stats       back.Stats
	Leaderboard []back.LeaderboardEntry
	Matches     []back.MatchCard
}

func (s *Server) getIndexTemplateData() indexTemplateData {
	return indexTemplateData{
		Stats:       s.back.GetStats(),
		Leaderboard: s.back.GetLeaderboard(),
		Matches:     s.back.GetRecentMatches(s.conf.RecentMatches),
	}
}
