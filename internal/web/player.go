package web

import (
	"errors"
	"inhouse/internal/back"
	"net/http"
	"time"

	"github.com/go-chi/chi"
)

func (s *Server) getOnePlayer(w http.ResponseWriter, r *http.Request) {
	data, err := s.getPlayerTemplateData(chi.URLParam(r, "id"))
	if errors.Is(err, back.ErrPlayerNotFound) {
		s.error(w, r, err, http.StatusNotFound)
		return
	}
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 5*time.Minute)
	s.response(w, r, http.StatusOK, "one_player.html", data)
}

type playerTemplateData struct {
	Player  back.LeaderboardEntry
	Matches []back.PlayerMatch
}

func (s *Server) getPlayerTemplateData(steamID string) (playerTemplateData, error) {
	player, err := s.back.GetPlayer(steamID)
	if err != nil {
		return playerTemplateData{}, err
	}

	matches, err := s.back.GetPlayerMatches(steamID)
	if err != nil {
		return playerTemplateData{}, err
	}

	return playerTemplateData{
		Player:  player,
		Matches: matches,
	}, nil
}
