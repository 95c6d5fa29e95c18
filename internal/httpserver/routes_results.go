package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/battleships/internal/results"
)

// mountResults registers /results/leaderboard and /results/mine.
func (s *Server) mountResults(r chi.Router) {
	r.Route("/results", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/mine", s.handleMyResults)
	})
}

// handleLeaderboard serves the top winning scores, optionally for one
// ?date=YYYY-MM-DD. ?date=today means the current UTC day.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "today" {
		date = results.DateKey(time.Now())
	} else if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_date"})
			return
		}
	}
	rows, err := s.results.Leaderboard(r.Context(), date, queryLimit(r, 20))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db_error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "rows": rows})
}

func (s *Server) handleMyResults(w http.ResponseWriter, r *http.Request) {
	out, err := s.results.ForOwner(r.Context(), s.matchID(w, r), queryLimit(r, 50))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db_error"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// queryLimit reads ?limit=, clamped to 1..100.
func queryLimit(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > 100 {
		return 100
	}
	return n
}
