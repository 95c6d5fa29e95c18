// internal/httpserver/routes_game.go
//
// HTTP routes for a human vs. computer match. Every route acts on the
// caller's own match: the signed-in user's id, or the guest cookie id.
//   - POST /game/initialize → create the match (409 if one exists)
//   - GET  /game/status     → whether a match exists
//   - POST /game/shoot      → {row:"B", column:7}; player shot + computer counter-shot
//   - GET  /game/board      → both boards, ?reveal=true shows unhit ships
//   - POST /game/reset      → clear shots, keep placement and scores
//   - POST /game/quit       → delete the match

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/battleships/internal/game"
)

const anonCookieName = "battleships_anon"

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/initialize", s.handleInitialize)
		r.Get("/status", s.handleStatus)
		r.Post("/shoot", s.handleShoot)
		r.Get("/board", s.handleBoard)
		r.Post("/reset", s.handleReset)
		r.Post("/quit", s.handleQuit)
	})
}

// matchID returns the signed-in user's id, or ensures a guest cookie id.
func (s *Server) matchID(w http.ResponseWriter, r *http.Request) string {
	if me := currentUser(r); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	s.setCookie(w, anonCookieName, id, time.Now().Add(180*24*time.Hour), 0)
	return id
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	id := s.matchID(w, r)
	if err := s.svc.Initialize(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	rules := s.svc.Rules()
	writeJSON(w, http.StatusCreated, map[string]any{
		"matchId":   id,
		"boardSize": rules.BoardSize,
		"fleet":     rules.Fleet,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := s.matchID(w, r)
	ok, err := s.svc.IsInitiated(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matchId": id, "initiated": ok})
}

type shootReq struct {
	Row    string `json:"row"`
	Column int    `json:"column"`
}

func (s *Server) handleShoot(w http.ResponseWriter, r *http.Request) {
	var req shootReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	if utf8.RuneCountInString(req.Row) != 1 {
		writeError(w, r, fmt.Errorf("%w: row %q", game.ErrInvalidPosition, req.Row))
		return
	}
	row, _ := utf8.DecodeRuneInString(req.Row)

	report, err := s.svc.Shoot(r.Context(), s.matchID(w, r), row, req.Column)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	reveal := false
	if v := r.URL.Query().Get("reveal"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_reveal"})
			return
		}
		reveal = b
	}
	view, err := s.svc.Boards(r.Context(), s.matchID(w, r), reveal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reset(r.Context(), s.matchID(w, r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Quit(r.Context(), s.matchID(w, r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
