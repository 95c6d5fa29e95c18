package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/battleships/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a session error to a status code and a JSON body.
// Internal errors are logged and reported without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := session.Classify(err)
	status := http.StatusInternalServerError
	switch kind {
	case session.KindValidation:
		status = http.StatusBadRequest
	case session.KindNotFound:
		status = http.StatusNotFound
	case session.KindState:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, status, map[string]string{"error": kind.String()})
		return
	}
	writeJSON(w, status, map[string]string{"error": kind.String(), "message": err.Error()})
}
