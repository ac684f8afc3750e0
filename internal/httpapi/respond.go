package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// errBadRequest marks malformed request bodies.
var errBadRequest = fmt.Errorf("bad request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps err to a status code and writes it. Unexpected errors are logged
// and reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errors.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, errors.ErrInvalidPlacement),
		errors.Is(err, errors.ErrInvalidSquare),
		errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid seat token")
	default:
		s.log.Error().Err(err).Str("rid", chimw.GetReqID(r.Context())).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// squareRef decodes a square given either as an index or as a name.
type squareRef chess.Square

// UnmarshalJSON accepts 52 or "52" or "e7".
func (s *squareRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = squareRef(n)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("square must be a number or a name: %w", errors.ErrInvalidSquare)
	}
	sq, err := chess.ParseSquare(text)
	if err != nil {
		return err
	}
	*s = squareRef(sq)
	return nil
}
