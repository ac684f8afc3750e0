package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/render"
)

// stateResponse is the JSON form of a game.
type stateResponse struct {
	Board     chess.Board    `json:"board"`
	Turn      chess.Color    `json:"turn"`
	EnPassant *chess.Square  `json:"enPassant"` // null when there is no target
	Placement string         `json:"placement"`
	Summary   engine.Summary `json:"summary"`
}

func newState(e *engine.Engine) stateResponse {
	st := stateResponse{
		Board:     e.Board(),
		Turn:      e.Turn(),
		Placement: e.Placement(),
		Summary:   e.Summary(),
	}
	if ep, ok := e.EnPassant(); ok {
		st.EnPassant = &ep
	}
	return st
}

type createRequest struct {
	Placement string `json:"placement"`
}

type createResponse struct {
	GameID string        `json:"gameId"`
	Token  string        `json:"token"`
	State  stateResponse `json:"state"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	snap, err := s.games.Create(r.Context(), req.Placement)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	token, err := s.tokens.Issue(snap.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	e, err := engine.FromPosition(snap.Position)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{
		GameID: snap.ID,
		Token:  token,
		State:  newState(e),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var st stateResponse
	err := s.games.View(r.Context(), chi.URLParam(r, "id"), func(e *engine.Engine) error {
		st = newState(e)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type movesResponse struct {
	Square chess.Square   `json:"square"`
	Moves  []chess.Square `json:"moves"` // null when the square has no piece of the side to move
}

func (s *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	sq, err := chess.ParseSquare(chi.URLParam(r, "square"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res := movesResponse{Square: sq}
	err = s.games.View(r.Context(), chi.URLParam(r, "id"), func(e *engine.Engine) error {
		res.Moves, _ = e.LegalMoves(sq)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type moveRequest struct {
	From squareRef `json:"from"`
	To   squareRef `json:"to"`
}

type moveInfo struct {
	Piece        chess.Piece   `json:"piece"`
	Captured     chess.Piece   `json:"captured"`
	CapturedOn   *chess.Square `json:"capturedOn"`
	EnPassant    bool          `json:"enPassant"`
	DoubleStep   bool          `json:"doubleStep"`
	MoverInCheck bool          `json:"moverInCheck"`
}

type moveResponse struct {
	Applied bool          `json:"applied"`
	Move    *moveInfo     `json:"move,omitempty"`
	State   stateResponse `json:"state"`
}

// handleMove applies a move. A move the engine does not accept is not an
// error: the response says applied=false and the state is unchanged.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, errors.Wrap(badRequest(err), "decode move"))
		return
	}

	var res moveResponse
	_, err := s.games.Update(r.Context(), chi.URLParam(r, "id"), func(e *engine.Engine) error {
		result, ok := e.Move(chess.Square(req.From), chess.Square(req.To))
		res.Applied = ok
		res.State = newState(e)
		if !ok {
			return errors.ErrNoChange
		}

		info := &moveInfo{
			Piece:        result.Moved.Piece,
			Captured:     result.Captured.Piece,
			EnPassant:    result.EnPassant,
			DoubleStep:   result.DoubleStep,
			MoverInCheck: result.MoverInCheck,
		}
		if result.CapturedOn.Valid() {
			on := result.CapturedOn
			info.CapturedOn = &on
		}
		res.Move = info
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	opts := render.DefaultOptions()
	if s.opts.SquareSize > 0 {
		opts.SquareSize = s.opts.SquareSize
	}
	opts.AssetPrefix = s.opts.AssetPrefix

	selected := chess.NoSquare
	if text := r.URL.Query().Get("selected"); text != "" {
		sq, err := chess.ParseSquare(text)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		selected = sq
	}

	var buf bytes.Buffer
	err := s.games.View(r.Context(), chi.URLParam(r, "id"), func(e *engine.Engine) error {
		if selected != chess.NoSquare {
			if moves, ok := e.LegalMoves(selected); ok {
				opts.Selected = selected
				opts.Highlight = moves
			}
		}
		return render.WriteBoardSVG(&buf, e.Board(), opts)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, render.Assets())
}
