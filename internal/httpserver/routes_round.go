// internal/httpserver/routes_round.go
//
// Input surface for the round engine.
//   - GET  /round          → current snapshot (+ pending events)
//   - POST /round/place    → {"item":N}   click a bank item
//   - POST /round/unplace  → {"slot":N}   click a filled slot
//   - POST /round/key      → {"key":"a"}  key press (letters, Backspace, Enter, ArrowRight)
//   - POST /round/check    → check-answer control
//   - POST /round/skip     → next word, no reward or penalty
//   - POST /round/input    → any game.Input
//   - GET  /ws             → websocket; pushes events, accepts game.Input
//
// Each REST response carries the snapshot after the action and every
// event emitted since the previous response (including timer-driven ones
// such as the delayed advance).

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellbank/internal/feedback"
	"github.com/robalobadob/spellbank/internal/game"
)

const maxInputBody = 4 << 10

type roundRes struct {
	Round   game.Snapshot    `json:"round"`
	Verdict game.Verdict     `json:"verdict,omitempty"`
	Events  []feedback.Event `json:"events"`
}

// mountRound registers the /round routes.
func (s *Server) mountRound(r chi.Router) {
	r.Route("/round", func(r chi.Router) {
		r.Get("/", s.handleRound)
		r.Post("/place", s.handleInput(game.InputItem))
		r.Post("/unplace", s.handleInput(game.InputSlot))
		r.Post("/key", s.handleInput(game.InputKey))
		r.Post("/check", s.handleInput(game.InputCheck))
		r.Post("/skip", s.handleInput(game.InputSkip))
		r.Post("/input", s.handleInput(""))
	})
}

// session resolves the caller's player ID and live session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	player := s.playerID(w, r)
	sess, err := s.sessions.get(player, s.opts.Now())
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("start session")
		writeError(w, http.StatusInternalServerError, "session_failed")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(roundRes{Round: sess.ctrl.Snapshot(), Events: sess.events.Drain()})
}

// handleInput decodes a game.Input body. A non-empty kind is forced onto
// the input, and an empty body is allowed for check and skip.
func (s *Server) handleInput(kind game.InputKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxInputBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_body")
			return
		}
		in, err := game.ParseInput(body, kind)
		if err != nil {
			log.Debug().Err(err).Msg("round input rejected")
			writeError(w, http.StatusBadRequest, "bad_input")
			return
		}

		player := s.playerID(w, r)
		sess, v, checked, err := s.dispatch(player, in)
		if err != nil {
			log.Error().Err(err).Str("player", player).Msg("round input")
			writeError(w, http.StatusInternalServerError, "session_failed")
			return
		}
		res := roundRes{Round: sess.ctrl.Snapshot(), Events: sess.events.Drain()}
		if checked {
			res.Verdict = v
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// dispatch applies in to the player's live session. A session closed under
// us (login claim, idle sweep) is looked up again once.
func (s *Server) dispatch(player string, in game.Input) (*session, game.Verdict, bool, error) {
	for tries := 0; ; tries++ {
		sess, err := s.sessions.get(player, s.opts.Now())
		if err != nil {
			return nil, "", false, err
		}
		v, checked, err := sess.ctrl.Dispatch(in)
		if errors.Is(err, game.ErrClosed) && tries == 0 {
			continue
		}
		return sess, v, checked, err
	}
}

// handleWS streams the player's events and applies inputs sent over the socket.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	player := sess.player
	s.hub.ServeWS(w, r, player, func(in game.Input) {
		if _, _, _, err := s.dispatch(player, in); err != nil {
			log.Warn().Err(err).Str("player", player).Msg("ws input")
		}
	})
}
