// internal/httpserver/sessions.go
//
// Live game sessions, one per player.
// Responsibilities:
//   - Build a Controller on first use from stored progress.
//   - Drop sessions on login claims and sweep idle ones.
//   - Record verdicts into metrics and the attempts log.
//
// A dropped session's controller is closed; input that still reaches it
// gets game.ErrClosed and is retried on a fresh session.

package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellbank/internal/daily"
	"github.com/robalobadob/spellbank/internal/feedback"
	"github.com/robalobadob/spellbank/internal/game"
	"github.com/robalobadob/spellbank/internal/store"
	"github.com/robalobadob/spellbank/internal/words"
)

// session is one player's live game.
type session struct {
	player   string
	ctrl     *game.Controller
	events   *feedback.Buffer
	lastSeen time.Time // guarded by registry.mu
}

// registry holds sessions keyed by player ID.
type registry struct {
	mu     sync.Mutex
	m      map[string]*session
	build  func(player string) (*session, error)
	active prometheus.Gauge
}

func newRegistry(build func(string) (*session, error), active prometheus.Gauge) *registry {
	return &registry{m: map[string]*session{}, build: build, active: active}
}

// get returns the player's session, creating it on first use.
func (r *registry) get(player string, now time.Time) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.m[player]; ok {
		s.lastSeen = now
		return s, nil
	}
	s, err := r.build(player)
	if err != nil {
		return nil, err
	}
	s.lastSeen = now
	r.m[player] = s
	r.active.Set(float64(len(r.m)))
	return s, nil
}

// drop closes and forgets a session; the next get rebuilds it from storage.
func (r *registry) drop(player string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.m[player]; ok {
		s.ctrl.Close()
		delete(r.m, player)
		r.active.Set(float64(len(r.m)))
	}
}

// sweep closes sessions idle longer than maxIdle and returns how many.
func (r *registry) sweep(now time.Time, maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.m {
		if now.Sub(s.lastSeen) > maxIdle {
			s.ctrl.Close()
			delete(r.m, id)
			n++
		}
	}
	r.active.Set(float64(len(r.m)))
	return n
}

func (r *registry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.m {
		s.ctrl.Close()
		delete(r.m, id)
	}
	r.active.Set(0)
}

// newSession wires a controller for player: persisted progress, a bank
// RNG seeded per player per day, and feedback to both websocket and the
// REST event buffer.
func (s *Server) newSession(player string) (*session, error) {
	src, err := words.NewSource(s.opts.Words)
	if err != nil {
		return nil, err
	}
	buf := &feedback.Buffer{}
	sink := feedback.Tee{s.hub, buf}
	ctrl, err := game.NewController(game.Options{
		Words:    src,
		RNG:      daily.NewRNG(daily.Seed(s.opts.Now(), s.salt, player)),
		Store:    store.NewProgress(s.store, player),
		Audio:    feedback.NewAudio(sink, player, s.opts.Samples),
		Visual:   feedback.NewVisual(sink, player),
		Recorder: &recorder{srv: s, player: player},
		Clock:    s.opts.Clock,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("player", player).Msg("session started")
	return &session{player: player, ctrl: ctrl, events: buf}, nil
}

// recorder feeds verdicts into metrics and the attempts log.
type recorder struct {
	srv    *Server
	player string
}

func (rc *recorder) RecordVerdict(word string, v game.Verdict, balance int) {
	rc.srv.metrics.verdicts.WithLabelValues(string(v)).Inc()
	rc.srv.metrics.balance.Observe(float64(balance))
	log.Info().Str("player", rc.player).Str("verdict", string(v)).Int("balance", balance).Msg("answer checked")
	if rc.srv.attempts == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := rc.srv.attempts.InsertAttempt(ctx, daily.Attempt{
		PlayerID: rc.player,
		Date:     daily.DateKey(rc.srv.opts.Now()),
		Word:     word,
		Verdict:  string(v),
		Balance:  balance,
	})
	if err != nil {
		log.Warn().Err(err).Str("player", rc.player).Msg("insert attempt")
	}
}

func (rc *recorder) RecordSkip(word string) {
	rc.srv.metrics.skips.Inc()
	log.Debug().Str("player", rc.player).Str("word", word).Msg("word skipped")
}
