// internal/game/engine.go
//
// RoundController: owns the live round and drives its lifecycle.
//
//	Setup → AwaitingInput → Validating → Celebrating → Advancing → Setup
//	                              ↘ (incorrect) AwaitingInput
//
// Responsibilities:
//   - Restore balance and word index from Persistence on construction.
//   - Route pointer and keyboard input through the Router.
//   - Validate on Enter/check, apply reward or penalty, flash, persist.
//   - After a correct answer wait CelebrateDelay, then advance.
//   - ArrowRight/skip advances at once with no currency change.
//
// Notes:
//   - Every exported method takes the controller lock, and so do timer
//     callbacks. Game logic therefore runs as if on one thread.
//   - A skip during Celebrating cancels the pending advance. A timer that
//     fires for a round that has since been replaced does nothing.
//   - InvalidOperation (full board, empty slot, unknown item) is a no-op.

package game

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// CelebrateDelay separates a correct verdict from the round advance.
	CelebrateDelay = 700 * time.Millisecond
	// FlashDuration bounds the correct/wrong board highlight.
	FlashDuration = 600 * time.Millisecond
)

// InputKind names an input event.
type InputKind string

const (
	InputSlot  InputKind = "slot"  // pointer on a slot
	InputItem  InputKind = "item"  // pointer on a bank item
	InputKey   InputKind = "key"   // key press, browser KeyboardEvent.key naming
	InputCheck InputKind = "check" // check-answer control
	InputSkip  InputKind = "skip"
)

// Input is one user action from any source.
type Input struct {
	Kind InputKind `json:"kind"`
	Slot int       `json:"slot,omitempty"`
	Item ItemID    `json:"item,omitempty"`
	Key  string    `json:"key,omitempty"`
}

// Options wires a Controller. Words and RNG are required; the rest fall
// back to no-op or in-memory implementations.
type Options struct {
	Words    WordSource
	RNG      RNG
	Store    Persistence
	Audio    Audio
	Visual   Visual
	Recorder Recorder
	Clock    Scheduler
}

// Controller is the RoundController for one player.
type Controller struct {
	mu sync.Mutex

	words  WordSource
	rng    RNG
	store  Persistence
	audio  Audio
	visual Visual
	rec    Recorder
	clock  Scheduler

	ledger *Ledger
	round  *Round
	router *Router
	phase  Phase
	gen    uint64 // bumped on every Setup
	closed bool

	stopAdvance func() bool
	stopFlash   func() bool
	flashGen    uint64
}

// NewController restores persisted progress and sets up the first round.
func NewController(o Options) (*Controller, error) {
	if o.Words == nil || o.Words.Len() == 0 {
		return nil, errors.New("game: word source is empty")
	}
	if o.RNG == nil {
		return nil, errors.New("game: rng is required")
	}
	c := &Controller{
		words:  o.Words,
		rng:    o.RNG,
		store:  o.Store,
		audio:  o.Audio,
		visual: o.Visual,
		rec:    o.Recorder,
		clock:  o.Clock,
	}
	if c.store == nil {
		c.store = memPersistence{}
	}
	if c.audio == nil {
		c.audio = NopAudio{}
	}
	if c.visual == nil {
		c.visual = NopVisual{}
	}
	if c.rec == nil {
		c.rec = NopRecorder{}
	}
	if c.clock == nil {
		c.clock = WallClock{}
	}

	c.words.Seek(c.store.LoadInt(KeyIndex, 0))
	c.ledger = NewLedger(c.store.LoadInt(KeyCoins, 0))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setup()
	return c, nil
}

// Handle dispatches any input. The verdict is only meaningful when ok.
// Input to a closed controller is dropped.
func (c *Controller) Handle(in Input) (v Verdict, ok bool) {
	v, ok, _ = c.Dispatch(in)
	return v, ok
}

// Dispatch is Handle that reports ErrClosed instead of dropping input
// after Close, so callers can retry on a fresh controller.
func (c *Controller) Dispatch(in Input) (v Verdict, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", false, ErrClosed
	}
	switch in.Kind {
	case InputSlot:
		c.apply("unplace", c.router.Unplace(in.Slot))
	case InputItem:
		c.apply("place", c.router.Place(in.Item))
	case InputKey:
		v, ok = c.key(in.Key)
	case InputCheck:
		v, ok = c.check()
	case InputSkip:
		c.skip()
	default:
		log.Debug().Str("kind", string(in.Kind)).Msg("unknown input ignored")
	}
	return v, ok, nil
}

// ClickSlot returns a filled slot's letter to the bank.
func (c *Controller) ClickSlot(i int) { c.Handle(Input{Kind: InputSlot, Slot: i}) }

// ClickItem places a bank item in the first empty slot.
func (c *Controller) ClickItem(id ItemID) { c.Handle(Input{Kind: InputItem, Item: id}) }

// Key handles a key press named like KeyboardEvent.key: single letters,
// Backspace, Enter and ArrowRight. Anything else is ignored.
func (c *Controller) Key(key string) (Verdict, bool) {
	return c.Handle(Input{Kind: InputKey, Key: key})
}

// Check validates the board. It is ignored outside AwaitingInput.
func (c *Controller) Check() (Verdict, bool) { return c.Handle(Input{Kind: InputCheck}) }

// Skip advances to the next word without reward or penalty.
func (c *Controller) Skip() { c.Handle(Input{Kind: InputSkip}) }

// Snapshot returns the current view of the round.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Phase reports the lifecycle state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Balance reports the ledger balance.
func (c *Controller) Balance() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Balance()
}

// Close cancels pending timers. Later input is dropped and nothing more
// is persisted.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelAdvance()
	if c.stopFlash != nil {
		c.stopFlash()
		c.stopFlash = nil
	}
	c.gen++
}

func (c *Controller) setup() {
	c.phase = PhaseSetup
	c.gen++
	c.round = NewRound(c.words.Current(), c.rng, c.round)
	c.router = NewRouter(c.round, c.audio)
	c.phase = PhaseAwaiting
	c.visual.Render(c.snapshot())
}

func (c *Controller) key(key string) (Verdict, bool) {
	switch key {
	case "Enter":
		return c.check()
	case "ArrowRight":
		c.skip()
	case "Backspace":
		c.apply("unplace", c.router.UnplaceLast())
	default:
		if r, ok := isLetterKey(key); ok {
			c.apply("place", c.router.PlaceLetter(r))
		}
	}
	return "", false
}

func (c *Controller) apply(op string, err error) {
	switch {
	case err == nil:
		c.visual.Render(c.snapshot())
	case errors.Is(err, ErrInvalidOperation):
		log.Debug().Err(err).Str("op", op).Msg("ignored")
	default:
		log.Warn().Err(err).Str("op", op).Msg("round mutation failed")
	}
}

func (c *Controller) check() (Verdict, bool) {
	if c.phase != PhaseAwaiting {
		return "", false
	}
	c.phase = PhaseValidating
	word := c.round.Word
	v := Validate(c.round.Board.Assembled(), word)
	if v == Correct {
		c.ledger.Add(RewardCorrect)
		c.audio.PlayCorrect()
		c.flash(FlashCorrect)
		c.persist()
		c.phase = PhaseCelebrating
		gen := c.gen
		c.stopAdvance = c.clock.AfterFunc(CelebrateDelay, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.gen != gen || c.phase != PhaseCelebrating {
				return
			}
			c.stopAdvance = nil
			c.advance()
		})
	} else {
		c.ledger.Add(PenaltyWrong)
		c.audio.PlayWrong()
		c.flash(FlashWrong)
		c.persist()
		c.phase = PhaseAwaiting
	}
	c.rec.RecordVerdict(word, v, c.ledger.Balance())
	c.visual.Render(c.snapshot())
	return v, true
}

func (c *Controller) skip() {
	c.cancelAdvance()
	c.rec.RecordSkip(c.round.Word)
	c.advance()
}

func (c *Controller) advance() {
	c.phase = PhaseAdvancing
	c.words.Advance()
	c.persist()
	c.setup()
}

func (c *Controller) cancelAdvance() {
	if c.stopAdvance != nil {
		c.stopAdvance()
		c.stopAdvance = nil
	}
}

func (c *Controller) flash(kind FlashKind) {
	if c.stopFlash != nil {
		c.stopFlash()
	}
	c.flashGen++
	gen := c.flashGen
	c.visual.Flash(kind)
	c.stopFlash = c.clock.AfterFunc(FlashDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.flashGen != gen {
			return
		}
		c.stopFlash = nil
		c.visual.ClearFlash()
	})
}

func (c *Controller) persist() {
	c.store.SaveInt(KeyCoins, c.ledger.Balance())
	c.store.SaveInt(KeyIndex, c.words.Index())
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		Round:   c.gen,
		Index:   c.words.Index(),
		Length:  c.round.Board.Len(),
		Phase:   c.phase,
		Balance: c.ledger.Balance(),
		Slots:   c.round.Board.Slots(),
		Bank:    c.round.Bank.Items(),
	}
}
