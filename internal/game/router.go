// internal/game/router.go
//
// InteractionRouter: the single mutation protocol for letters moving
// between bank and board. Pointer clicks and key presses both resolve to
// Place or Unplace here.
//
// Every operation checks all of its preconditions before touching state,
// so a slot never shows a letter whose bank item is still present.

package game

import "unicode"

// Router mutates one round on behalf of user input.
type Router struct {
	round *Round
	audio Audio
}

// NewRouter binds a router to rd. audio may be nil.
func NewRouter(rd *Round, audio Audio) *Router {
	if audio == nil {
		audio = NopAudio{}
	}
	return &Router{round: rd, audio: audio}
}

// Place moves bank item id into the first empty slot.
func (r *Router) Place(id ItemID) error {
	it, ok := r.round.Bank.Get(id)
	if !ok {
		return ErrItemNotInBank
	}
	slot, ok := r.round.Board.FirstEmpty()
	if !ok {
		return ErrBoardFull
	}
	// Both preconditions hold, neither mutation can fail.
	_ = r.round.Board.Fill(slot, it.Letter)
	_, _ = r.round.Bank.Remove(id)
	r.audio.PlayLetter(it.Letter)
	return nil
}

// Unplace returns the letter in slot i to the end of the bank.
func (r *Router) Unplace(i int) error {
	l, err := r.round.Board.Clear(i)
	if err != nil {
		return err
	}
	r.round.Bank.Add(l)
	return nil
}

// PlaceLetter is the keyboard form of Place: it uses the first bank item
// matching ch, ignoring case.
func (r *Router) PlaceLetter(ch rune) error {
	it, ok := r.round.Bank.FindLetter(ch)
	if !ok {
		return ErrNoSuchLetter
	}
	return r.Place(it.ID)
}

// UnplaceLast is the Backspace form of Unplace.
func (r *Router) UnplaceLast() error {
	i, ok := r.round.Board.LastFilled()
	if !ok {
		return ErrBoardEmpty
	}
	return r.Unplace(i)
}

// isLetterKey reports whether key is a single ASCII letter.
func isLetterKey(key string) (rune, bool) {
	if len(key) != 1 {
		return 0, false
	}
	r := rune(key[0])
	if r > unicode.MaxASCII || !unicode.IsLetter(r) {
		return 0, false
	}
	return r, true
}
