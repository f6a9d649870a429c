// internal/game/types.go
//
// Core type definitions for the spelling round engine.
// Defines:
//   - Letter: a single placeable character.
//   - Slot / BankItem: board positions and distinct bank instances.
//   - Verdict / Phase / FlashKind: outcomes and round lifecycle states.
//   - Snapshot: read-only view handed to the Visual collaborator.

package game

import "fmt"

// Letter is a single character placed on the board or held in the bank.
// The zero Letter marks an empty slot.
type Letter rune

// String renders the letter, or "" for the zero Letter.
func (l Letter) String() string {
	if l == 0 {
		return ""
	}
	return string(rune(l))
}

// MarshalText encodes the letter as a one-character JSON string.
func (l Letter) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText accepts one character; "" decodes to the zero Letter.
func (l *Letter) UnmarshalText(b []byte) error {
	r := []rune(string(b))
	switch len(r) {
	case 0:
		*l = 0
	case 1:
		*l = Letter(r[0])
	default:
		return fmt.Errorf("letter %q: want a single character", b)
	}
	return nil
}

// ItemID identifies one bank instance for the lifetime of a round.
// IDs are never reused within a round, so a removed item stays invalid.
type ItemID int

// BankItem is a placeable letter instance. Two items may share a letter
// but never an ID.
type BankItem struct {
	ID     ItemID `json:"id"`
	Letter Letter `json:"letter"`
}

// Slot is one board position.
type Slot struct {
	Index  int    `json:"index"`
	Letter Letter `json:"letter"` // zero when empty
}

// Filled reports whether the slot holds a letter.
func (s Slot) Filled() bool { return s.Letter != 0 }

// Verdict is the outcome of comparing the assembled board to the target.
type Verdict string

const (
	Correct   Verdict = "correct"
	Incorrect Verdict = "incorrect"
)

// Phase is the RoundController lifecycle state.
type Phase string

const (
	PhaseSetup       Phase = "setup"
	PhaseAwaiting    Phase = "awaiting_input"
	PhaseValidating  Phase = "validating"
	PhaseCelebrating Phase = "celebrating"
	PhaseAdvancing   Phase = "advancing"
)

// FlashKind selects the transient board highlight.
type FlashKind string

const (
	FlashCorrect FlashKind = "correct"
	FlashWrong   FlashKind = "wrong"
)

// Snapshot is what the Visual collaborator renders. It never carries the
// target word.
type Snapshot struct {
	Round   uint64     `json:"round"`
	Index   int        `json:"index"`
	Length  int        `json:"length"`
	Phase   Phase      `json:"phase"`
	Balance int        `json:"balance"`
	Slots   []Slot     `json:"slots"`
	Bank    []BankItem `json:"bank"`
}
