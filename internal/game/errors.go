// internal/game/errors.go
//
// Sentinel errors. Everything a player can do "wrong" on the board wraps
// ErrInvalidOperation; ErrBadInput covers malformed input events.

package game

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation covers every board/bank mutation that does not apply
// to the current state. Callers treat it as a no-op.
var ErrInvalidOperation = errors.New("invalid operation")

var (
	ErrSlotRange     = fmt.Errorf("%w: slot out of range", ErrInvalidOperation)
	ErrSlotFilled    = fmt.Errorf("%w: slot already filled", ErrInvalidOperation)
	ErrSlotEmpty     = fmt.Errorf("%w: slot already empty", ErrInvalidOperation)
	ErrBoardFull     = fmt.Errorf("%w: no empty slot", ErrInvalidOperation)
	ErrBoardEmpty    = fmt.Errorf("%w: no filled slot", ErrInvalidOperation)
	ErrItemNotInBank = fmt.Errorf("%w: item not in bank", ErrInvalidOperation)
	ErrNoSuchLetter  = fmt.Errorf("%w: no bank item for letter", ErrInvalidOperation)
)

// ErrClosed reports input sent to a controller after Close.
var ErrClosed = errors.New("game: controller closed")

// ErrBadInput reports an input event that cannot be applied as sent.
var ErrBadInput = errors.New("bad input")
