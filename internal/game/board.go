// internal/game/board.go
//
// SlotBoard: a fixed row of slots, one per letter of the target word.
// Responsibilities:
//   - Fill/Clear single slots, rejecting filled or empty targets.
//   - Locate the first empty and the last filled slot for keyboard input.
//   - Assemble the filled letters, in slot order, for validation.

package game

import "strings"

// Board is the SlotBoard: an ordered, fixed-length row of slots.
type Board struct {
	slots []Slot
}

// NewBoard returns n empty slots.
func NewBoard(n int) *Board {
	slots := make([]Slot, n)
	for i := range slots {
		slots[i].Index = i
	}
	return &Board{slots: slots}
}

// Len is the slot count (the target word length).
func (b *Board) Len() int { return len(b.slots) }

// Slots returns a copy of the slots in order.
func (b *Board) Slots() []Slot {
	out := make([]Slot, len(b.slots))
	copy(out, b.slots)
	return out
}

// Fill places l in slot i. The slot must be empty.
func (b *Board) Fill(i int, l Letter) error {
	if i < 0 || i >= len(b.slots) {
		return ErrSlotRange
	}
	if b.slots[i].Filled() {
		return ErrSlotFilled
	}
	b.slots[i].Letter = l
	return nil
}

// Clear empties slot i and returns the letter it held.
func (b *Board) Clear(i int) (Letter, error) {
	if i < 0 || i >= len(b.slots) {
		return 0, ErrSlotRange
	}
	l := b.slots[i].Letter
	if l == 0 {
		return 0, ErrSlotEmpty
	}
	b.slots[i].Letter = 0
	return l, nil
}

// FirstEmpty returns the lowest empty index, or false when the board is full.
func (b *Board) FirstEmpty() (int, bool) {
	for i, s := range b.slots {
		if !s.Filled() {
			return i, true
		}
	}
	return 0, false
}

// LastFilled returns the highest filled index, or false when the board is empty.
func (b *Board) LastFilled() (int, bool) {
	for i := len(b.slots) - 1; i >= 0; i-- {
		if b.slots[i].Filled() {
			return i, true
		}
	}
	return 0, false
}

// Filled counts occupied slots.
func (b *Board) Filled() int {
	n := 0
	for _, s := range b.slots {
		if s.Filled() {
			n++
		}
	}
	return n
}

// Assembled concatenates occupants in slot order; empty slots add nothing.
func (b *Board) Assembled() string {
	var sb strings.Builder
	for _, s := range b.slots {
		sb.WriteString(s.Letter.String())
	}
	return sb.String()
}
