// internal/game/bank.go
//
// BankState: the letters a player can still place.
// Every item carries an ID that is never reused, so a stale click cannot
// hit a different letter.

package game

import "unicode"

// Bank is the BankState: letters available for placement, in display order.
type Bank struct {
	items  []BankItem
	nextID ItemID
}

// NewBank seeds a bank with letters in the given order. IDs start after
// after, so a bank that replaces another continues its sequence.
func NewBank(letters []Letter, after ItemID) *Bank {
	b := &Bank{items: make([]BankItem, 0, len(letters)), nextID: after}
	for _, l := range letters {
		b.Add(l)
	}
	return b
}

// Add appends a new instance of l and returns it.
func (b *Bank) Add(l Letter) BankItem {
	b.nextID++
	it := BankItem{ID: b.nextID, Letter: l}
	b.items = append(b.items, it)
	return it
}

// Remove takes the item out of the bank. Its ID is invalid afterwards.
func (b *Bank) Remove(id ItemID) (BankItem, error) {
	i := b.index(id)
	if i < 0 {
		return BankItem{}, ErrItemNotInBank
	}
	it := b.items[i]
	b.items = append(b.items[:i], b.items[i+1:]...)
	return it, nil
}

// Get looks an item up by ID.
func (b *Bank) Get(id ItemID) (BankItem, bool) {
	if i := b.index(id); i >= 0 {
		return b.items[i], true
	}
	return BankItem{}, false
}

// FindLetter returns the first item (display order) whose letter matches r
// case-insensitively.
func (b *Bank) FindLetter(r rune) (BankItem, bool) {
	want := unicode.ToLower(r)
	for _, it := range b.items {
		if unicode.ToLower(rune(it.Letter)) == want {
			return it, true
		}
	}
	return BankItem{}, false
}

// Items returns a copy of the bank in display order.
func (b *Bank) Items() []BankItem {
	out := make([]BankItem, len(b.items))
	copy(out, b.items)
	return out
}

// LastID is the highest ID this bank has handed out.
func (b *Bank) LastID() ItemID { return b.nextID }

// Len is the number of items available.
func (b *Bank) Len() int { return len(b.items) }

func (b *Bank) index(id ItemID) int {
	for i, it := range b.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
