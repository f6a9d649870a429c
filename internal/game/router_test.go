package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRound(word, bank string) *Round {
	return &Round{Word: word, Board: NewBoard(len(word)), Bank: NewBank(letters(bank), 0)}
}

func TestRouter_PlaceUnplace(t *testing.T) {
	rd := fixedRound("ab", "bxa")
	audio := &recAudio{}
	r := NewRouter(rd, audio)
	items := rd.Bank.Items()

	require.NoError(t, r.Place(items[2].ID)) // a
	require.NoError(t, r.Place(items[0].ID)) // b
	assert.Equal(t, "ab", rd.Board.Assembled())
	assert.Equal(t, []Letter{'a', 'b'}, audio.letters)

	assert.ErrorIs(t, r.Place(items[1].ID), ErrBoardFull)
	assert.Equal(t, 1, rd.Bank.Len(), "full board leaves the bank alone")
	assert.ErrorIs(t, r.Place(items[0].ID), ErrItemNotInBank)

	require.NoError(t, r.Unplace(0))
	assert.Equal(t, "b", rd.Board.Assembled())
	bank := rd.Bank.Items()
	assert.Equal(t, Letter('a'), bank[len(bank)-1].Letter)
	assert.ErrorIs(t, r.Unplace(0), ErrSlotEmpty)

	// Place fills the lowest empty slot, which is now 0.
	require.NoError(t, r.PlaceLetter('A'))
	assert.Equal(t, "ab", rd.Board.Assembled())
}

func TestRouter_KeyboardForms(t *testing.T) {
	rd := fixedRound("kiwi", "ikwix")
	r := NewRouter(rd, nil)

	for _, ch := range "kiwi" {
		require.NoError(t, r.PlaceLetter(ch))
	}
	assert.Equal(t, "kiwi", rd.Board.Assembled())
	assert.ErrorIs(t, r.PlaceLetter('q'), ErrNoSuchLetter)

	for i := 0; i < 4; i++ {
		require.NoError(t, r.UnplaceLast())
	}
	assert.ErrorIs(t, r.UnplaceLast(), ErrBoardEmpty)
	assert.Equal(t, 5, rd.Bank.Len())
}

func TestRouter_ConservesLetters(t *testing.T) {
	rng := seeded(7)
	rd := NewRound("banana", rng, nil)
	r := NewRouter(rd, nil)
	total := rd.Bank.Len()
	want := countLetters(allLetters(rd))

	for step := 0; step < 2000; step++ {
		switch rng.IntN(4) {
		case 0:
			if items := rd.Bank.Items(); len(items) > 0 {
				_ = r.Place(items[rng.IntN(len(items))].ID)
			}
		case 1:
			_ = r.Unplace(rng.IntN(rd.Board.Len() + 1))
		case 2:
			_ = r.PlaceLetter(rune(alphabet[rng.IntN(len(alphabet))]))
		default:
			_ = r.UnplaceLast()
		}
		require.Equal(t, total, rd.Board.Filled()+rd.Bank.Len(), "step %d", step)
	}
	assert.Equal(t, want, countLetters(allLetters(rd)))
}

// allLetters lists every letter in the round, board first.
func allLetters(rd *Round) []Letter {
	var out []Letter
	for _, s := range rd.Board.Slots() {
		if s.Filled() {
			out = append(out, s.Letter)
		}
	}
	for _, it := range rd.Bank.Items() {
		out = append(out, it.Letter)
	}
	return out
}

func TestIsLetterKey(t *testing.T) {
	for _, k := range []string{"a", "Z"} {
		_, ok := isLetterKey(k)
		assert.True(t, ok, k)
	}
	for _, k := range []string{"", "1", "ab", "Shift", "é", " "} {
		_, ok := isLetterKey(k)
		assert.False(t, ok, k)
	}
}
