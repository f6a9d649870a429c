package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rig struct {
	c      *Controller
	clock  *ManualClock
	store  stubStore
	audio  *recAudio
	visual *recVisual
	rec    *recRecorder
	words  *listSource
}

func newRig(t *testing.T, words []string, saved stubStore) *rig {
	t.Helper()
	if saved == nil {
		saved = stubStore{}
	}
	r := &rig{
		clock:  NewManualClock(),
		store:  saved,
		audio:  &recAudio{},
		visual: &recVisual{},
		rec:    &recRecorder{},
		words:  &listSource{words: words},
	}
	c, err := NewController(Options{
		Words:    r.words,
		RNG:      seeded(11),
		Store:    r.store,
		Audio:    r.audio,
		Visual:   r.visual,
		Recorder: r.rec,
		Clock:    r.clock,
	})
	require.NoError(t, err)
	r.c = c
	return r
}

func (r *rig) typeWord(w string) {
	for _, ch := range w {
		r.c.Key(string(ch))
	}
}

func TestController_RequiresWordsAndRNG(t *testing.T) {
	_, err := NewController(Options{RNG: seeded(1)})
	assert.Error(t, err)
	_, err = NewController(Options{Words: &listSource{words: []string{"a"}}})
	assert.Error(t, err)
}

func TestController_SetupFromPersisted(t *testing.T) {
	r := newRig(t, []string{"apple", "kiwi", "pear"}, stubStore{KeyIndex: 1, KeyCoins: 7})
	s := r.c.Snapshot()
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 4, s.Length)
	assert.Equal(t, 7, s.Balance)
	assert.Equal(t, PhaseAwaiting, s.Phase)
	assert.Len(t, s.Bank, 4+DecoyCount(4))
	for _, sl := range s.Slots {
		assert.False(t, sl.Filled())
	}
	assert.Equal(t, 1, r.visual.renders)
}

func TestController_OutOfRangeIndexFallsBack(t *testing.T) {
	r := newRig(t, []string{"apple", "kiwi"}, stubStore{KeyIndex: 9, KeyCoins: -4})
	assert.Equal(t, 0, r.c.Snapshot().Index)
	assert.Equal(t, 0, r.c.Balance())
}

func TestController_CorrectAnswerAdvancesAfterDelay(t *testing.T) {
	r := newRig(t, []string{"kiwi", "melon"}, stubStore{KeyCoins: 5})
	first := r.c.Snapshot().Round

	r.typeWord("kiwi")
	s := r.c.Snapshot()
	require.Equal(t, 4, len(s.Slots))
	for _, sl := range s.Slots {
		assert.True(t, sl.Filled())
	}
	assert.Equal(t, []Letter{'k', 'i', 'w', 'i'}, r.audio.letters)

	v, ok := r.c.Key("Enter")
	require.True(t, ok)
	assert.Equal(t, Correct, v)
	assert.Equal(t, 15, r.c.Balance())
	assert.Equal(t, PhaseCelebrating, r.c.Phase())
	assert.Equal(t, 1, r.audio.correct)
	assert.Equal(t, []FlashKind{FlashCorrect}, r.visual.flashes)
	assert.Equal(t, 15, r.store[KeyCoins])
	assert.Equal(t, 0, r.store[KeyIndex])

	// Checking again while celebrating pays nothing.
	_, ok = r.c.Check()
	assert.False(t, ok)
	assert.Equal(t, 15, r.c.Balance())

	r.clock.Advance(CelebrateDelay - 1)
	assert.Equal(t, PhaseCelebrating, r.c.Phase())
	assert.Equal(t, 1, r.visual.clears, "flash clears at 600ms")

	r.clock.Advance(1)
	s = r.c.Snapshot()
	assert.Equal(t, PhaseAwaiting, s.Phase)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 5, s.Length)
	assert.Greater(t, s.Round, first)
	assert.Equal(t, 1, r.store[KeyIndex])
	assert.Equal(t, []Verdict{Correct}, r.rec.verdicts)
}

func TestController_KiwiFourFreshSlots(t *testing.T) {
	r := newRig(t, []string{"kiwi", "pear", "kiwi"}, stubStore{KeyIndex: 2})
	r.typeWord("kiwi")
	v, _ := r.c.Check()
	require.Equal(t, Correct, v)
	r.clock.Advance(CelebrateDelay)

	s := r.c.Snapshot()
	assert.Equal(t, 0, s.Index, "advance wraps")
	assert.Equal(t, 4, s.Length)
	for _, sl := range s.Slots {
		assert.False(t, sl.Filled())
	}
	assert.Len(t, s.Bank, 4+DecoyCount(4))
}

func TestController_WrongAnswerKeepsBoard(t *testing.T) {
	r := newRig(t, []string{"kiwi", "melon"}, stubStore{KeyCoins: 1})
	r.typeWord("ikwi")
	before := r.c.Snapshot()

	v, ok := r.c.Check()
	require.True(t, ok)
	assert.Equal(t, Incorrect, v)
	assert.Equal(t, 0, r.c.Balance(), "floored at zero")
	assert.Equal(t, 1, r.audio.wrong)
	assert.Equal(t, []FlashKind{FlashWrong}, r.visual.flashes)

	after := r.c.Snapshot()
	assert.Equal(t, PhaseAwaiting, after.Phase)
	assert.Equal(t, before.Slots, after.Slots)
	assert.Equal(t, before.Round, after.Round)
	assert.Equal(t, 1, r.clock.Pending(), "only the flash timer is pending")

	// Correct it: clear the board with backspace and retype.
	for i := 0; i < 4; i++ {
		r.c.Key("Backspace")
	}
	r.typeWord("KIWI")
	v, _ = r.c.Check()
	assert.Equal(t, Correct, v)
	assert.Equal(t, 10, r.c.Balance())
	assert.Equal(t, []Verdict{Incorrect, Correct}, r.rec.verdicts)
}

func TestController_PointerInput(t *testing.T) {
	r := newRig(t, []string{"pear"}, nil)
	var s Snapshot

	// Click items spelling "pear", choosing by letter.
	for _, ch := range "pear" {
		for _, it := range r.c.Snapshot().Bank {
			if it.Letter == Letter(ch) {
				r.c.Handle(Input{Kind: InputItem, Item: it.ID})
				break
			}
		}
	}
	s = r.c.Snapshot()
	assert.Equal(t, len(s.Bank), DecoyCount(4))

	// Clicking a filled slot sends it back to the end of the bank.
	r.c.Handle(Input{Kind: InputSlot, Slot: 1})
	s = r.c.Snapshot()
	assert.False(t, s.Slots[1].Filled())
	assert.Equal(t, Letter('e'), s.Bank[len(s.Bank)-1].Letter)

	// Clicking the now-empty slot is ignored.
	r.c.Handle(Input{Kind: InputSlot, Slot: 1})
	assert.Equal(t, s, r.c.Snapshot())

	// The next placement fills the gap at slot 1.
	r.c.Handle(Input{Kind: InputKey, Key: "e"})
	v, ok := r.c.Handle(Input{Kind: InputCheck})
	require.True(t, ok)
	assert.Equal(t, Correct, v)
}

func TestController_FullBoardIgnoresPlacement(t *testing.T) {
	r := newRig(t, []string{"ab"}, nil)
	r.typeWord("ab")
	s := r.c.Snapshot()
	for _, it := range s.Bank {
		r.c.ClickItem(it.ID)
	}
	assert.Equal(t, s, r.c.Snapshot())
	r.c.Key("Shift")
	r.c.Key("7")
	assert.Equal(t, s, r.c.Snapshot())
}

func TestController_SkipNoCurrencyChange(t *testing.T) {
	r := newRig(t, []string{"apple", "banana", "orange"}, stubStore{KeyCoins: 4, KeyIndex: 2})
	r.c.Key("a")
	r.c.Key("ArrowRight")
	s := r.c.Snapshot()
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 4, s.Balance)
	assert.Equal(t, 5, s.Length)
	assert.Equal(t, 0, r.store[KeyIndex])
	assert.Equal(t, []string{"orange"}, r.rec.skips)
	assert.Empty(t, r.rec.verdicts)
}

func TestController_SkipDuringCelebrationAdvancesOnce(t *testing.T) {
	r := newRig(t, []string{"kiwi", "pear", "melon"}, nil)
	r.typeWord("kiwi")
	_, _ = r.c.Check()
	require.Equal(t, PhaseCelebrating, r.c.Phase())

	r.c.Skip()
	assert.Equal(t, 1, r.c.Snapshot().Index)

	r.clock.Advance(CelebrateDelay * 2)
	s := r.c.Snapshot()
	assert.Equal(t, 1, s.Index, "cancelled timer must not advance again")
	assert.Equal(t, PhaseAwaiting, s.Phase)
	assert.Equal(t, 10, s.Balance)
}

func TestController_CloseCancelsTimers(t *testing.T) {
	r := newRig(t, []string{"kiwi", "pear"}, nil)
	r.typeWord("kiwi")
	_, _ = r.c.Check()
	r.c.Close()
	assert.Equal(t, 0, r.clock.Pending())
	r.clock.Advance(CelebrateDelay)
	assert.Equal(t, 0, r.store[KeyIndex])
}

func TestController_OldRoundItemIDsStayInvalid(t *testing.T) {
	r := newRig(t, []string{"kiwi", "pear"}, nil)
	r.typeWord("kiwi")
	old := r.c.Snapshot()
	_, _ = r.c.Check()
	r.clock.Advance(CelebrateDelay)

	fresh := r.c.Snapshot()
	require.Equal(t, 1, fresh.Index)
	for _, it := range old.Bank {
		r.c.ClickItem(it.ID)
	}
	assert.Equal(t, fresh, r.c.Snapshot(), "clicks on the previous bank do nothing")

	for _, it := range fresh.Bank {
		for _, prev := range old.Bank {
			assert.NotEqual(t, prev.ID, it.ID)
		}
	}
}

func TestController_ClosedDropsInput(t *testing.T) {
	r := newRig(t, []string{"kiwi", "pear"}, stubStore{KeyCoins: 3})
	before := r.c.Snapshot()
	r.c.Close()

	_, _, err := r.c.Dispatch(Input{Kind: InputKey, Key: "k"})
	assert.ErrorIs(t, err, ErrClosed)
	r.c.Skip()
	_, ok := r.c.Check()
	assert.False(t, ok)

	after := r.c.Snapshot()
	assert.Equal(t, before.Slots, after.Slots)
	assert.Equal(t, 0, after.Index)
	_, saved := r.store[KeyIndex]
	assert.False(t, saved, "nothing persisted after close")
	assert.Empty(t, r.rec.skips)
}

func TestManualClock_OrderAndCancel(t *testing.T) {
	c := NewManualClock()
	var got []int
	c.AfterFunc(20, func() { got = append(got, 2) })
	stop := c.AfterFunc(10, func() { got = append(got, 1) })
	c.AfterFunc(10, func() { got = append(got, 3) })
	assert.True(t, stop())
	assert.False(t, stop())
	c.Advance(15)
	assert.Equal(t, []int{3}, got)
	c.Advance(5)
	assert.Equal(t, []int{3, 2}, got)
	assert.Equal(t, 0, c.Pending())
}
