package feedback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/spellbank/internal/game"
)

func TestLoadSamples(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.mp3", "B.mp3", "ab.mp3", "c.wav", "1.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	s, err := LoadSamples(dir, "/audio/")
	require.NoError(t, err)
	assert.Equal(t, Samples{'a': "/audio/a.mp3", 'b': "/audio/B.mp3"}, s)

	s, err = LoadSamples(filepath.Join(dir, "nope"), "/audio")
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestAudio_SampleOrSpeech(t *testing.T) {
	buf := &Buffer{}
	a := NewAudio(buf, "p", Samples{'k': "/audio/k.mp3"})
	a.PlayLetter('K')
	a.PlayLetter('i')
	a.PlayCorrect()

	got := buf.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, Event{Type: TypeSound, Kind: "letter", Sample: "/audio/k.mp3", Text: "K"}, got[0])
	assert.Equal(t, Event{Type: TypeSpeak, Text: "i", Lang: "en-US"}, got[1])
	assert.Equal(t, "correct", got[2].Kind)
	assert.Empty(t, buf.Drain())
}

func TestVisual_Events(t *testing.T) {
	a, b := &Buffer{}, &Buffer{}
	v := NewVisual(Tee{a, nil, b}, "p")
	v.Render(game.Snapshot{Balance: 3})
	v.Flash(game.FlashWrong)
	v.ClearFlash()

	got := a.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Round.Balance)
	assert.Equal(t, Event{Type: TypeFlash, Kind: "wrong", DurationMs: 600}, got[1])
	assert.Equal(t, Event{Type: TypeFlash}, got[2])
	assert.Len(t, b.Drain(), 3)
}

func TestBuffer_DropsOldest(t *testing.T) {
	b := &Buffer{}
	for i := 0; i < maxBuffered+5; i++ {
		b.Publish("p", Event{Type: TypeSound, DurationMs: i})
	}
	got := b.Drain()
	require.Len(t, got, maxBuffered)
	assert.Equal(t, 5, got[0].DurationMs)
}
