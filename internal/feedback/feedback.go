// internal/feedback/feedback.go
//
// Turns round-engine signals into client events.
// Responsibilities:
//   - Audio: correct/wrong cues; letter samples with a spoken fallback.
//   - Visual: round snapshots and transient flashes.
//   - Sinks: fan events out to the websocket hub and to a per-session
//     buffer that REST responses drain.
//
// Delivery is fire-and-forget. A sink that cannot keep up drops events;
// nothing here reports failure back to the game.

package feedback

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellbank/internal/game"
)

// Event types.
const (
	TypeRender = "render"
	TypeFlash  = "flash"
	TypeSound  = "sound"
	TypeSpeak  = "speak"
)

// Event is one message for the browser.
type Event struct {
	Type       string         `json:"type"`
	Kind       string         `json:"kind,omitempty"`   // flash kind or sound name
	Sample     string         `json:"sample,omitempty"` // URL of a recorded sample
	Text       string         `json:"text,omitempty"`   // text to speak
	Lang       string         `json:"lang,omitempty"`
	DurationMs int            `json:"durationMs,omitempty"`
	Round      *game.Snapshot `json:"round,omitempty"`
}

// Sink receives events for a player.
type Sink interface {
	Publish(player string, ev Event)
}

// Tee publishes to every sink in order.
type Tee []Sink

func (t Tee) Publish(player string, ev Event) {
	for _, s := range t {
		if s != nil {
			s.Publish(player, ev)
		}
	}
}

// maxBuffered bounds a Buffer between drains.
const maxBuffered = 64

// Buffer collects events until drained. Oldest events are dropped first
// when it overflows.
type Buffer struct {
	mu     sync.Mutex
	events []Event
}

func (b *Buffer) Publish(_ string, ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) >= maxBuffered {
		b.events = b.events[1:]
	}
	b.events = append(b.events, ev)
}

// Drain returns and clears the buffered events.
func (b *Buffer) Drain() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	if out == nil {
		out = []Event{}
	}
	return out
}

// Samples maps a lowercase letter to the URL of its recording.
type Samples map[rune]string

// LoadSamples scans dir for <letter>.mp3 files and serves them under
// urlPrefix. A missing or empty dir yields no samples, not an error.
func LoadSamples(dir, urlPrefix string) (Samples, error) {
	out := Samples{}
	if dir == "" {
		return out, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if e.IsDir() || filepath.Ext(name) != ".mp3" {
			continue
		}
		base := strings.TrimSuffix(name, ".mp3")
		if len(base) == 1 && base[0] >= 'a' && base[0] <= 'z' {
			out[rune(base[0])] = strings.TrimSuffix(urlPrefix, "/") + "/" + e.Name()
		}
	}
	log.Debug().Str("dir", dir).Int("samples", len(out)).Msg("letter samples loaded")
	return out, nil
}

// Audio implements game.Audio for one player.
type Audio struct {
	sink    Sink
	player  string
	samples Samples
}

func NewAudio(sink Sink, player string, samples Samples) *Audio {
	return &Audio{sink: sink, player: player, samples: samples}
}

func (a *Audio) PlayCorrect() { a.sink.Publish(a.player, Event{Type: TypeSound, Kind: "correct"}) }
func (a *Audio) PlayWrong()   { a.sink.Publish(a.player, Event{Type: TypeSound, Kind: "wrong"}) }

// PlayLetter sends the recorded sample when one exists, otherwise asks the
// client to speak the letter.
func (a *Audio) PlayLetter(l game.Letter) {
	key := []rune(strings.ToLower(l.String()))
	if len(key) == 1 {
		if url, ok := a.samples[key[0]]; ok {
			a.sink.Publish(a.player, Event{Type: TypeSound, Kind: "letter", Sample: url, Text: l.String()})
			return
		}
	}
	a.sink.Publish(a.player, Event{Type: TypeSpeak, Text: l.String(), Lang: "en-US"})
}

// Visual implements game.Visual for one player.
type Visual struct {
	sink   Sink
	player string
}

func NewVisual(sink Sink, player string) *Visual {
	return &Visual{sink: sink, player: player}
}

func (v *Visual) Render(s game.Snapshot) {
	v.sink.Publish(v.player, Event{Type: TypeRender, Round: &s})
}

func (v *Visual) Flash(kind game.FlashKind) {
	v.sink.Publish(v.player, Event{
		Type:       TypeFlash,
		Kind:       string(kind),
		DurationMs: int(game.FlashDuration.Milliseconds()),
	})
}

func (v *Visual) ClearFlash() {
	v.sink.Publish(v.player, Event{Type: TypeFlash})
}
