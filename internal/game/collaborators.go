// internal/game/collaborators.go
//
// Interfaces for everything the round engine calls out to: word list,
// persistence, audio, rendering and verdict recording. Implementations
// live outside this package; the Nop types here are safe defaults.

package game

// Persisted keys.
const (
	KeyCoins = "coins"
	KeyIndex = "currentIndex"
)

// WordSource supplies the ordered word list and the current position.
type WordSource interface {
	Current() string
	Index() int
	Len() int
	// Advance moves to (index+1) mod Len and returns the new index.
	Advance() int
	// Seek moves to i, falling back to 0 when i is out of range, and
	// returns the resulting index.
	Seek(i int) int
}

// Persistence stores integers under fixed keys. LoadInt must return def
// for missing or malformed values. Both calls are best effort.
type Persistence interface {
	LoadInt(key string, def int) int
	SaveInt(key string, value int)
}

// Audio plays feedback sounds. Failures are swallowed by implementations.
type Audio interface {
	PlayCorrect()
	PlayWrong()
	PlayLetter(l Letter)
}

// Visual renders the round and transient flashes.
type Visual interface {
	Render(s Snapshot)
	Flash(kind FlashKind)
	ClearFlash()
}

// Recorder observes verdicts and skips (history, metrics).
type Recorder interface {
	RecordVerdict(word string, v Verdict, balance int)
	RecordSkip(word string)
}

type NopAudio struct{}

func (NopAudio) PlayCorrect() {}
func (NopAudio) PlayWrong() {}
func (NopAudio) PlayLetter(Letter) {}

type NopVisual struct{}

func (NopVisual) Render(Snapshot) {}
func (NopVisual) Flash(FlashKind) {}
func (NopVisual) ClearFlash() {}

type NopRecorder struct{}

func (NopRecorder) RecordVerdict(string, Verdict, int) {}
func (NopRecorder) RecordSkip(string) {}

// memPersistence keeps values for the controller's lifetime only.
type memPersistence map[string]int

func (m memPersistence) LoadInt(key string, def int) int {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

func (m memPersistence) SaveInt(key string, v int) { m[key] = v }
