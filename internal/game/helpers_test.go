package game

import (
	"math/rand/v2"
	"sync"
)

// seqRNG returns values from a fixed sequence, reduced mod n.
type seqRNG struct {
	values []int
	idx    int
}

func (r *seqRNG) IntN(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

type listSource struct {
	words []string
	i     int
}

func (s *listSource) Current() string { return s.words[s.i] }
func (s *listSource) Index() int      { return s.i }
func (s *listSource) Len() int        { return len(s.words) }
func (s *listSource) Advance() int    { s.i = (s.i + 1) % len(s.words); return s.i }
func (s *listSource) Seek(i int) int {
	if i < 0 || i >= len(s.words) {
		i = 0
	}
	s.i = i
	return i
}

type recAudio struct {
	mu      sync.Mutex
	letters []Letter
	correct int
	wrong   int
}

func (a *recAudio) PlayCorrect() { a.mu.Lock(); a.correct++; a.mu.Unlock() }
func (a *recAudio) PlayWrong()   { a.mu.Lock(); a.wrong++; a.mu.Unlock() }
func (a *recAudio) PlayLetter(l Letter) {
	a.mu.Lock()
	a.letters = append(a.letters, l)
	a.mu.Unlock()
}

type recVisual struct {
	renders int
	flashes []FlashKind
	clears  int
	last    Snapshot
}

func (v *recVisual) Render(s Snapshot)     { v.renders++; v.last = s }
func (v *recVisual) Flash(kind FlashKind) { v.flashes = append(v.flashes, kind) }
func (v *recVisual) ClearFlash()           { v.clears++ }

type recRecorder struct {
	verdicts []Verdict
	skips    []string
}

func (r *recRecorder) RecordVerdict(_ string, v Verdict, _ int) { r.verdicts = append(r.verdicts, v) }
func (r *recRecorder) RecordSkip(word string)                  { r.skips = append(r.skips, word) }

type stubStore map[string]int

func (s stubStore) LoadInt(key string, def int) int {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}
func (s stubStore) SaveInt(key string, v int) { s[key] = v }

func letters(s string) []Letter {
	out := make([]Letter, 0, len(s))
	for _, r := range s {
		out = append(out, Letter(r))
	}
	return out
}

func countLetters(ls []Letter) map[Letter]int {
	m := map[Letter]int{}
	for _, l := range ls {
		m[l]++
	}
	return m
}
