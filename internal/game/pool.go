// internal/game/pool.go
//
// LetterPool: builds the shuffled bank for a target word.
//
// The bank holds every letter of the word once (so repeated letters appear
// with their multiplicity) plus clamp(len/2+2, 0, 6) decoys drawn with
// replacement from a–z. The whole sequence is then shuffled.

package game

// RNG abstracts random number generation so banks are reproducible in tests.
// *math/rand/v2.Rand satisfies it.
type RNG interface {
	// IntN returns a uniform int in [0, n). n > 0.
	IntN(n int) int
}

const (
	alphabet  = "abcdefghijklmnopqrstuvwxyz"
	maxDecoys = 6
)

// DecoyCount returns how many decoys accompany a word of length n.
func DecoyCount(n int) int {
	d := n/2 + 2
	if d < 0 {
		return 0
	}
	if d > maxDecoys {
		return maxDecoys
	}
	return d
}

// BuildBank returns the word's letters plus decoys in random order.
func BuildBank(word string, rng RNG) []Letter {
	runes := []rune(word)
	decoys := DecoyCount(len(runes))
	out := make([]Letter, 0, len(runes)+decoys)
	for _, r := range runes {
		out = append(out, Letter(r))
	}
	for i := 0; i < decoys; i++ {
		out = append(out, Letter(alphabet[rng.IntN(len(alphabet))]))
	}
	Shuffle(out, rng)
	return out
}

// Shuffle permutes s in place with Fisher–Yates: for i from the last index
// down to 1, swap s[i] with s[j], j uniform in [0, i].
func Shuffle[T any](s []T, rng RNG) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
