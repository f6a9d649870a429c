// internal/daily/daily.go
//
// Day-scoped helpers.
// Responsibilities:
//   - DateKey: the UTC "YYYY-MM-DD" a play belongs to.
//   - Seed/NewRNG: a per-player, per-day generator so a rebuilt session
//     replays the same bank shuffles.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives a deterministic seed from HMAC(salt, date|player), so a
// player who reloads on the same UTC day sees the same bank layouts.
func Seed(date time.Time, salt, player string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	h.Write([]byte{'|'})
	h.Write([]byte(player))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// NewRNG returns a PCG generator for seed. It satisfies game.RNG.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
