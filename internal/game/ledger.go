// internal/game/ledger.go
//
// CurrencyLedger: +10 for a correct word, -2 for a wrong one, never
// below zero.

package game

const (
	// RewardCorrect is credited for a correct answer.
	RewardCorrect = 10
	// PenaltyWrong is applied for an incorrect answer, floored at zero.
	PenaltyWrong = -2
)

// Ledger is the CurrencyLedger. The balance never goes below zero.
type Ledger struct {
	balance int
}

// NewLedger starts a ledger at balance, clamped to zero.
func NewLedger(balance int) *Ledger {
	return &Ledger{balance: max(0, balance)}
}

// Add applies delta and returns the new balance.
func (l *Ledger) Add(delta int) int {
	l.balance = max(0, l.balance+delta)
	return l.balance
}

// Balance is the current balance.
func (l *Ledger) Balance() int { return l.balance }
