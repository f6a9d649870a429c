// internal/game/round.go

package game

// Round is the live RoundState. It is built once per word and replaced,
// never reset, when the controller moves on.
type Round struct {
	Word  string
	Board *Board
	Bank  *Bank
}

// NewRound builds an empty board and a shuffled bank for word. prev is
// the round being replaced, or nil; bank IDs continue from its bank.
func NewRound(word string, rng RNG, prev *Round) *Round {
	var after ItemID
	if prev != nil {
		after = prev.Bank.LastID()
	}
	return &Round{
		Word:  word,
		Board: NewBoard(len([]rune(word))),
		Bank:  NewBank(BuildBank(word, rng), after),
	}
}
