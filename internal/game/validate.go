// internal/game/validate.go

package game

import "strings"

// Validate compares the assembled board text with the target word,
// ignoring case. Length and content must match exactly.
func Validate(assembled, target string) Verdict {
	if strings.ToLower(assembled) == strings.ToLower(target) {
		return Correct
	}
	return Incorrect
}
