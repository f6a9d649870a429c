// internal/game/input.go
//
// Wire decoding for input events, shared by the REST and websocket surfaces.

package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

type wireInput struct {
	Kind InputKind `json:"kind"`
	Slot *int      `json:"slot"`
	Item *ItemID   `json:"item"`
	Key  string    `json:"key"`
}

// ParseInput decodes a JSON input event. A non-empty kind overrides the
// one in data, and empty data counts as {}. Slot input must name its slot,
// item input its item, key input its key.
func ParseInput(data []byte, kind InputKind) (Input, error) {
	var w wireInput
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &w); err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrBadInput, err)
		}
	}
	if kind != "" {
		w.Kind = kind
	}
	in := Input{Kind: w.Kind, Key: w.Key}
	switch w.Kind {
	case InputSlot:
		if w.Slot == nil {
			return Input{}, fmt.Errorf("%w: slot input without slot", ErrBadInput)
		}
		in.Slot = *w.Slot
	case InputItem:
		if w.Item == nil {
			return Input{}, fmt.Errorf("%w: item input without item", ErrBadInput)
		}
		in.Item = *w.Item
	case InputKey:
		if w.Key == "" {
			return Input{}, fmt.Errorf("%w: key input without key", ErrBadInput)
		}
	case InputCheck, InputSkip:
	default:
		return Input{}, fmt.Errorf("%w: unknown kind %q", ErrBadInput, w.Kind)
	}
	return in, nil
}
