package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind InputKind
		want Input
	}{
		{"slot zero is explicit", `{"slot":0}`, InputSlot, Input{Kind: InputSlot, Slot: 0}},
		{"item", `{"item":7}`, InputItem, Input{Kind: InputItem, Item: 7}},
		{"kind from body", `{"kind":"key","key":"a"}`, "", Input{Kind: InputKey, Key: "a"}},
		{"forced kind wins", `{"kind":"skip"}`, InputCheck, Input{Kind: InputCheck}},
		{"empty body", ``, InputSkip, Input{Kind: InputSkip}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput([]byte(tt.data), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInput_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind InputKind
	}{
		{"slot missing", `{}`, InputSlot},
		{"item missing", `{"slot":1}`, InputItem},
		{"key missing", ``, InputKey},
		{"unknown kind", `{"kind":"dance"}`, ""},
		{"no kind", ``, ""},
		{"broken json", `{`, InputCheck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput([]byte(tt.data), tt.kind)
			assert.ErrorIs(t, err, ErrBadInput)
		})
	}
}
