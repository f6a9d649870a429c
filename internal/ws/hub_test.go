package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/robalobadob/spellbank/internal/feedback"
	"github.com/robalobadob/spellbank/internal/game"
)

func TestHub_RoundTrip(t *testing.T) {
	h := NewHub(nil)
	inputs := make(chan game.Input, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, "p1", func(in game.Input) { inputs <- in })
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("not json")))
	require.NoError(t, wsjson.Write(ctx, conn, game.Input{Kind: game.InputKey, Key: "a"}))
	select {
	case in := <-inputs:
		assert.Equal(t, game.Input{Kind: game.InputKey, Key: "a"}, in)
	case <-ctx.Done():
		t.Fatal("input not delivered")
	}

	require.Eventually(t, func() bool { return h.Count("p1") == 1 }, time.Second, 10*time.Millisecond)
	h.Publish("p2", feedback.Event{Type: feedback.TypeSound, Kind: "other"})
	h.Publish("p1", feedback.Event{Type: feedback.TypeFlash, Kind: "correct"})

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var ev feedback.Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, feedback.Event{Type: feedback.TypeFlash, Kind: "correct"}, ev)

	conn.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return h.Count("p1") == 0 }, 2*time.Second, 10*time.Millisecond)
}
