package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const progressTimeout = 2 * time.Second

// Progress adapts a Store to one player's integer progress values. It
// implements game.Persistence: reads fall back to the default on any
// missing or malformed value, writes are best effort.
type Progress struct {
	st     Store
	player string
}

// NewProgress binds st to player.
func NewProgress(st Store, player string) *Progress {
	return &Progress{st: st, player: player}
}

func (p *Progress) LoadInt(key string, def int) int {
	ctx, cancel := context.WithTimeout(context.Background(), progressTimeout)
	defer cancel()
	v, ok, err := p.st.Get(ctx, p.player, key)
	if err != nil {
		log.Warn().Err(err).Str("player", p.player).Str("key", key).Msg("load progress")
		return def
	}
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Debug().Str("player", p.player).Str("key", key).Str("value", v).Msg("malformed progress value")
		return def
	}
	return n
}

func (p *Progress) SaveInt(key string, value int) {
	ctx, cancel := context.WithTimeout(context.Background(), progressTimeout)
	defer cancel()
	if err := p.st.Put(ctx, p.player, key, strconv.Itoa(value)); err != nil {
		log.Warn().Err(err).Str("player", p.player).Str("key", key).Msg("save progress")
	}
}
