// internal/daily/store.go
//
// Attempts log and leaderboard, backed by the `attempts` table.

package daily

import (
	"context"
	"database/sql"
)

// Attempt is one validated answer.
type Attempt struct {
	PlayerID string `json:"playerId"`
	Date     string `json:"date"`
	Word     string `json:"word"`
	Verdict  string `json:"verdict"`
	Balance  int    `json:"balance"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) InsertAttempt(ctx context.Context, a Attempt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts(player_id, date, word, verdict, balance) VALUES(?,?,?,?,?)`,
		a.PlayerID, a.Date, a.Word, a.Verdict, a.Balance,
	)
	return err
}

// Reassign moves a guest's attempts onto an account after login.
func (s *Store) Reassign(ctx context.Context, from, to string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE attempts SET player_id=? WHERE player_id=?`, to, from)
	return err
}

type LBRow struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Solved   int    `json:"solved"`
	Attempts int    `json:"attempts"`
}

// Leaderboard ranks players for date by words solved, then by fewest
// attempts. Guests show as "guest".
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.player_id,
		        COALESCE(u.username, 'guest'),
		        SUM(CASE WHEN a.verdict = 'correct' THEN 1 ELSE 0 END) AS solved,
		        COUNT(1) AS tries
		FROM attempts a
		LEFT JOIN users u ON u.id = a.player_id
		WHERE a.date=?
		GROUP BY a.player_id
		ORDER BY solved DESC, tries ASC, MIN(a.created_at) ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Name, &r.Solved, &r.Attempts); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
