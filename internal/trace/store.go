package trace

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
	_ "modernc.org/sqlite"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS round_log (
	round_id      TEXT PRIMARY KEY,
	match_id      TEXT NOT NULL,
	profile_id    TEXT NOT NULL,
	round_number  INTEGER NOT NULL,
	ready_at      TEXT NOT NULL,
	completed_at  TEXT NOT NULL,
	player_move   INTEGER NOT NULL,
	ai_move       INTEGER NOT NULL,
	outcome       INTEGER NOT NULL,
	policy        TEXT NOT NULL,
	trace_json    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_round_log_match
ON round_log(match_id, round_number);

CREATE INDEX IF NOT EXISTS idx_round_log_profile
ON round_log(profile_id, completed_at);
`

// #endregion schema

// #region store

// Store is the append-only round log in SQLite. Rows are never
// updated or deleted by the engine; corrections are an administrative
// path outside it.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB runs migrations against an existing connection,
// letting the round log share a database with the model repository.
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region append

// traceEnvelope serializes whichever trace shape the round carries.
type traceEnvelope struct {
	Mixer     *MixerTrace     `json:"mixer,omitempty"`
	Heuristic *HeuristicTrace `json:"heuristic,omitempty"`
}

// Append writes one completed round. Round ids are unique, so a
// replayed append of the same round fails rather than silently
// rewriting history.
func (s *Store) Append(rec RoundLog) error {
	env, err := json.Marshal(traceEnvelope{Mixer: rec.Mixer, Heuristic: rec.Heuristic})
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO round_log
		 (round_id, match_id, profile_id, round_number, ready_at, completed_at,
		  player_move, ai_move, outcome, policy, trace_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RoundID, rec.MatchID, rec.ProfileID, rec.RoundNumber,
		rec.ReadyAt.Format(time.RFC3339Nano), rec.CompletedAt.Format(time.RFC3339Nano),
		int(rec.PlayerMove), int(rec.AIMove), int(rec.Outcome),
		rec.Policy, string(env),
	)
	if err != nil {
		return fmt.Errorf("append round: %w", err)
	}
	return nil
}

// #endregion append

// #region queries

// ListByMatch returns a match's rounds in chronological order.
func (s *Store) ListByMatch(matchID string) ([]RoundLog, error) {
	return s.list(`SELECT round_id, match_id, profile_id, round_number, ready_at, completed_at,
		player_move, ai_move, outcome, policy, trace_json
		FROM round_log WHERE match_id = ? ORDER BY round_number ASC`, matchID)
}

// ListByProfile returns every round for a profile in chronological order.
func (s *Store) ListByProfile(profileID string) ([]RoundLog, error) {
	return s.list(`SELECT round_id, match_id, profile_id, round_number, ready_at, completed_at,
		player_move, ai_move, outcome, policy, trace_json
		FROM round_log WHERE profile_id = ? ORDER BY completed_at ASC, round_number ASC`, profileID)
}

func (s *Store) list(query string, arg any) ([]RoundLog, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundLog
	for rows.Next() {
		var rec RoundLog
		var readyStr, completedStr, traceJSON string
		var player, ai, outcome int
		if err := rows.Scan(&rec.RoundID, &rec.MatchID, &rec.ProfileID, &rec.RoundNumber,
			&readyStr, &completedStr, &player, &ai, &outcome, &rec.Policy, &traceJSON); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rec.ReadyAt, _ = time.Parse(time.RFC3339Nano, readyStr)
		rec.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedStr)
		rec.PlayerMove = game.Move(player)
		rec.AIMove = game.Move(ai)
		rec.Outcome = game.Outcome(outcome)

		var env traceEnvelope
		if err := json.Unmarshal([]byte(traceJSON), &env); err == nil {
			rec.Mixer = env.Mixer
			rec.Heuristic = env.Heuristic
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion queries
