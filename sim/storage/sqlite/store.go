// Package sqlite stores tournament histories in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/inference-sim/match-sim/sim/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS histories (
  name     TEXT PRIMARY KEY,
  format   TEXT NOT NULL,
  sport    TEXT NOT NULL,
  saved_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS games (
  history      TEXT NOT NULL REFERENCES histories(name) ON DELETE CASCADE,
  seq          INTEGER NOT NULL,
  id           TEXT NOT NULL,
  sport        TEXT NOT NULL,
  played_at    INTEGER NOT NULL,
  home         TEXT NOT NULL,
  home_players TEXT NOT NULL,
  away         TEXT NOT NULL,
  away_players TEXT NOT NULL,
  plays        INTEGER NOT NULL,
  PRIMARY KEY (history, seq)
);
CREATE TABLE IF NOT EXISTS events (
  history  TEXT NOT NULL,
  game_seq INTEGER NOT NULL,
  seq      INTEGER NOT NULL,
  kind     TEXT NOT NULL,
  team     TEXT NOT NULL,
  player   TEXT NOT NULL,
  ball_pos INTEGER NOT NULL,
  tick     INTEGER NOT NULL,
  PRIMARY KEY (history, game_seq, seq),
  FOREIGN KEY (history, game_seq) REFERENCES games(history, seq) ON DELETE CASCADE
);
`

// Store persists histories in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save writes h in one transaction, replacing any history with the same name.
func (s *Store) Save(ctx context.Context, name string, h storage.History) (err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("history name is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM histories WHERE name = ?`, name); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO histories (name, format, sport, saved_at) VALUES (?, ?, ?, ?)`,
		name, h.Format, h.Sport, toMillis(time.Now()),
	); err != nil {
		return fmt.Errorf("insert history %s: %w", name, err)
	}

	gameStmt, err := tx.PrepareContext(ctx, `INSERT INTO games (
	    history, seq, id, sport, played_at, home, home_players, away, away_players, plays
	  ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare games: %w", err)
	}
	defer gameStmt.Close()
	eventStmt, err := tx.PrepareContext(ctx, `INSERT INTO events (
	    history, game_seq, seq, kind, team, player, ball_pos, tick
	  ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare events: %w", err)
	}
	defer eventStmt.Close()

	for i, g := range h.Games {
		homePlayers, err := json.Marshal(g.Home.Players)
		if err != nil {
			return fmt.Errorf("encode roster: %w", err)
		}
		awayPlayers, err := json.Marshal(g.Away.Players)
		if err != nil {
			return fmt.Errorf("encode roster: %w", err)
		}
		if _, err := gameStmt.ExecContext(ctx,
			name, i, g.ID, g.Sport, toMillis(g.When),
			g.Home.Name, string(homePlayers), g.Away.Name, string(awayPlayers), g.Plays,
		); err != nil {
			return fmt.Errorf("insert game %d: %w", i, err)
		}
		for j, e := range g.Events {
			if _, err := eventStmt.ExecContext(ctx,
				name, i, j, e.Kind, e.Team, e.Player, e.BallPos, e.Tick,
			); err != nil {
				return fmt.Errorf("insert game %d event %d: %w", i, j, err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

// Load reads the history saved under name.
func (s *Store) Load(ctx context.Context, name string) (storage.History, error) {
	var h storage.History
	row := s.sqlDB.QueryRowContext(ctx, `SELECT format, sport FROM histories WHERE name = ?`, name)
	if err := row.Scan(&h.Format, &h.Sport); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.History{}, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
		}
		return storage.History{}, fmt.Errorf("load %s: %w", name, err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, sport, played_at, home, home_players, away, away_players, plays
	  FROM games WHERE history = ? ORDER BY seq`, name)
	if err != nil {
		return storage.History{}, fmt.Errorf("load games: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			g                        storage.GameRecord
			playedAt                 int64
			homePlayers, awayPlayers string
		)
		if err := rows.Scan(&g.ID, &g.Sport, &playedAt, &g.Home.Name, &homePlayers, &g.Away.Name, &awayPlayers, &g.Plays); err != nil {
			return storage.History{}, fmt.Errorf("scan game: %w", err)
		}
		g.When = fromMillis(playedAt)
		if err := json.Unmarshal([]byte(homePlayers), &g.Home.Players); err != nil {
			return storage.History{}, fmt.Errorf("decode roster: %w", err)
		}
		if err := json.Unmarshal([]byte(awayPlayers), &g.Away.Players); err != nil {
			return storage.History{}, fmt.Errorf("decode roster: %w", err)
		}
		h.Games = append(h.Games, g)
	}
	if err := rows.Err(); err != nil {
		return storage.History{}, fmt.Errorf("load games: %w", err)
	}

	evRows, err := s.sqlDB.QueryContext(ctx, `SELECT game_seq, kind, team, player, ball_pos, tick
	  FROM events WHERE history = ? ORDER BY game_seq, seq`, name)
	if err != nil {
		return storage.History{}, fmt.Errorf("load events: %w", err)
	}
	defer evRows.Close()
	for evRows.Next() {
		var (
			seq int
			e   storage.EventRecord
		)
		if err := evRows.Scan(&seq, &e.Kind, &e.Team, &e.Player, &e.BallPos, &e.Tick); err != nil {
			return storage.History{}, fmt.Errorf("scan event: %w", err)
		}
		if seq < 0 || seq >= len(h.Games) {
			return storage.History{}, fmt.Errorf("event references missing game %d", seq)
		}
		h.Games[seq].Events = append(h.Games[seq].Events, e)
	}
	if err := evRows.Err(); err != nil {
		return storage.History{}, fmt.Errorf("load events: %w", err)
	}
	return h, nil
}

// List returns the saved history names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM histories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list histories: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan history name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
