package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cbosoft/greygoo/internal/game"
)

// SQLiteRepo keeps the state document in a single-row table, with fired
// events broken out so they can be queried.
type SQLiteRepo struct {
	conn *sqlx.DB
}

func OpenSQLite(path string) (*SQLiteRepo, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	r := &SQLiteRepo{conn: conn}
	if err := r.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRepo) Close() error {
	return r.conn.Close()
}

func (r *SQLiteRepo) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS world_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		doc TEXT NOT NULL,
		saved_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE TABLE IF NOT EXISTS fired_events (
		seq INTEGER NOT NULL,
		label TEXT NOT NULL,
		ts INTEGER NOT NULL,
		PRIMARY KEY (seq)
	);
	`
	_, err := r.conn.Exec(schema)
	return err
}

type firedRow struct {
	Seq   int    `db:"seq"`
	Label string `db:"label"`
	TS    int64  `db:"ts"`
}

func (r *SQLiteRepo) Load(ctx context.Context) (*game.State, error) {
	var doc string
	err := r.conn.GetContext(ctx, &doc, `SELECT doc FROM world_state WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return game.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}

	var st game.State
	if err := json.Unmarshal([]byte(doc), &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	var rows []firedRow
	if err := r.conn.SelectContext(ctx, &rows, `SELECT seq, label, ts FROM fired_events ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("select fired events: %w", err)
	}
	st.FiredEvents = nil
	for _, row := range rows {
		st.FiredEvents = append(st.FiredEvents, game.FiredEvent{Label: row.Label, TS: row.TS})
	}

	st.Normalize()
	return &st, nil
}

func (r *SQLiteRepo) Save(ctx context.Context, st *game.State) error {
	if st == nil {
		return errors.New("state cannot be nil")
	}

	doc := *st
	doc.FiredEvents = nil
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO world_state (id, doc, saved_at) VALUES (1, ?, strftime('%s', 'now'))
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, saved_at = excluded.saved_at`, string(b)); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM fired_events`); err != nil {
		return fmt.Errorf("clear fired events: %w", err)
	}
	for i, ev := range st.FiredEvents {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO fired_events (seq, label, ts) VALUES (:seq, :label, :ts)`,
			firedRow{Seq: i, Label: ev.Label, TS: ev.TS}); err != nil {
			return fmt.Errorf("insert fired event: %w", err)
		}
	}
	return tx.Commit()
}
