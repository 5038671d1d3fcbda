package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Merge copies every touch from inputs into output, keeping session ids and
// timestamps. Everything is written in a single transaction.
func Merge(ctx context.Context, inputs []*SQLiteStorage, output *SQLiteStorage) error {
	tx, err := output.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	insert, err := tx.PrepareContext(ctx, `insert into touches(session, row, col, x, y, pressed, ts)
	    values(?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare insert: %w", err)
	}
	defer insert.Close()

	for i, input := range inputs {
		copied, err := copyTouches(ctx, input, insert)
		if err != nil {
			return fmt.Errorf("could not copy input %d: %w", i, err)
		}

		slog.Info("Merged input", "index", i, "touches", copied)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit merge: %w", err)
	}

	return nil
}

func copyTouches(ctx context.Context, input *SQLiteStorage, insert *sql.Stmt) (int, error) {
	rows, err := input.db.QueryContext(ctx,
		`select session, row, col, x, y, pressed, ts from touches order by ts, rowid`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	copied := 0

	for rows.Next() {
		var (
			session        string
			row, col, x, y int
			pressed        bool
			ts             time.Time
		)

		if err := rows.Scan(&session, &row, &col, &x, &y, &pressed, &ts); err != nil {
			return copied, err
		}

		if _, err := insert.ExecContext(ctx, session, row, col, x, y, pressed, ts); err != nil {
			return copied, err
		}

		copied++
	}

	return copied, rows.Err()
}
