package db

import (
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/dasdy/flaykeys/logging"
	"github.com/dasdy/flaykeys/model"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/schollz/progressbar/v3"
)

type SQLiteStorage struct {
	db           *sql.DB
	session      string
	showProgress bool
	now          func() time.Time
}

func InitDBStorage(db *sql.DB) error {
	statements := []string{
		`create table if not exists touches(
			session text, row int, col int, x int, y int, pressed bool, ts datetime);`,
		`create index if not exists touches_tsix on touches (ts ASC);`,
	}

	for _, sqlStmt := range statements {
		if _, err := db.Exec(sqlStmt); err != nil {
			return fmt.Errorf("could not run %q: %w", sqlStmt, err)
		}
	}

	return nil
}

// NewStorageFromPath opens (and creates when missing) the sqlite database at path.
func NewStorageFromPath(path string, showProgress bool) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	// Every connection to :memory: is a separate database.
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := InitDBStorage(conn); err != nil {
		conn.Close()

		return nil, err
	}

	return NewStorageFromConnection(conn, showProgress)
}

// NewStorageFromConnection wraps an already initialized connection. Every
// storage records its touches under a fresh session id.
func NewStorageFromConnection(conn *sql.DB, showProgress bool) (*SQLiteStorage, error) {
	session, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("could not create session id: %w", err)
	}

	slog.DebugContext(logging.PackageCtx("db"), "Storage opened", "session", session.String())

	return &SQLiteStorage{
		db:           conn,
		session:      session.String(),
		showProgress: showProgress,
		now:          time.Now,
	}, nil
}

func (s *SQLiteStorage) Session() string {
	return s.session
}

func (s *SQLiteStorage) Store(touch *model.KeyTouch) error {
	_, err := s.db.Exec(`insert into touches(session, row, col, x, y, pressed, ts)
	    values(?, ?, ?, ?, ?, ?, ?)`,
		s.session, touch.Position.Row, touch.Position.Col, touch.X, touch.Y, touch.Pressed, s.now())
	if err != nil {
		return fmt.Errorf("could not store touch: %w", err)
	}

	return nil
}

// GatherAll counts releases per key over every session.
func (s *SQLiteStorage) GatherAll() ([]model.KeyHitCount, error) {
	rows, err := s.db.Query(
		`select row, col, count(*) as cnt
        from touches
        where pressed = false
        group by row, col
        order by row, col`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	result := make([]model.KeyHitCount, 0)

	for rows.Next() {
		var row, col, count int

		if err = rows.Scan(&row, &col, &count); err != nil {
			return nil, err
		}

		result = append(result, model.KeyHitCount{Position: model.RowCol{Row: row, Col: col}, Count: count})
	}

	return result, rows.Err()
}

func (s *SQLiteStorage) count() (int64, error) {
	var total int64

	err := s.db.QueryRow(`select count(*) from touches`).Scan(&total)

	return total, err
}

// AllIterator yields every stored touch ordered by time. Scan errors end the
// sequence early and are logged.
func (s *SQLiteStorage) AllIterator() (iter.Seq[model.KeyTouchWithTimestamp], error) {
	var bar *progressbar.ProgressBar

	if s.showProgress {
		total, err := s.count()
		if err != nil {
			return nil, fmt.Errorf("could not count touches: %w", err)
		}

		bar = progressbar.Default(total, "replaying touches")
	}

	rows, err := s.db.Query(
		`select row, col, x, y, pressed, ts
        from touches
        order by ts, rowid`)
	if err != nil {
		return nil, err
	}

	return func(yield func(model.KeyTouchWithTimestamp) bool) {
		defer rows.Close()

		if bar != nil {
			defer bar.Finish()
		}

		for rows.Next() {
			var item model.KeyTouchWithTimestamp

			err := rows.Scan(
				&item.Position.Row, &item.Position.Col,
				&item.X, &item.Y, &item.Pressed, &item.Timestamp)
			if err != nil {
				slog.Error("Could not scan touch", "error", err)

				return
			}

			if bar != nil {
				_ = bar.Add(1)
			}

			if !yield(item) {
				return
			}
		}
	}, nil
}

func (s *SQLiteStorage) Close() {
	if err := s.db.Close(); err != nil {
		slog.Error("Could not close storage", "error", err)
	}
}
