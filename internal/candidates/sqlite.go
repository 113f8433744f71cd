package candidates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS candidates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	role TEXT NOT NULL DEFAULT '',
	experience_years INTEGER NOT NULL DEFAULT 0,
	level TEXT NOT NULL DEFAULT 'Pending',
	skills TEXT NOT NULL DEFAULT '',
	document_path TEXT NOT NULL DEFAULT ''
);
`

const selectColumns = `id, first_name, last_name, email, role, experience_years, level, skills, document_path`

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and initializes) a SQLite candidate database at path.
func OpenSQLite(ctx context.Context, path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) Create(ctx context.Context, c *Candidate) (int64, error) {
	if err := Validate(c); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO candidates (first_name, last_name, email, role, experience_years, level, skills, document_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.Role, c.ExperienceYears, defaultLevel(c), c.Skills, c.DocumentPath,
	)
	if err != nil {
		return 0, fmt.Errorf("insert candidate: %w", err)
	}

	return res.LastInsertId()
}

func (s *sqliteStore) Get(ctx context.Context, id int64) (*Candidate, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM candidates WHERE id = ?`, id)

	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate %d: %w", id, err)
	}

	return c, nil
}

func (s *sqliteStore) List(ctx context.Context) ([]*Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM candidates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var result []*Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

func (s *sqliteStore) UpdateFields(ctx context.Context, id int64, fields Fields) error {
	query, args, err := updateQuery(id, fields, questionPlaceholder)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update candidate %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (*Candidate, error) {
	var c Candidate
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Role,
		&c.ExperienceYears, &c.Level, &c.Skills, &c.DocumentPath)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
