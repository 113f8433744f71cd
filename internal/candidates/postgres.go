package candidates

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS candidates (
	id BIGSERIAL PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	role TEXT NOT NULL DEFAULT '',
	experience_years INTEGER NOT NULL DEFAULT 0,
	level TEXT NOT NULL DEFAULT 'Pending',
	skills TEXT NOT NULL DEFAULT '',
	document_path TEXT NOT NULL DEFAULT ''
)`

type postgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to PostgreSQL and makes sure the candidates table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *postgresStore) Create(ctx context.Context, c *Candidate) (int64, error) {
	if err := Validate(c); err != nil {
		return 0, err
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO candidates (first_name, last_name, email, role, experience_years, level, skills, document_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		c.FirstName, c.LastName, c.Email, c.Role, c.ExperienceYears, defaultLevel(c), c.Skills, c.DocumentPath,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create candidate: %w", err)
	}

	return id, nil
}

func (s *postgresStore) Get(ctx context.Context, id int64) (*Candidate, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM candidates WHERE id = $1`, id)

	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate %d: %w", id, err)
	}

	return c, nil
}

func (s *postgresStore) List(ctx context.Context) ([]*Candidate, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM candidates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
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

func (s *postgresStore) UpdateFields(ctx context.Context, id int64, fields Fields) error {
	query, args, err := updateQuery(id, fields, dollarPlaceholder)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update candidate %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
