// README: Airport directory loader backed by PostgreSQL.
package airport

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LoadAll reads the whole airports table ordered by code, which fixes the
// order used when a city has several airports.
func (s *Store) LoadAll(ctx context.Context) ([]Airport, error) {
	rows, err := s.db.Query(ctx, `SELECT code, name, city, country FROM airports ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query airports: %w", err)
	}
	defer rows.Close()

	var airports []Airport
	for rows.Next() {
		var a Airport
		var code string
		if err := rows.Scan(&code, &a.Name, &a.City, &a.Country); err != nil {
			return nil, fmt.Errorf("scan airport: %w", err)
		}
		a.Code = Code(code)
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(airports) == 0 {
		return nil, ErrEmptyDirectory
	}
	return airports, nil
}

// Seed inserts the given airports, leaving existing codes untouched.
func (s *Store) Seed(ctx context.Context, airports []Airport) error {
	for _, a := range airports {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO airports (code, name, city, country)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO NOTHING
		`, string(a.Code), a.Name, a.City, a.Country); err != nil {
			return fmt.Errorf("seed airport %s: %w", a.Code, err)
		}
	}
	return nil
}

// LoadDirectory builds a Directory from the database.
func LoadDirectory(ctx context.Context, s *Store) (*Directory, error) {
	airports, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewDirectory(airports), nil
}
