package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/battlebrain/predict-api/internal/models"
)

// PgQuerier is the subset of *pgxpool.Pool the Postgres source needs
type PgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const selectPokedexSQL = `
	SELECT id, name, type_1, COALESCE(type_2, ''),
		hp, attack, defense, sp_atk, sp_def, speed,
		generation, legendary
	FROM pokedex
	ORDER BY id`

// PostgresSource loads the catalog from the pokedex table
type PostgresSource struct {
	db PgQuerier
}

func NewPostgresSource(db PgQuerier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) ([]models.Pokemon, error) {
	rows, err := s.db.Query(ctx, selectPokedexSQL)
	if err != nil {
		return nil, fmt.Errorf("query pokedex: %w", err)
	}
	defer rows.Close()

	var out []models.Pokemon
	for rows.Next() {
		var p models.Pokemon
		if err := rows.Scan(
			&p.ID, &p.Name, &p.PrimaryType, &p.SecondaryType,
			&p.Stats.HP, &p.Stats.Attack, &p.Stats.Defense,
			&p.Stats.SpAtk, &p.Stats.SpDef, &p.Stats.Speed,
			&p.Generation, &p.Legendary,
		); err != nil {
			return nil, fmt.Errorf("scan pokedex row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pokedex: %w", err)
	}

	if err := validateRecords(out); err != nil {
		return nil, err
	}
	return out, nil
}
