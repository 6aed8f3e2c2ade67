package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/battlebrain/predict-api/internal/models"
)

// MySQLSource loads the catalog from a MySQL pokedex table
type MySQLSource struct {
	db *sql.DB
}

// NewMySQLSource validates the DSN and opens a lazy connection pool.
func NewMySQLSource(dsn string) (*MySQLSource, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	return &MySQLSource{db: sql.OpenDB(connector)}, nil
}

func (s *MySQLSource) Name() string { return "mysql" }

// DB exposes the pool so callers can share and close it.
func (s *MySQLSource) DB() *sql.DB { return s.db }

func (s *MySQLSource) Load(ctx context.Context) ([]models.Pokemon, error) {
	rows, err := s.db.QueryContext(ctx, selectPokedexSQL)
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
