package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/battlebrain/predict-api/internal/models"
)

const createPostgresTableSQL = `
	CREATE TABLE IF NOT EXISTS pokedex (
		id         INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		type_1     TEXT NOT NULL,
		type_2     TEXT,
		hp         DOUBLE PRECISION NOT NULL,
		attack     DOUBLE PRECISION NOT NULL,
		defense    DOUBLE PRECISION NOT NULL,
		sp_atk     DOUBLE PRECISION NOT NULL,
		sp_def     DOUBLE PRECISION NOT NULL,
		speed      DOUBLE PRECISION NOT NULL,
		generation INTEGER NOT NULL DEFAULT 0,
		legendary  BOOLEAN NOT NULL DEFAULT FALSE
	)`

const upsertPostgresSQL = `
	INSERT INTO pokedex (id, name, type_1, type_2, hp, attack, defense, sp_atk, sp_def, speed, generation, legendary)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name, type_1 = EXCLUDED.type_1, type_2 = EXCLUDED.type_2,
		hp = EXCLUDED.hp, attack = EXCLUDED.attack, defense = EXCLUDED.defense,
		sp_atk = EXCLUDED.sp_atk, sp_def = EXCLUDED.sp_def, speed = EXCLUDED.speed,
		generation = EXCLUDED.generation, legendary = EXCLUDED.legendary`

const createMySQLTableSQL = `
	CREATE TABLE IF NOT EXISTS pokedex (
		id         INT PRIMARY KEY,
		name       VARCHAR(64) NOT NULL,
		type_1     VARCHAR(16) NOT NULL,
		type_2     VARCHAR(16) NULL,
		hp         DOUBLE NOT NULL,
		attack     DOUBLE NOT NULL,
		defense    DOUBLE NOT NULL,
		sp_atk     DOUBLE NOT NULL,
		sp_def     DOUBLE NOT NULL,
		speed      DOUBLE NOT NULL,
		generation INT NOT NULL DEFAULT 0,
		legendary  BOOLEAN NOT NULL DEFAULT FALSE
	)`

const upsertMySQLSQL = `
	INSERT INTO pokedex (id, name, type_1, type_2, hp, attack, defense, sp_atk, sp_def, speed, generation, legendary)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		name = VALUES(name), type_1 = VALUES(type_1), type_2 = VALUES(type_2),
		hp = VALUES(hp), attack = VALUES(attack), defense = VALUES(defense),
		sp_atk = VALUES(sp_atk), sp_def = VALUES(sp_def), speed = VALUES(speed),
		generation = VALUES(generation), legendary = VALUES(legendary)`

// PgBeginner is the subset of *pgxpool.Pool the seeder needs
type PgBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RedisHashWriter is the subset of the Redis client the seeder needs
type RedisHashWriter interface {
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

func rowArgs(p models.Pokemon) []any {
	var type2 any
	if p.SecondaryType != "" {
		type2 = p.SecondaryType
	}
	return []any{
		p.ID, p.Name, p.PrimaryType, type2,
		p.Stats.HP, p.Stats.Attack, p.Stats.Defense,
		p.Stats.SpAtk, p.Stats.SpDef, p.Stats.Speed,
		p.Generation, p.Legendary,
	}
}

// SeedPostgres creates the pokedex table if needed and upserts every record
// in one transaction.
func SeedPostgres(ctx context.Context, db PgBeginner, records []models.Pokemon) (int, error) {
	if err := validateRecords(records); err != nil {
		return 0, err
	}
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, createPostgresTableSQL); err != nil {
		return 0, fmt.Errorf("create pokedex table: %w", err)
	}
	for _, p := range records {
		if _, err := tx.Exec(ctx, upsertPostgresSQL, rowArgs(p)...); err != nil {
			return 0, fmt.Errorf("upsert pokemon %d: %w", p.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(records), nil
}

// SeedMySQL creates the pokedex table if needed and upserts every record in
// one transaction.
func SeedMySQL(ctx context.Context, db *sql.DB, records []models.Pokemon) (int, error) {
	if err := validateRecords(records); err != nil {
		return 0, err
	}
	if _, err := db.ExecContext(ctx, createMySQLTableSQL); err != nil {
		return 0, fmt.Errorf("create pokedex table: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertMySQLSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range records {
		if _, err := stmt.ExecContext(ctx, rowArgs(p)...); err != nil {
			return 0, fmt.Errorf("upsert pokemon %d: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(records), nil
}

// SeedRedis replaces the hash at key with one JSON field per record. The
// delete and the write run in one MULTI/EXEC so readers never see an empty
// hash.
func SeedRedis(ctx context.Context, client RedisHashWriter, key string, records []models.Pokemon) (int, error) {
	if err := validateRecords(records); err != nil {
		return 0, err
	}
	if key == "" {
		key = DefaultRedisKey
	}

	values := make([]interface{}, 0, 2*len(records))
	for _, p := range records {
		data, err := json.Marshal(p)
		if err != nil {
			return 0, fmt.Errorf("encode pokemon %d: %w", p.ID, err)
		}
		values = append(values, strconv.Itoa(p.ID), string(data))
	}

	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, values...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("replace %s: %w", key, err)
	}
	return len(records), nil
}
