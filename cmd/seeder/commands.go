package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/battlebrain/predict-api/internal/catalog"
	"github.com/battlebrain/predict-api/internal/models"
)

func newPostgresCmd(flags *rootFlags) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "postgres",
		Short: "Upsert the Pokedex into the pokedex table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context(), flags, func(ctx context.Context, records []models.Pokemon) (int, error) {
				pool, err := pgxpool.New(ctx, url)
				if err != nil {
					return 0, fmt.Errorf("postgres pool: %w", err)
				}
				defer pool.Close()
				return catalog.SeedPostgres(ctx, pool, records)
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", envOr("POSTGRES_URL", "postgres://localhost:5432/battlebrain"), "Postgres connection URL")
	return cmd
}

func newRedisCmd(flags *rootFlags) *cobra.Command {
	var url, key string

	cmd := &cobra.Command{
		Use:   "redis",
		Short: "Replace the Pokedex hash in Redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context(), flags, func(ctx context.Context, records []models.Pokemon) (int, error) {
				opts, err := redis.ParseURL(url)
				if err != nil {
					return 0, fmt.Errorf("parse redis url: %w", err)
				}
				client := redis.NewClient(opts)
				defer client.Close()
				return catalog.SeedRedis(ctx, client, key, records)
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", envOr("REDIS_URL", "redis://localhost:6379/0"), "Redis connection URL")
	cmd.Flags().StringVar(&key, "key", envOr("REDIS_CATALOG_KEY", catalog.DefaultRedisKey), "Hash key holding the Pokedex")
	return cmd
}

func newMySQLCmd(flags *rootFlags) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "mysql",
		Short: "Upsert the Pokedex into the pokedex table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context(), flags, func(ctx context.Context, records []models.Pokemon) (int, error) {
				src, err := catalog.NewMySQLSource(dsn)
				if err != nil {
					return 0, err
				}
				defer src.DB().Close()
				return catalog.SeedMySQL(ctx, src.DB(), records)
			})
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", envOr("MYSQL_DSN", "root@tcp(localhost:3306)/battlebrain"), "MySQL DSN")
	return cmd
}

type seedFunc func(ctx context.Context, records []models.Pokemon) (int, error)

func seed(ctx context.Context, flags *rootFlags, write seedFunc) error {
	records, err := catalog.NewCSVSource(flags.csvPath).Load(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d Pokemon from %s\n", len(records), flags.csvPath)

	if flags.dryRun {
		fmt.Println("Dry run: nothing written")
		return nil
	}

	n, err := write(ctx, records)
	if err != nil {
		return fmt.Errorf("seeding stopped after %d records: %w", n, err)
	}
	fmt.Printf("Seeded %d Pokemon\n", n)
	return nil
}
