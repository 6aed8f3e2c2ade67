// Command seeder copies a Pokedex CSV into one of the catalog backing stores
// the API can read from.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	csvPath string
	dryRun  bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:          "seeder",
		Short:        "Load a Pokedex CSV into Postgres, Redis or MySQL",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.csvPath, "csv", "pokemon.csv", "Pokedex CSV file")
	root.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Parse and validate the CSV without writing")

	root.AddCommand(
		newPostgresCmd(&flags),
		newRedisCmd(&flags),
		newMySQLCmd(&flags),
	)
	return root
}
