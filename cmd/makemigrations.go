package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/classify"
	"github.com/schemaforge/schemaforge/internal/engine"
	"github.com/schemaforge/schemaforge/internal/prompt"
)

var (
	makeEntitiesDir   string
	makeMigrationsDir string
	makeForce         bool
)

var makemigrationsCmd = &cobra.Command{
	Use:   "makemigrations",
	Short: "Diff definitions against snapshots and generate migration files",
	Long: `Scan the entity definitions directory, compare each table against its
persisted snapshot, and write create or alter migration files for every
change. Destructive changes (type changes, nullable to not-null) stop
the run unless acknowledged or forced with --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		eng := &engine.Engine{Config: cfg, Logger: logger}
		err = eng.Run(engine.RunOptions{
			EntitiesDir:   makeEntitiesDir,
			MigrationsDir: makeMigrationsDir,
			Force:         makeForce,
			Decide:        prompt.Confirm,
		})
		if errors.Is(err, classify.ErrDestructiveBlocked) {
			return fmt.Errorf("aborted: %w", err)
		}
		return err
	},
}

func init() {
	makemigrationsCmd.Flags().StringVar(&makeEntitiesDir, "entities", "", "entity definitions directory (default: from config)")
	makemigrationsCmd.Flags().StringVar(&makeMigrationsDir, "migrations", "", "migrations output directory (default: from config)")
	makemigrationsCmd.Flags().BoolVar(&makeForce, "force", false, "skip the destructive change gate")
	rootCmd.AddCommand(makemigrationsCmd)
}
