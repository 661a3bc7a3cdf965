package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/classify"
	"github.com/schemaforge/schemaforge/internal/engine"
	"github.com/schemaforge/schemaforge/pkg/schema"
)

var (
	statusEntitiesDir   string
	statusMigrationsDir string

	tableStyle   = lipgloss.NewStyle().Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	upToDateText = "All definitions match their snapshots. Nothing to generate."
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending schema changes without writing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		entities := statusEntitiesDir
		if entities == "" {
			entities = cfg.Entities
		}
		migrations := statusMigrationsDir
		if migrations == "" {
			migrations = cfg.Migrations
		}

		eng := &engine.Engine{Config: cfg, Logger: logger}
		pending, err := eng.Pending(entities, migrations)
		if err != nil {
			return err
		}

		if len(pending) == 0 {
			fmt.Println(upToDateText)
			return nil
		}

		for _, p := range pending {
			printTableStatus(p)
		}

		var changeSets []schema.Changes
		for _, p := range pending {
			changeSets = append(changeSets, p.Changes)
		}
		if blocking := classify.Destructive(changeSets); len(blocking) > 0 {
			fmt.Println(warnStyle.Render("Destructive changes pending:"))
			for _, line := range blocking {
				fmt.Println(warnStyle.Render(line))
			}
		}
		return nil
	},
}

func printTableStatus(p engine.PendingTable) {
	if p.Changes.IsNewTable {
		fmt.Println(tableStyle.Render(p.Schema.TableName) + detailStyle.Render("  (new table)"))
		fmt.Println(detailStyle.Render(fmt.Sprintf("  %d columns, %d foreign keys, %d indexes",
			len(p.Schema.Columns), len(p.Schema.ForeignKeys), len(p.Schema.Indexes))))
		return
	}

	fmt.Println(tableStyle.Render(p.Schema.TableName))
	c := p.Changes
	for _, col := range c.AddedColumns {
		fmt.Println(detailStyle.Render("  + column " + col.Name))
	}
	for _, name := range c.DroppedColumns {
		fmt.Println(detailStyle.Render("  - column " + name))
	}
	for _, m := range c.ModifiedColumns {
		fmt.Println(detailStyle.Render(fmt.Sprintf("  ~ column %s (%s -> %s)",
			m.New.Name, m.Old.Type, m.New.Type)))
	}
	for _, fk := range c.AddedFKs {
		fmt.Println(detailStyle.Render("  + foreign key " + fk.Identity()))
	}
	for _, fk := range c.DroppedFKs {
		fmt.Println(detailStyle.Render("  - foreign key " + fk.Identity()))
	}
	for _, idx := range c.AddedIndexes {
		fmt.Println(detailStyle.Render("  + index " + idx.Name))
	}
	for _, idx := range c.DroppedIndexes {
		fmt.Println(detailStyle.Render("  - index " + idx.Name))
	}
}

func init() {
	statusCmd.Flags().StringVar(&statusEntitiesDir, "entities", "", "entity definitions directory (default: from config)")
	statusCmd.Flags().StringVar(&statusMigrationsDir, "migrations", "", "migrations output directory (default: from config)")
	rootCmd.AddCommand(statusCmd)
}
