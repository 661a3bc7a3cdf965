package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long:  `Walk through prompts to create a .schemaforge.yaml in the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		fmt.Println("Schemaforge Configuration Setup")
		fmt.Println("===============================")
		fmt.Println()

		entities := promptLine(reader, "Entity definitions directory", "entities")
		migrations := promptLine(reader, "Migrations output directory", "migrations")
		level := promptLine(reader, "Log level (debug/info/warn/error)", "info")

		cfg := &config.Config{
			Version:    config.CurrentVersion,
			Entities:   entities,
			Migrations: migrations,
			Logging:    config.LogConfig{Level: level},
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultPath
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("\nConfig written to %s\n", path)
		return nil
	},
}

func promptLine(reader *bufio.Reader, label, def string) string {
	fmt.Printf("%s [%s]: ", label, def)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func init() {
	rootCmd.AddCommand(initCmd)
}
