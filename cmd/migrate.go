package cmd

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"brickyard.GO/config"
)

var migratePath string

func newMigrator() (*migrate.Migrate, error) {
	return migrate.New("file://"+migratePath, config.MigrateDSN())
}

var migrateUpCmd = &cobra.Command{
	Use:   "migrate:up",
	Short: "Apply all pending database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newMigrator()
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			return
		}
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("No pending migrations.")
				return
			}
			fmt.Printf("Migrate up failed: %v\n", err)
			return
		}
		fmt.Println("Migrations applied.")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "migrate:down",
	Short: "Roll back the most recent migration",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newMigrator()
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			return
		}
		if err := m.Steps(-1); err != nil {
			fmt.Printf("Migrate down failed: %v\n", err)
			return
		}
		fmt.Println("Rolled back one migration.")
	},
}

func init() {
	for _, c := range []*cobra.Command{migrateUpCmd, migrateDownCmd} {
		c.Flags().StringVar(&migratePath, "path", "migrations", "Migrations directory")
		rootCmd.AddCommand(c)
	}
}
