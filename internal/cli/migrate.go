package cli

import (
	"fmt"

	"github.com/Marga-Ghale/ora-lists/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts Options) *cobra.Command {
	var (
		dbURL string
		path  string
		steps int
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&dbURL, "url", opts.Config.DatabaseURL, "Database connection URL")
	cmd.PersistentFlags().StringVar(&path, "path", opts.Config.MigrationsPath, "Directory containing migration files")

	open := func() (*db.Migrator, error) {
		return db.NewMigrator(dbURL, path)
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Up(); err != nil {
				return err
			}
			return printVersion(cmd, m)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Down(steps); err != nil {
				return err
			}
			return printVersion(cmd, m)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()
			return printVersion(cmd, m)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func printVersion(cmd *cobra.Command, m *db.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}
