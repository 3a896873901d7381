package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	pg "github.com/Trinidad006/CownectWeb-sub000/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de Postgres (goose)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(dsn) == "" {
				dsn = os.Getenv("DB_DSN")
			}
			if strings.TrimSpace(dsn) == "" {
				return errors.New("migrate: --dsn or DB_DSN is required")
			}

			db, err := pg.Open(dsn)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			defer db.Close()

			if err := pg.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres DSN (overrides DB_DSN)")
	return cmd
}
