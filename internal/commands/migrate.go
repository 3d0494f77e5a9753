package commands

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/club_ledger_app/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := database.MigrateUp
			if len(args) == 1 {
				direction = database.MigrateDirection(args[0])
			}
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction, logger)
		},
	}
}
