package migrate

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/racelap/timing-ingest-go/log"
	"github.com/racelap/timing-ingest-go/pkg/config"
	"github.com/racelap/timing-ingest-go/pkg/db/migrate"
	"github.com/racelap/timing-ingest-go/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration()
		},
	}
	cmd.Flags().StringVarP(&config.MigrationSourceURL,
		"migration-source-url",
		"m",
		"",
		"url to migration files (default: embedded migrations)")
	return cmd
}

func startMigration() error {
	utils.SetupStdLogger()
	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}

	if config.MigrationSourceURL != "" {
		log.Info("Using migration files at",
			log.String("source", config.MigrationSourceURL))
		err = migrate.MigrateDbFromSource(config.MigrationSourceURL, config.DB)
	} else {
		err = migrate.MigrateDb(config.DB)
	}
	if err != nil {
		log.Fatal("Could not perform migration", log.ErrorField(err))
	}
	log.Info("Migration done")
	return nil
}
