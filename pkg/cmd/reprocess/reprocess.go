package reprocess

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/racelap/timing-ingest-go/log"
	"github.com/racelap/timing-ingest-go/pkg/config"
	"github.com/racelap/timing-ingest-go/pkg/db/postgres"
	"github.com/racelap/timing-ingest-go/pkg/service"
	"github.com/racelap/timing-ingest-go/pkg/utils"
)

func NewReprocessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reprocess <race-id>",
		Short: "recreates entry and lap rows from the stored canonical data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid race id %q", args[0])
			}
			return runReprocess(raceID)
		},
	}
	cmd.Flags().IntVar(&config.BatchSize, "batch-size", 500,
		"number of rows per insert batch")
	return cmd
}

func runReprocess(raceID int) error {
	sqlLogger := utils.SetupStdLogger()

	var poolOpts []postgres.PoolConfigOption
	if sqlLogger.Level() == log.DebugLevel {
		poolOpts = append(poolOpts, postgres.WithTracer(sqlLogger.Sugar()))
	}
	pool := postgres.InitWithURL(config.DB, poolOpts...)
	defer postgres.CloseDb()

	ingestService := service.InitIngestService(pool,
		service.WithBatchSize(config.BatchSize))
	result, err := ingestService.Reprocess(context.Background(), raceID)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		log.Warn("reprocess warning", log.String("msg", warning))
	}
	log.Info("done",
		log.Int("raceId", result.RaceID),
		log.Int("entries", result.EntriesCreated),
		log.Int("laps", result.LapsCreated))
	return nil
}
