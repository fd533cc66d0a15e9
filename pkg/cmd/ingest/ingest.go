package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/racelap/timing-ingest-go/log"
	"github.com/racelap/timing-ingest-go/pkg/config"
	"github.com/racelap/timing-ingest-go/pkg/db/postgres"
	"github.com/racelap/timing-ingest-go/pkg/model"
	"github.com/racelap/timing-ingest-go/pkg/parser"
	_ "github.com/racelap/timing-ingest-go/pkg/parser/formats"
	"github.com/racelap/timing-ingest-go/pkg/service"
	"github.com/racelap/timing-ingest-go/pkg/utils"
)

var (
	raceName    string
	raceSeries  string
	raceTrack   string
	sessionDate string
)

func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <format-id> slot=file [slot=file ...]",
		Short: "parses timing exports and persists the race",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(args[0], args[1:])
		},
	}
	cmd.Flags().StringVar(&raceName, "name", "", "race name")
	cmd.Flags().StringVar(&raceSeries, "series", "", "series name")
	cmd.Flags().StringVar(&raceTrack, "track", "", "track name")
	cmd.Flags().StringVar(&sessionDate, "date", "", "session date (RFC3339)")
	cmd.Flags().StringVar(&config.Actor, "actor", "cli", "recorded as ingested_by")
	cmd.Flags().IntVar(&config.BatchSize, "batch-size", 500,
		"number of rows per insert batch")
	return cmd
}

func runIngest(formatID string, slotArgs []string) error {
	sqlLogger := utils.SetupStdLogger()

	format, ok := parser.Lookup(formatID)
	if !ok {
		return fmt.Errorf("unknown format %q", formatID)
	}
	files, err := readSlotFiles(slotArgs)
	if err != nil {
		return err
	}

	result, err := format.Parse(files)
	if err != nil {
		if errors.Is(err, parser.ErrNotImplemented) {
			return fmt.Errorf("format %q is registered but not yet implemented", formatID)
		}
		return fmt.Errorf("parsing failed: %w", err)
	}
	for _, warning := range result.Warnings {
		log.Warn("parser warning", log.String("msg", warning))
	}

	rawData, err := oj.Marshal(result.Data)
	if err != nil {
		return err
	}
	rawAnnotations, err := oj.Marshal(result.Annotations)
	if err != nil {
		return err
	}

	var poolOpts []postgres.PoolConfigOption
	if sqlLogger.Level() == log.DebugLevel {
		poolOpts = append(poolOpts, postgres.WithTracer(sqlLogger.Sugar()))
	}
	pool := postgres.InitWithURL(config.DB, poolOpts...)
	defer postgres.CloseDb()

	ingestService := service.InitIngestService(pool,
		service.WithBatchSize(config.BatchSize))
	ingestResult, err := ingestService.Ingest(context.Background(),
		parseMetadata(), rawData, rawAnnotations, config.Actor)
	if err != nil {
		return err
	}
	for _, warning := range ingestResult.Warnings {
		log.Warn("ingest warning", log.String("msg", warning))
	}
	log.Info("done",
		log.Int("raceId", ingestResult.RaceID),
		log.String("raceKey", ingestResult.RaceKey.String()),
		log.Int("entries", ingestResult.EntriesCreated),
		log.Int("laps", ingestResult.LapsCreated))
	return nil
}

func readSlotFiles(slotArgs []string) (map[string]string, error) {
	files := make(map[string]string, len(slotArgs))
	for _, arg := range slotArgs {
		slot, filename, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("expected slot=file, got %q", arg)
		}
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filename, err)
		}
		files[slot] = string(content)
	}
	return files, nil
}

func parseMetadata() *model.RaceMetadata {
	meta := &model.RaceMetadata{
		Name:   raceName,
		Series: raceSeries,
		Track:  raceTrack,
	}
	if sessionDate != "" {
		if parsed, err := time.Parse(time.RFC3339, sessionDate); err == nil {
			meta.SessionDate = parsed
		} else {
			log.Warn("ignoring malformed session date",
				log.String("date", sessionDate))
		}
	}
	return meta
}
