// Package service drives the validate, annotate and persist sequence for
// one race.
package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/racelap/timing-ingest-go/log"
	"github.com/racelap/timing-ingest-go/pkg/model"
	"github.com/racelap/timing-ingest-go/pkg/repository"
	entryrepos "github.com/racelap/timing-ingest-go/pkg/repository/entry"
	laprepos "github.com/racelap/timing-ingest-go/pkg/repository/lap"
	racerepos "github.com/racelap/timing-ingest-go/pkg/repository/race"
	"github.com/racelap/timing-ingest-go/pkg/validate"
)

type IngestService struct {
	pool      *pgxpool.Pool
	batchSize int
	l         *log.Logger
}

type IngestServiceOption func(s *IngestService)

// WithBatchSize overrides the insert batch size. Results are identical
// for any positive value.
func WithBatchSize(size int) IngestServiceOption {
	return func(s *IngestService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

func InitIngestService(pool *pgxpool.Pool, opts ...IngestServiceOption) *IngestService {
	s := &IngestService{
		pool:      pool,
		batchSize: repository.DefaultBatchSize,
		l:         log.Default().Named("service.ingest"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest validates the canonical blob, degrades a broken annotation blob
// to an empty set, and persists the race with its entry and lap rows in
// one transaction. A structural validation failure aborts before any
// write.
func (s *IngestService) Ingest(
	ctx context.Context,
	meta *model.RaceMetadata,
	rawData []byte,
	rawAnnotations []byte,
	actor string,
) (*model.IngestResult, error) {
	data, err := validate.DecodeRaceData(rawData)
	if err != nil {
		return nil, err
	}
	annotations, warnings := validate.DecodeAnnotations(rawAnnotations)
	warnings = append(warnings, validate.Semantic(data, annotations)...)

	ret := &model.IngestResult{Warnings: warnings}
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		ret.RaceID, ret.RaceKey, err = racerepos.Create(
			ctx, tx, meta, data, annotations, actor)
		if err != nil {
			return err
		}
		return s.persistRows(ctx, tx, ret.RaceID, data, ret)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting race: %w", err)
	}
	s.l.Info("race ingested",
		log.Int("raceId", ret.RaceID),
		log.Int("entries", ret.EntriesCreated),
		log.Int("laps", ret.LapsCreated),
		log.Int("warnings", len(ret.Warnings)))
	return ret, nil
}

// Reprocess re-derives the entry and lap rows of a race from the stored
// canonical blob without re-running the format parser. Prior rows are
// deleted and recreated inside one transaction; a failure midway leaves
// the previous rows untouched.
func (s *IngestService) Reprocess(
	ctx context.Context, raceID int,
) (*model.IngestResult, error) {
	ret := &model.IngestResult{RaceID: raceID, Warnings: make([]string, 0)}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		// serialize concurrent reprocess calls on the same race
		if err := racerepos.Lock(ctx, tx, raceID); err != nil {
			return err
		}
		dbRace, err := racerepos.LoadByID(ctx, tx, raceID)
		if err != nil {
			return err
		}
		if err := validate.Structural(&dbRace.Data); err != nil {
			return err
		}
		ret.RaceKey = dbRace.Key
		ret.Warnings = append(ret.Warnings,
			validate.Semantic(&dbRace.Data, dbRace.Annotations)...)

		if _, err := entryrepos.DeleteByRaceID(ctx, tx, raceID); err != nil {
			return err
		}
		if _, err := laprepos.DeleteByRaceID(ctx, tx, raceID); err != nil {
			return err
		}
		return s.persistRows(ctx, tx, raceID, &dbRace.Data, ret)
	})
	if err != nil {
		return nil, fmt.Errorf("reprocessing race %d: %w", raceID, err)
	}
	s.l.Info("race reprocessed",
		log.Int("raceId", ret.RaceID),
		log.Int("entries", ret.EntriesCreated),
		log.Int("laps", ret.LapsCreated))
	return ret, nil
}

func (s *IngestService) persistRows(
	ctx context.Context,
	tx pgx.Tx,
	raceID int,
	data *model.RaceData,
	ret *model.IngestResult,
) error {
	var err error
	ret.EntriesCreated, err = entryrepos.CreateBulk(ctx, tx, raceID, data, s.batchSize)
	if err != nil {
		return err
	}
	ret.LapsCreated, err = laprepos.CreateBulk(ctx, tx, raceID, data, s.batchSize)
	return err
}
