package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// RaceMetadata describes the race an export belongs to.
type RaceMetadata struct {
	Name        string    `json:"name"`
	Series      string    `json:"series"`
	Track       string    `json:"track"`
	SessionDate time.Time `json:"sessionDate"`
}

// DbRace is the race row including the persisted canonical blob.
type DbRace struct {
	ID          int           `json:"id"`
	Key         uuid.UUID     `json:"key"`
	Metadata    RaceMetadata  `json:"metadata"`
	Data        RaceData      `json:"data"`
	Annotations AnnotationSet `json:"annotations"`
	IngestedBy  string        `json:"ingestedBy"`
	IngestedAt  time.Time     `json:"ingestedAt"`
}

// IngestResult summarizes one ingest or reprocess call.
type IngestResult struct {
	RaceID         int       `json:"raceId"`
	RaceKey        uuid.UUID `json:"raceKey"`
	EntriesCreated int       `json:"entriesCreated"`
	LapsCreated    int       `json:"lapsCreated"`
	Warnings       []string  `json:"warnings"`
}
