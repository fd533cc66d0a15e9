package race

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/ohler55/ojg/oj"

	"github.com/racelap/timing-ingest-go/pkg/model"
	"github.com/racelap/timing-ingest-go/pkg/repository"
)

// Create inserts the race row including the canonical blob and returns the
// generated id and race key.
func Create(
	ctx context.Context,
	conn repository.Querier,
	meta *model.RaceMetadata,
	data *model.RaceData,
	annotations model.AnnotationSet,
	actor string,
) (id int, key uuid.UUID, err error) {
	key, err = uuid.NewV4()
	if err != nil {
		return 0, uuid.Nil, err
	}
	dataBlob, err := oj.Marshal(data)
	if err != nil {
		return 0, uuid.Nil, err
	}
	annotationBlob, err := oj.Marshal(annotations)
	if err != nil {
		return 0, uuid.Nil, err
	}
	row := conn.QueryRow(ctx, `
	insert into race (
		race_key, name, series, track, session_date, data, annotations, ingested_by
	) values ($1,$2,$3,$4,$5,$6,$7,$8)
	returning id
	`,
		key, meta.Name, meta.Series, meta.Track, meta.SessionDate,
		string(dataBlob), string(annotationBlob), actor,
	)
	if err := row.Scan(&id); err != nil {
		return 0, uuid.Nil, err
	}
	return id, key, nil
}

// LoadByID reads the race row including the stored blobs.
func LoadByID(
	ctx context.Context, conn repository.Querier, id int,
) (*model.DbRace, error) {
	row := conn.QueryRow(ctx, `
	select id, race_key, name, series, track, session_date, data, annotations,
		ingested_by, ingested_at
	from race where id=$1
	`, id)
	var (
		ret            model.DbRace
		dataBlob       []byte
		annotationBlob []byte
	)
	err := row.Scan(&ret.ID, &ret.Key,
		&ret.Metadata.Name, &ret.Metadata.Series, &ret.Metadata.Track,
		&ret.Metadata.SessionDate,
		&dataBlob, &annotationBlob,
		&ret.IngestedBy, &ret.IngestedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoRows
		}
		return nil, err
	}
	if err := oj.Unmarshal(dataBlob, &ret.Data); err != nil {
		return nil, err
	}
	if err := oj.Unmarshal(annotationBlob, &ret.Annotations); err != nil {
		return nil, err
	}
	return &ret, nil
}

// UpdateBlobs replaces the stored canonical and annotation blobs.
func UpdateBlobs(
	ctx context.Context,
	conn repository.Querier,
	id int,
	data *model.RaceData,
	annotations model.AnnotationSet,
) error {
	dataBlob, err := oj.Marshal(data)
	if err != nil {
		return err
	}
	annotationBlob, err := oj.Marshal(annotations)
	if err != nil {
		return err
	}
	tag, err := conn.Exec(ctx,
		"update race set data=$2, annotations=$3 where id=$1",
		id, string(dataBlob), string(annotationBlob))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

// Lock takes a transaction scoped advisory lock on the race id. Ingest and
// reprocess of one race must never interleave.
func Lock(ctx context.Context, conn repository.Querier, id int) error {
	_, err := conn.Exec(ctx, "select pg_advisory_xact_lock($1)", id)
	return err
}

func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	tag, err := conn.Exec(ctx, "delete from race where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
