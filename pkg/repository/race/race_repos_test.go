//nolint:errcheck // ok for this test code
package race_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racelap/timing-ingest-go/pkg/model"
	"github.com/racelap/timing-ingest-go/pkg/repository"
	"github.com/racelap/timing-ingest-go/pkg/repository/race"
	base "github.com/racelap/timing-ingest-go/testsupport/basedata"
	"github.com/racelap/timing-ingest-go/testsupport/testdb"
)

func TestRaceRepository_CreateLoadRoundTrip(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	id, key, err := race.Create(ctx, pool,
		base.SampleMetadata(), base.SampleRaceData(), base.SampleAnnotations(),
		"tester")
	require.NoError(t, err)
	assert.Greater(t, id, 0)
	assert.NotEqual(t, uuid.Nil, key)

	got, err := race.LoadByID(ctx, pool, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, key, got.Key)
	assert.Equal(t, "tester", got.IngestedBy)
	assert.False(t, got.IngestedAt.IsZero())
	assert.Equal(t, base.SampleMetadata().Name, got.Metadata.Name)
	assert.Equal(t, base.SampleMetadata().SessionDate.UTC(),
		got.Metadata.SessionDate.UTC())
	if diff := cmp.Diff(base.SampleRaceData(), &got.Data); diff != "" {
		t.Errorf("stored race data mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(base.SampleAnnotations(), got.Annotations); diff != "" {
		t.Errorf("stored annotations mismatch (-want +got):\n%s", diff)
	}
}

func TestRaceRepository_LoadUnknownID(t *testing.T) {
	pool := testdb.InitTestDb()

	_, err := race.LoadByID(context.Background(), pool, 999999)
	assert.ErrorIs(t, err, repository.ErrNoRows)
}

func TestRaceRepository_UpdateBlobs(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	id := base.CreateSampleRace(pool)

	changed := base.SampleRaceData()
	changed.GreenPaceCutoff = 123.4
	changed.Fcy = append(changed.Fcy, model.FcyWindow{StartLap: 5, EndLap: 5})
	require.NoError(t, race.UpdateBlobs(ctx, pool, id, changed, make(model.AnnotationSet)))

	got, err := race.LoadByID(ctx, pool, id)
	require.NoError(t, err)
	assert.InDelta(t, 123.4, got.Data.GreenPaceCutoff, 1e-9)
	assert.Len(t, got.Data.Fcy, 2)
	assert.Empty(t, got.Annotations)

	assert.ErrorIs(t,
		race.UpdateBlobs(ctx, pool, 999999, changed, make(model.AnnotationSet)),
		repository.ErrNoRows)
}

func TestRaceRepository_Delete(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	id := base.CreateSampleRace(pool)

	num, err := race.DeleteByID(ctx, pool, id)
	require.NoError(t, err)
	assert.Equal(t, 1, num)

	_, err = race.LoadByID(ctx, pool, id)
	assert.ErrorIs(t, err, repository.ErrNoRows)
}
