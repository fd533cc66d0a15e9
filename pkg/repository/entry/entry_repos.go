package entry

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/racelap/timing-ingest-go/pkg/model"
	"github.com/racelap/timing-ingest-go/pkg/repository"
)

// CreateBulk inserts one entry row per car, batched. Cars are written in
// ascending car number order so reruns produce identical rows.
func CreateBulk(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
	data *model.RaceData,
	batchSize int,
) (int, error) {
	if batchSize <= 0 {
		batchSize = repository.DefaultBatchSize
	}
	nums := make([]string, 0, len(data.Cars))
	for num := range data.Cars {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool {
		return data.Cars[nums[i]].Num < data.Cars[nums[j]].Num
	})

	created := 0
	batch := &pgx.Batch{}
	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		if err := conn.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
		created += batch.Len()
		batch = &pgx.Batch{}
		return nil
	}
	for _, num := range nums {
		car := data.Cars[num]
		batch.Queue(`
	insert into race_entry (
		race_id, car_num, team, class, finish_pos, finish_pos_class
	) values ($1,$2,$3,$4,$5,$6)
	`,
			raceID, num, car.Team, car.Class, car.FinishPos, car.FinishPosClass)
		if batch.Len() >= batchSize {
			if err := flush(); err != nil {
				return created, err
			}
		}
	}
	if err := flush(); err != nil {
		return created, err
	}
	return created, nil
}

func DeleteByRaceID(ctx context.Context, conn repository.Querier, raceID int) (int, error) {
	tag, err := conn.Exec(ctx, "delete from race_entry where race_id=$1", raceID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
