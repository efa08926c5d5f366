package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core/assignment"
	"github.com/mwalimu/darasa/core/attendance"
	"github.com/mwalimu/darasa/core/comm"
	"github.com/mwalimu/darasa/core/grade"
	"github.com/mwalimu/darasa/core/schema"
	"github.com/mwalimu/darasa/core/student"
	"github.com/mwalimu/darasa/core/table"
	"github.com/mwalimu/darasa/storage/table/fixture"
)

// seed copies the embedded sample dataset into the configured boundary.
// Records are created fresh; the boundary assigns new ids, so references
// only line up on an empty target.
func (cli *commandLine) seed() error {
	source, err := fixture.Open()
	if err != nil {
		return errors.Wrap(err, "opening sample dataset")
	}

	ctx := context.Background()
	schemas := []schema.Schema{
		student.Schema,
		assignment.Schema,
		grade.Schema,
		attendance.Schema,
		comm.Schema,
	}
	for _, sch := range schemas {
		n, err := cli.seedTable(ctx, source, sch)
		if err != nil {
			return errors.Wrapf(err, "seeding %s", sch.Table)
		}
		logger.Printf("seeded %d records into %s\n", n, sch.Table)
	}
	return nil
}

func (cli *commandLine) seedTable(ctx context.Context, source table.Client, sch schema.Schema) (int, error) {
	res, err := source.Fetch(ctx, sch.Table, table.Query{
		Fields: sch.Selectors(),
		Paging: table.Paging{Limit: sch.PageLimit},
	})
	if err != nil {
		return 0, err
	}
	if !res.Success {
		return 0, errors.New(res.Message)
	}
	if len(res.Data) == 0 {
		return 0, nil
	}

	records := make([]table.Record, 0, len(res.Data))
	for _, rec := range res.Data {
		delete(rec, "Id")
		delete(rec, "Name")
		records = append(records, rec)
	}

	wres, err := cli.client.Write(ctx, sch.Table, records)
	if err != nil {
		return 0, err
	}
	if !wres.Success {
		return 0, errors.New(wres.Message)
	}
	var n int
	for _, r := range wres.Results {
		if !r.Success {
			return n, errors.New(r.Message)
		}
		n++
	}
	return n, nil
}
