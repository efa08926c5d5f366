// Package tablerepo implements every domain Repository over the table-API
// boundary with a single generic repository parameterized by a
// schema.Schema mapping descriptor.
package tablerepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/schema"
	"github.com/mwalimu/darasa/core/table"
)

type entityRepository[T any] struct {
	client   table.Client
	schema   schema.Schema
	label    string // for messages: "student", "grade", ...
	notFound error
}

func newEntityRepository[T any](client table.Client, s schema.Schema, label string, notFound error) *entityRepository[T] {
	return &entityRepository[T]{client: client, schema: s, label: label, notFound: notFound}
}

func (r *entityRepository[T]) list(ctx context.Context, where []table.Filter, order []table.Ordering) ([]T, error) {
	q := table.Query{
		Fields:  r.schema.Selectors(),
		Where:   where,
		OrderBy: order,
		Paging:  table.Paging{Limit: r.schema.PageLimit},
	}
	res, err := r.client.Fetch(ctx, r.schema.Table, q)
	if err != nil {
		return nil, core.NewBoundaryError(errors.Wrapf(err, "fetching %ss", r.label))
	}
	if !res.Success {
		return nil, core.NewBoundaryError(errors.New(res.Message))
	}

	// zero rows is a valid outcome, not an error
	out := make([]T, 0, len(res.Data))
	for _, rec := range res.Data {
		t, err := decode[T](r.schema.ToDomain(rec))
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", r.label)
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *entityRepository[T]) get(ctx context.Context, id int) (T, error) {
	var zero T
	if err := r.checkID(id); err != nil {
		return zero, err
	}

	res, err := r.client.Get(ctx, r.schema.Table, id, r.schema.Selectors())
	if err != nil {
		return zero, core.NewBoundaryError(errors.Wrapf(err, "fetching %s %d", r.label, id))
	}
	if !res.Success || res.Data == nil {
		return zero, r.notFound
	}
	return decode[T](r.schema.ToDomain(res.Data))
}

func (r *entityRepository[T]) create(ctx context.Context, t T) (T, error) {
	var zero T
	dom, err := encode(t)
	if err != nil {
		return zero, errors.Wrapf(err, "encoding %s", r.label)
	}
	ext := r.schema.ToExternal(dom, false)
	// the store assigns the id; a record carrying one would be written as an update
	delete(ext, "Id")

	res, err := r.client.Write(ctx, r.schema.Table, []table.Record{ext})
	if err != nil {
		return zero, core.NewBoundaryError(errors.Wrapf(err, "creating %s", r.label))
	}
	return r.firstWritten(res, "create")
}

func (r *entityRepository[T]) update(ctx context.Context, id int, t T) (T, error) {
	var zero T
	if err := r.checkID(id); err != nil {
		return zero, err
	}
	dom, err := encode(t)
	if err != nil {
		return zero, errors.Wrapf(err, "encoding %s", r.label)
	}
	ext := r.schema.ToExternal(dom, true)
	ext["Id"] = id

	res, err := r.client.Write(ctx, r.schema.Table, []table.Record{ext})
	if err != nil {
		return zero, core.NewBoundaryError(errors.Wrapf(err, "updating %s %d", r.label, id))
	}
	return r.firstWritten(res, "update")
}

func (r *entityRepository[T]) delete(ctx context.Context, id int) error {
	if err := r.checkID(id); err != nil {
		return err
	}

	res, err := r.client.Delete(ctx, r.schema.Table, []int{id})
	if err != nil {
		return core.NewBoundaryError(errors.Wrapf(err, "deleting %s %d", r.label, id))
	}
	if !res.Success {
		return core.NewWriteError(res.Message)
	}
	// only this id's entry decides the outcome; failures for other ids in
	// the same batch never mask it
	for _, result := range res.Results {
		if result.ID != id {
			continue
		}
		if result.Success {
			return nil
		}
		if result.Message == table.NotFoundMessage {
			return r.notFound
		}
		return core.NewWriteError(result.Message)
	}
	return core.NewWriteError(fmt.Sprintf("failed to delete %s %d", r.label, id))
}

func (r *entityRepository[T]) checkID(id int) error {
	if id <= 0 {
		return core.NewArgumentError(fmt.Sprintf("invalid %s id: %d", r.label, id))
	}
	return nil
}

// firstWritten maps a write envelope to the first written row or to the
// matching failure kind.
func (r *entityRepository[T]) firstWritten(res table.WriteResponse, op string) (T, error) {
	var zero T
	if !res.Success {
		return zero, core.NewWriteError(res.Message)
	}
	for _, result := range res.Results {
		if result.Success {
			continue
		}
		if len(result.Errors) > 0 {
			flds := make([]core.FieldError, 0, len(result.Errors))
			for _, issue := range result.Errors {
				flds = append(flds, core.FieldError{Field: issue.Field, Error: issue.Message})
			}
			return zero, core.NewValidationError(nil, flds...)
		}
		if result.Message == table.NotFoundMessage {
			return zero, r.notFound
		}
		if result.Message != "" {
			return zero, core.NewWriteError(result.Message)
		}
	}
	for _, result := range res.Results {
		if result.Success && result.Data != nil {
			return decode[T](r.schema.ToDomain(result.Data))
		}
	}
	return zero, core.NewWriteError(fmt.Sprintf("failed to %s %s", op, r.label))
}

func decode[T any](rec table.Record) (T, error) {
	var t T
	data, err := json.Marshal(rec)
	if err != nil {
		return t, err
	}
	return t, json.Unmarshal(data, &t)
}

func encode[T any](t T) (table.Record, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var rec table.Record
	return rec, json.Unmarshal(data, &rec)
}

// sameDay reports calendar-day equality, ignoring any time component.
func sameDay(a, b string) bool {
	return dayOf(a) == dayOf(b)
}

func dayOf(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
