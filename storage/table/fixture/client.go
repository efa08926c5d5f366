// Package fixture provides an in-memory, JSON-backed implementation of the
// table boundary, used as a local fallback and in tests.
package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core/table"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

var tableNames = []string{
	"student_c",
	"assignment_c",
	"grade_c",
	"attendance_c",
	"communication_c",
}

type Client struct {
	mu     sync.RWMutex
	tables map[string]map[int]table.Record
	nextID map[string]int
}

var _ table.Client = (*Client)(nil)

// Open loads the embedded fixture tables.
func Open() (*Client, error) {
	c := OpenEmpty()
	for _, name := range tableNames {
		data, err := fixtureFS.ReadFile("fixtures/" + name + ".json")
		if err != nil {
			return nil, errors.Wrapf(err, "reading fixture %s", name)
		}
		var rows []table.Record
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrapf(err, "parsing fixture %s", name)
		}
		for _, row := range rows {
			id, ok := asInt(row["Id"])
			if !ok {
				return nil, errors.Errorf("fixture %s: row without Id", name)
			}
			c.tables[name][id] = row
			if id >= c.nextID[name] {
				c.nextID[name] = id + 1
			}
		}
	}
	return c, nil
}

// OpenEmpty returns a client with the known tables and no rows.
func OpenEmpty() *Client {
	c := &Client{
		tables: make(map[string]map[int]table.Record, len(tableNames)),
		nextID: make(map[string]int, len(tableNames)),
	}
	for _, name := range tableNames {
		c.tables[name] = make(map[int]table.Record)
		c.nextID[name] = 1
	}
	return c
}

func (c *Client) Fetch(_ context.Context, tbl string, q table.Query) (table.FetchResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, ok := c.tables[tbl]
	if !ok {
		return table.FetchResponse{Message: fmt.Sprintf("unknown table %q", tbl)}, nil
	}

	matched := make([]table.Record, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, q.Where) {
			matched = append(matched, resolve(row, q.Fields))
		}
	}
	// map iteration order is random; present rows by id like a real store
	sort.Slice(matched, func(i, j int) bool {
		a, _ := asInt(matched[i]["Id"])
		b, _ := asInt(matched[j]["Id"])
		return a < b
	})
	for _, ord := range q.OrderBy {
		orderBy(matched, ord)
	}
	matched = page(matched, q.Paging)

	return table.FetchResponse{Success: true, Data: matched}, nil
}

func (c *Client) Get(_ context.Context, tbl string, id int, fields []table.FieldSelector) (table.GetResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, ok := c.tables[tbl]
	if !ok {
		return table.GetResponse{Message: fmt.Sprintf("unknown table %q", tbl)}, nil
	}
	row, ok := rows[id]
	if !ok {
		return table.GetResponse{Message: table.NotFoundMessage}, nil
	}
	return table.GetResponse{Success: true, Data: resolve(row, fields)}, nil
}

func (c *Client) Write(_ context.Context, tbl string, records []table.Record) (table.WriteResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, ok := c.tables[tbl]
	if !ok {
		return table.WriteResponse{Message: fmt.Sprintf("unknown table %q", tbl)}, nil
	}

	results := make([]table.WriteResult, 0, len(records))
	for _, rec := range records {
		if rawID, present := rec["Id"]; present {
			id, ok := asInt(rawID)
			if !ok {
				results = append(results, table.WriteResult{Message: "malformed Id"})
				continue
			}
			existing, ok := rows[id]
			if !ok {
				results = append(results, table.WriteResult{Message: table.NotFoundMessage})
				continue
			}
			// full-record replace of the provided columns
			updated := copyRecord(existing)
			for k, v := range rec {
				updated[k] = v
			}
			rows[id] = updated
			results = append(results, table.WriteResult{Success: true, Data: copyRecord(updated)})
			continue
		}

		id := c.nextID[tbl]
		c.nextID[tbl]++
		created := copyRecord(rec)
		created["Id"] = id
		rows[id] = created
		results = append(results, table.WriteResult{Success: true, Data: copyRecord(created)})
	}
	return table.WriteResponse{Success: true, Results: results}, nil
}

func (c *Client) Delete(_ context.Context, tbl string, ids []int) (table.DeleteResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, ok := c.tables[tbl]
	if !ok {
		return table.DeleteResponse{Message: fmt.Sprintf("unknown table %q", tbl)}, nil
	}

	results := make([]table.DeleteResult, 0, len(ids))
	for _, id := range ids {
		if _, ok := rows[id]; !ok {
			results = append(results, table.DeleteResult{ID: id, Message: table.NotFoundMessage})
			continue
		}
		delete(rows, id)
		results = append(results, table.DeleteResult{ID: id, Success: true})
	}
	return table.DeleteResponse{Success: true, Results: results}, nil
}

// resolve copies a row, expanding requested reference columns into nested
// objects the way a real store resolves relations.
func resolve(row table.Record, fields []table.FieldSelector) table.Record {
	out := copyRecord(row)
	for _, f := range fields {
		if !f.Reference {
			continue
		}
		if id, ok := asInt(out[f.Field]); ok {
			out[f.Field] = map[string]interface{}{"Id": id}
		}
	}
	return out
}

func matchesAll(row table.Record, where []table.Filter) bool {
	for _, flt := range where {
		if !matches(row, flt) {
			return false
		}
	}
	return true
}

func matches(row table.Record, flt table.Filter) bool {
	if flt.Operator != table.OpEqualTo || len(flt.Values) == 0 {
		return false
	}
	return equal(row[flt.Field], flt.Values[0])
}

func equal(a, b interface{}) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	return aok && bok && as == bs
}

func orderBy(rows []table.Record, ord table.Ordering) {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compare(rows[i][ord.Field], rows[j][ord.Field])
		if ord.Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compare(a, b interface{}) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func page(rows []table.Record, p table.Paging) []table.Record {
	if p.Offset > 0 {
		if p.Offset >= len(rows) {
			return []table.Record{}
		}
		rows = rows[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows
}

func copyRecord(rec table.Record) table.Record {
	out := make(table.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
