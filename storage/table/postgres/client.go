// Package postgres implements the table boundary on a local PostgreSQL
// database for self-hosted deployments. Each logical table is a two-column
// relation (id SERIAL, doc JSONB); filtering and ordering are pushed down
// through jsonb operators.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/table"
)

var knownTables = []string{
	"student_c",
	"assignment_c",
	"grade_c",
	"attendance_c",
	"communication_c",
}

type Client struct {
	db *sqlx.DB
}

var _ table.Client = (*Client)(nil)

func Open(conf *core.Config) (*Client, error) {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Database.Engine,
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	db, err := sqlx.Open(conf.Database.Engine, u.String())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		return nil, err
	}

	c := &Client{db: db}
	if err = c.ensureTables(); err != nil {
		return nil, err
	}
	return c, nil
}

func NewClient(db *sqlx.DB) *Client { return &Client{db: db} }

func (c *Client) Close() error { return c.db.Close() }

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func (c *Client) ensureTables() error {
	for _, tbl := range knownTables {
		q := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id SERIAL PRIMARY KEY, doc JSONB NOT NULL)", tbl)
		if _, err := c.db.Exec(q); err != nil {
			return errors.Wrapf(err, "creating table %s", tbl)
		}
	}
	return nil
}

func checkTable(tbl string) error {
	for _, known := range knownTables {
		if tbl == known {
			return nil
		}
	}
	return errors.Errorf("unknown table %s", tbl)
}

func (c *Client) Fetch(ctx context.Context, tbl string, q table.Query) (table.FetchResponse, error) {
	if err := checkTable(tbl); err != nil {
		return table.FetchResponse{}, err
	}

	query, args := buildSelect(tbl, q)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return table.FetchResponse{}, errors.Wrapf(err, "fetching from %s", tbl)
	}
	defer func() { _ = rows.Close() }()

	data := make([]table.Record, 0)
	for rows.Next() {
		var (
			id  int
			doc []byte
		)
		if err = rows.Scan(&id, &doc); err != nil {
			return table.FetchResponse{}, errors.Wrapf(err, "scanning row from %s", tbl)
		}
		rec, err := decodeDoc(id, doc)
		if err != nil {
			return table.FetchResponse{}, errors.Wrapf(err, "decoding row %d from %s", id, tbl)
		}
		data = append(data, rec)
	}
	if err = rows.Err(); err != nil {
		return table.FetchResponse{}, errors.Wrapf(err, "fetching from %s", tbl)
	}
	return table.FetchResponse{Success: true, Data: data}, nil
}

func (c *Client) Get(ctx context.Context, tbl string, id int, _ []table.FieldSelector) (table.GetResponse, error) {
	if err := checkTable(tbl); err != nil {
		return table.GetResponse{}, err
	}

	var doc []byte
	q := fmt.Sprintf("SELECT doc FROM %s WHERE id = $1", tbl)
	err := c.db.QueryRowContext(ctx, q, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return table.GetResponse{Message: table.NotFoundMessage}, nil
	}
	if err != nil {
		return table.GetResponse{}, errors.Wrapf(err, "getting record %d from %s", id, tbl)
	}
	rec, err := decodeDoc(id, doc)
	if err != nil {
		return table.GetResponse{}, errors.Wrapf(err, "decoding record %d from %s", id, tbl)
	}
	return table.GetResponse{Success: true, Data: rec}, nil
}

func (c *Client) Write(ctx context.Context, tbl string, records []table.Record) (table.WriteResponse, error) {
	if err := checkTable(tbl); err != nil {
		return table.WriteResponse{}, err
	}

	results := make([]table.WriteResult, 0, len(records))
	for _, rec := range records {
		if rawID, ok := rec["Id"]; ok {
			results = append(results, c.update(ctx, tbl, rawID, rec))
		} else {
			results = append(results, c.create(ctx, tbl, rec))
		}
	}
	return table.WriteResponse{Success: true, Results: results}, nil
}

func (c *Client) create(ctx context.Context, tbl string, rec table.Record) table.WriteResult {
	doc, err := json.Marshal(rec)
	if err != nil {
		return table.WriteResult{Message: err.Error()}
	}

	var id int
	q := fmt.Sprintf("INSERT INTO %s (doc) VALUES ($1) RETURNING id", tbl)
	if err = c.db.QueryRowContext(ctx, q, doc).Scan(&id); err != nil {
		return table.WriteResult{Message: err.Error()}
	}

	out := copyRecord(rec)
	out["Id"] = id
	return table.WriteResult{Success: true, Data: out}
}

func (c *Client) update(ctx context.Context, tbl string, rawID interface{}, rec table.Record) table.WriteResult {
	id, ok := asInt(rawID)
	if !ok {
		return table.WriteResult{Message: fmt.Sprintf("invalid record id %v", rawID)}
	}

	fields := copyRecord(rec)
	delete(fields, "Id")
	doc, err := json.Marshal(fields)
	if err != nil {
		return table.WriteResult{Message: err.Error()}
	}

	// Shallow merge so an update only touches the fields it carries.
	q := fmt.Sprintf("UPDATE %s SET doc = doc || $1 WHERE id = $2", tbl)
	res, err := c.db.ExecContext(ctx, q, doc, id)
	if err != nil {
		return table.WriteResult{Message: err.Error()}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return table.WriteResult{Message: err.Error()}
	}
	if n == 0 {
		return table.WriteResult{Message: table.NotFoundMessage}
	}

	var stored []byte
	sel := fmt.Sprintf("SELECT doc FROM %s WHERE id = $1", tbl)
	if err = c.db.QueryRowContext(ctx, sel, id).Scan(&stored); err != nil {
		return table.WriteResult{Message: err.Error()}
	}
	out, err := decodeDoc(id, stored)
	if err != nil {
		return table.WriteResult{Message: err.Error()}
	}
	return table.WriteResult{Success: true, Data: out}
}

func (c *Client) Delete(ctx context.Context, tbl string, ids []int) (table.DeleteResponse, error) {
	if err := checkTable(tbl); err != nil {
		return table.DeleteResponse{}, err
	}

	results := make([]table.DeleteResult, 0, len(ids))
	for _, id := range ids {
		q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", tbl)
		res, err := c.db.ExecContext(ctx, q, id)
		if err != nil {
			results = append(results, table.DeleteResult{ID: id, Message: err.Error()})
			continue
		}
		n, err := res.RowsAffected()
		if err != nil {
			results = append(results, table.DeleteResult{ID: id, Message: err.Error()})
			continue
		}
		if n == 0 {
			results = append(results, table.DeleteResult{ID: id, Message: table.NotFoundMessage})
			continue
		}
		results = append(results, table.DeleteResult{ID: id, Success: true})
	}
	return table.DeleteResponse{Success: true, Results: results}, nil
}

// buildSelect pushes EqualTo filters, ordering and paging into SQL. Documents
// store field values with their JSON types, so filters compare through the
// text form of both sides.
func buildSelect(tbl string, q table.Query) (string, []interface{}) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(fmt.Sprintf("SELECT id, doc FROM %s", tbl))

	conds := make([]string, 0, len(q.Where))
	for _, f := range q.Where {
		if f.Operator != table.OpEqualTo || len(f.Values) == 0 {
			continue
		}
		placeholders := make([]string, 0, len(f.Values))
		for _, v := range f.Values {
			args = append(args, fmt.Sprintf("%v", v))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		args = append(args, f.Field)
		conds = append(conds, fmt.Sprintf("doc->>$%d IN (%s)", len(args), strings.Join(placeholders, ", ")))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	orders := make([]string, 0, len(q.OrderBy)+1)
	for _, o := range q.OrderBy {
		dir := "ASC"
		if o.Descending {
			dir = "DESC"
		}
		args = append(args, o.Field)
		orders = append(orders, fmt.Sprintf("doc->>$%d %s", len(args), dir))
	}
	orders = append(orders, "id ASC")
	sb.WriteString(" ORDER BY " + strings.Join(orders, ", "))

	if q.Paging.Limit > 0 {
		args = append(args, q.Paging.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if q.Paging.Offset > 0 {
		args = append(args, q.Paging.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}
	return sb.String(), args
}

func decodeDoc(id int, doc []byte) (table.Record, error) {
	var rec table.Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, err
	}
	rec["Id"] = id
	return rec, nil
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
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
