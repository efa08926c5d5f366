// Package table defines the contract of the external table-API boundary
// through which all persistence happens. The boundary is a black box: the
// envelope shapes below are the whole of what the core knows about it.
package table

import "context"

// Record is a raw row as the boundary returns it: storage-oriented field
// names, and reference fields that may hold either a bare integer id or a
// nested object carrying one.
type Record map[string]interface{}

// NotFoundMessage is the message boundary implementations report on a
// result targeting a row that does not exist.
const NotFoundMessage = "record not found"

// Filter operators.
const OpEqualTo = "EqualTo"

type (
	// FieldSelector names a column to fetch. Reference selectors ask the
	// boundary to resolve the relation, which may yield a nested object.
	FieldSelector struct {
		Field     string `json:"field"`
		Reference bool   `json:"reference,omitempty"`
	}

	Filter struct {
		Field    string        `json:"fieldName"`
		Operator string        `json:"operator"`
		Values   []interface{} `json:"values"`
	}

	Ordering struct {
		Field      string `json:"fieldName"`
		Descending bool   `json:"descending,omitempty"`
	}

	Paging struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}

	Query struct {
		Fields  []FieldSelector `json:"fields"`
		Where   []Filter        `json:"where,omitempty"`
		OrderBy []Ordering      `json:"orderBy,omitempty"`
		Paging  Paging          `json:"pagingInfo"`
	}

	FieldIssue struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}

	FetchResponse struct {
		Success bool     `json:"success"`
		Message string   `json:"message,omitempty"`
		Data    []Record `json:"data,omitempty"`
	}

	GetResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
		Data    Record `json:"data,omitempty"`
	}

	WriteResult struct {
		Success bool         `json:"success"`
		Message string       `json:"message,omitempty"`
		Data    Record       `json:"data,omitempty"`
		Errors  []FieldIssue `json:"errors,omitempty"`
	}

	WriteResponse struct {
		Success bool          `json:"success"`
		Message string        `json:"message,omitempty"`
		Results []WriteResult `json:"results,omitempty"`
	}

	DeleteResult struct {
		ID      int    `json:"id"`
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	}

	DeleteResponse struct {
		Success bool           `json:"success"`
		Message string         `json:"message,omitempty"`
		Results []DeleteResult `json:"results,omitempty"`
	}

	// Client is the boundary itself. A non-nil error means the call could
	// not complete (transport failure); an unsuccessful envelope means the
	// boundary completed the call and rejected it.
	Client interface {
		Fetch(ctx context.Context, table string, q Query) (FetchResponse, error)
		Get(ctx context.Context, table string, id int, fields []FieldSelector) (GetResponse, error)
		// Write creates records without an "Id" key and updates records with one.
		Write(ctx context.Context, table string, records []Record) (WriteResponse, error)
		Delete(ctx context.Context, table string, ids []int) (DeleteResponse, error)
	}
)
