package assignment

import (
	"github.com/mwalimu/darasa/core/schema"
	"github.com/mwalimu/darasa/core/table"
)

type Assignment struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	TotalPoints int    `json:"totalPoints"`
	DueDate     string `json:"dueDate"`
	ClassID     string `json:"classId"`
}

// NewAssignment contains information needed to create a new Assignment.
// Updates replace the full record with the same shape.
type NewAssignment struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category"`
	TotalPoints int    `json:"totalPoints" validate:"required,gt=0"`
	DueDate     string `json:"dueDate" validate:"omitempty,dateonly"`
	ClassID     string `json:"classId"`
}

// Schema maps Assignment to its external table.
var Schema = schema.Schema{
	Table:     "assignment_c",
	PageLimit: 100,
	Fields: []schema.Field{
		{External: "title_c", Domain: "title", Kind: schema.String, Default: ""},
		{External: "category_c", Domain: "category", Kind: schema.String, Default: ""},
		{External: "total_points_c", Domain: "totalPoints", Kind: schema.Int, Default: 0},
		{External: "due_date_c", Domain: "dueDate", Kind: schema.String, Default: ""},
		{External: "class_id_c", Domain: "classId", Kind: schema.String, Default: ""},
	},
	DisplayName: func(dom table.Record) string {
		title, _ := dom["title"].(string)
		return title
	},
}
