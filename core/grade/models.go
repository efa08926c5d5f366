package grade

import (
	"fmt"

	"github.com/mwalimu/darasa/core/schema"
	"github.com/mwalimu/darasa/core/table"
)

// Grade records one student's score on one assignment. Callers expect at
// most one Grade per (student, assignment) pair; the repository does not
// deduplicate.
type Grade struct {
	ID            int     `json:"id"`
	StudentID     int     `json:"studentId"`
	AssignmentID  int     `json:"assignmentId"`
	Score         float64 `json:"score"`
	SubmittedDate string  `json:"submittedDate"`
	Comments      string  `json:"comments"`
}

// NewGrade contains information needed to create a new Grade.
// Updates replace the full record with the same shape.
type NewGrade struct {
	StudentID     int     `json:"studentId" validate:"required,gt=0"`
	AssignmentID  int     `json:"assignmentId" validate:"required,gt=0"`
	Score         float64 `json:"score" validate:"gte=0"`
	SubmittedDate string  `json:"submittedDate" validate:"omitempty,dateonly"`
	Comments      string  `json:"comments"`
}

// Schema maps Grade to its external table.
var Schema = schema.Schema{
	Table:     "grade_c",
	PageLimit: 100,
	Fields: []schema.Field{
		{External: "score_c", Domain: "score", Kind: schema.Float, Default: 0.0},
		{External: "submitted_date_c", Domain: "submittedDate", Kind: schema.String, Default: ""},
		{External: "comments_c", Domain: "comments", Kind: schema.String, Default: ""},
		{External: "student_id_c", Domain: "studentId", Kind: schema.Reference, Default: 0},
		{External: "assignment_id_c", Domain: "assignmentId", Kind: schema.Reference, Default: 0},
	},
	DisplayName: func(dom table.Record) string {
		id, _ := schema.RefID(dom["studentId"])
		return fmt.Sprintf("Grade for Student %d", id)
	},
}
