package comm

import (
	"github.com/mwalimu/darasa/core/schema"
	"github.com/mwalimu/darasa/core/table"
)

// Types
const (
	TypePhone   = "phone"
	TypeEmail   = "email"
	TypeMeeting = "meeting"
	TypeNote    = "note"
)

// Communication is one logged parent/teacher contact about a student.
// CreatedAt is set on create and immutable thereafter.
type Communication struct {
	ID               int    `json:"id"`
	StudentID        int    `json:"studentId"`
	TeacherID        int    `json:"teacherId"`
	TeacherName      string `json:"teacherName"`
	Date             string `json:"date"`
	Type             string `json:"type"`
	Subject          string `json:"subject"`
	Notes            string `json:"notes"`
	FollowUpRequired bool   `json:"followUpRequired"`
	CreatedAt        string `json:"createdAt"`
}

// NewCommunication contains information needed to log a new
// Communication. Updates replace the full record with the same shape.
type NewCommunication struct {
	StudentID        int    `json:"studentId" validate:"required,gt=0"`
	TeacherID        int    `json:"teacherId" validate:"omitempty,gt=0"`
	TeacherName      string `json:"teacherName"`
	Date             string `json:"date" validate:"required,dateonly"`
	Type             string `json:"type" validate:"required,oneof=phone email meeting note"`
	Subject          string `json:"subject" validate:"required"`
	Notes            string `json:"notes"`
	FollowUpRequired bool   `json:"followUpRequired"`
}

// Schema maps Communication to its external table.
var Schema = schema.Schema{
	Table:     "communication_c",
	PageLimit: 100,
	Fields: []schema.Field{
		{External: "teacher_name_c", Domain: "teacherName", Kind: schema.String, Default: ""},
		{External: "date_c", Domain: "date", Kind: schema.String, Default: ""},
		{External: "type_c", Domain: "type", Kind: schema.String, Default: ""},
		{External: "subject_c", Domain: "subject", Kind: schema.String, Default: ""},
		{External: "notes_c", Domain: "notes", Kind: schema.String, Default: ""},
		{External: "follow_up_required_c", Domain: "followUpRequired", Kind: schema.Bool, Default: false},
		{External: "created_at_c", Domain: "createdAt", Kind: schema.String, Default: "", CreateOnly: true},
		{External: "student_id_c", Domain: "studentId", Kind: schema.Reference, Default: 0},
		{External: "teacher_id_c", Domain: "teacherId", Kind: schema.Reference, Default: 0},
	},
	DisplayName: func(dom table.Record) string {
		subject, _ := dom["subject"].(string)
		return subject
	},
}
