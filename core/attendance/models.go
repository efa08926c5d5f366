package attendance

import (
	"fmt"

	"github.com/mwalimu/darasa/core/schema"
	"github.com/mwalimu/darasa/core/table"
)

// Statuses. Unmarked is a client-side default only and is never stored.
const (
	StatusPresent  = "present"
	StatusAbsent   = "absent"
	StatusLate     = "late"
	StatusExcused  = "excused"
	StatusUnmarked = "unmarked"
)

// Attendance records one student's status on one calendar day. Callers
// expect at most one record per (student, date); the repository does not
// enforce it.
type Attendance struct {
	ID        int    `json:"id"`
	StudentID int    `json:"studentId"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

// NewAttendance contains information needed to create a new Attendance
// record. Updates replace the full record with the same shape.
type NewAttendance struct {
	StudentID int    `json:"studentId" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,dateonly"`
	Status    string `json:"status" validate:"required,oneof=present absent late excused"`
	Reason    string `json:"reason"`
}

// Schema maps Attendance to its external table. The page limit is higher
// than the other entities: a day of attendance is a full roster.
var Schema = schema.Schema{
	Table:     "attendance_c",
	PageLimit: 200,
	Fields: []schema.Field{
		{External: "date_c", Domain: "date", Kind: schema.String, Default: ""},
		{External: "status_c", Domain: "status", Kind: schema.String, Default: ""},
		{External: "reason_c", Domain: "reason", Kind: schema.String, Default: ""},
		{External: "student_id_c", Domain: "studentId", Kind: schema.Reference, Default: 0},
	},
	DisplayName: func(dom table.Record) string {
		date, _ := dom["date"].(string)
		return fmt.Sprintf("Attendance for %s", date)
	},
}
