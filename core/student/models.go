package student

import (
	"strings"

	"github.com/mwalimu/darasa/core/schema"
	"github.com/mwalimu/darasa/core/table"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// Student is the aggregate root: grades, attendance and communications
// reference it and are not cascade-deleted with it.
type Student struct {
	ID             int    `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Grade          string `json:"grade"`
	DateOfBirth    string `json:"dateOfBirth"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ParentName     string `json:"parentName"`
	ParentEmail    string `json:"parentEmail"`
	ParentPhone    string `json:"parentPhone"`
	Address        string `json:"address"`
	EnrollmentDate string `json:"enrollmentDate"`
	Status         string `json:"status"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// NewStudent contains information needed to create a new Student.
// Updates replace the full record with the same shape.
type NewStudent struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Grade          string `json:"grade"`
	DateOfBirth    string `json:"dateOfBirth" validate:"omitempty,dateonly"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	ParentName     string `json:"parentName"`
	ParentEmail    string `json:"parentEmail" validate:"omitempty,email"`
	ParentPhone    string `json:"parentPhone"`
	Address        string `json:"address"`
	EnrollmentDate string `json:"enrollmentDate" validate:"omitempty,dateonly"`
	Status         string `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

// Schema maps Student to its external table.
var Schema = schema.Schema{
	Table:     "student_c",
	PageLimit: 100,
	Fields: []schema.Field{
		{External: "first_name_c", Domain: "firstName", Kind: schema.String, Default: ""},
		{External: "last_name_c", Domain: "lastName", Kind: schema.String, Default: ""},
		{External: "grade_c", Domain: "grade", Kind: schema.String, Default: ""},
		{External: "date_of_birth_c", Domain: "dateOfBirth", Kind: schema.String, Default: ""},
		{External: "email_c", Domain: "email", Kind: schema.String, Default: ""},
		{External: "phone_c", Domain: "phone", Kind: schema.String, Default: ""},
		{External: "parent_name_c", Domain: "parentName", Kind: schema.String, Default: ""},
		{External: "parent_email_c", Domain: "parentEmail", Kind: schema.String, Default: ""},
		{External: "parent_phone_c", Domain: "parentPhone", Kind: schema.String, Default: ""},
		{External: "address_c", Domain: "address", Kind: schema.String, Default: ""},
		{External: "enrollment_date_c", Domain: "enrollmentDate", Kind: schema.String, Default: ""},
		{External: "status_c", Domain: "status", Kind: schema.String, Default: StatusActive},
	},
	DisplayName: func(dom table.Record) string {
		first, _ := dom["firstName"].(string)
		last, _ := dom["lastName"].(string)
		return strings.TrimSpace(first + " " + last)
	},
}
