package schema

import (
	"reflect"
	"testing"

	"github.com/mwalimu/darasa/core/table"
)

var gradeSchema = Schema{
	Table: "grade_c",
	Fields: []Field{
		{External: "student_id_c", Domain: "studentId", Kind: Reference, Default: 0},
		{External: "assignment_id_c", Domain: "assignmentId", Kind: Reference, Default: 0},
		{External: "score_c", Domain: "score", Kind: Float, Default: 0.0},
		{External: "submitted_date_c", Domain: "submittedDate", Kind: String, Default: ""},
		{External: "comments_c", Domain: "comments", Kind: String, Default: ""},
	},
	DisplayName: func(dom table.Record) string { return "Grade" },
}

func TestSchemaToDomain(t *testing.T) {
	tests := []struct {
		name string
		ext  table.Record
		want table.Record
	}{
		{
			name: "bare reference ids",
			ext: table.Record{
				"Id":               float64(7),
				"student_id_c":     float64(3),
				"assignment_id_c":  float64(2),
				"score_c":          float64(42.5),
				"submitted_date_c": "2024-02-10",
				"comments_c":       "good work",
			},
			want: table.Record{
				"id":            7,
				"studentId":     3,
				"assignmentId":  2,
				"score":         42.5,
				"submittedDate": "2024-02-10",
				"comments":      "good work",
			},
		},
		{
			name: "nested reference objects",
			ext: table.Record{
				"Id":              float64(7),
				"student_id_c":    map[string]interface{}{"Id": float64(3), "Name": "Chiku Maina"},
				"assignment_id_c": map[string]interface{}{"Id": float64(2)},
				"score_c":         float64(42.5),
			},
			want: table.Record{
				"id":            7,
				"studentId":     3,
				"assignmentId":  2,
				"score":         42.5,
				"submittedDate": "",
				"comments":      "",
			},
		},
		{
			name: "missing and null columns get defaults",
			ext: table.Record{
				"Id":           float64(7),
				"student_id_c": nil,
				"score_c":      nil,
			},
			want: table.Record{
				"id":            7,
				"studentId":     0,
				"assignmentId":  0,
				"score":         0.0,
				"submittedDate": "",
				"comments":      "",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradeSchema.ToDomain(tt.ext); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToDomain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchemaToDomainReferenceFormsAgree(t *testing.T) {
	bare := gradeSchema.ToDomain(table.Record{"Id": float64(1), "student_id_c": float64(3)})
	nested := gradeSchema.ToDomain(table.Record{"Id": float64(1), "student_id_c": map[string]interface{}{"Id": float64(3)}})
	if !reflect.DeepEqual(bare, nested) {
		t.Errorf("bare = %v, nested = %v; want identical", bare, nested)
	}
}

func TestSchemaToExternal(t *testing.T) {
	tests := []struct {
		name   string
		dom    table.Record
		update bool
		want   table.Record
	}{
		{
			name: "numeric string coerced",
			dom: table.Record{
				"studentId":     3,
				"assignmentId":  2,
				"score":         "87.5",
				"submittedDate": "2024-02-10",
			},
			want: table.Record{
				"Name":             "Grade",
				"student_id_c":     3,
				"assignment_id_c":  2,
				"score_c":          87.5,
				"submitted_date_c": "2024-02-10",
				"comments_c":       "",
			},
		},
		{
			name: "unset references written as null",
			dom:  table.Record{"score": 10.0},
			want: table.Record{
				"Name":             "Grade",
				"student_id_c":     nil,
				"assignment_id_c":  nil,
				"score_c":          10.0,
				"submitted_date_c": "",
				"comments_c":       "",
			},
		},
		{
			name: "undeclared fields never forwarded",
			dom:  table.Record{"score": 10.0, "studentId": 3, "assignmentId": 2, "hacked": "x"},
			want: table.Record{
				"Name":             "Grade",
				"student_id_c":     3,
				"assignment_id_c":  2,
				"score_c":          10.0,
				"submitted_date_c": "",
				"comments_c":       "",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradeSchema.ToExternal(tt.dom, tt.update); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToExternal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	dom := table.Record{
		"id":            7,
		"studentId":     3,
		"assignmentId":  2,
		"score":         42.5,
		"submittedDate": "2024-02-10",
		"comments":      "good work",
	}
	if got := gradeSchema.ToDomain(gradeSchema.ToExternal(dom, false)); !reflect.DeepEqual(got, dom) {
		t.Errorf("round trip = %v, want %v", got, dom)
	}
}

func TestSchemaToExternalDropsCreateOnlyOnUpdate(t *testing.T) {
	s := Schema{
		Table: "communication_c",
		Fields: []Field{
			{External: "subject_c", Domain: "subject", Kind: String, Default: ""},
			{External: "created_at_c", Domain: "createdAt", Kind: String, Default: "", CreateOnly: true},
		},
	}
	dom := table.Record{"subject": "call home", "createdAt": "2024-02-10T08:00:00Z"}

	created := s.ToExternal(dom, false)
	if _, ok := created["created_at_c"]; !ok {
		t.Error("create should carry created_at_c")
	}
	updated := s.ToExternal(dom, true)
	if _, ok := updated["created_at_c"]; ok {
		t.Error("update should drop created_at_c")
	}
}

func TestSchemaSelectors(t *testing.T) {
	sel := gradeSchema.Selectors()
	if len(sel) != len(gradeSchema.Fields)+1 {
		t.Fatalf("Selectors() len = %d, want %d", len(sel), len(gradeSchema.Fields)+1)
	}
	if sel[0].Field != "Name" {
		t.Errorf("Selectors()[0] = %s, want Name", sel[0].Field)
	}
	for _, s := range sel[1:] {
		wantRef := s.Field == "student_id_c" || s.Field == "assignment_id_c"
		if s.Reference != wantRef {
			t.Errorf("selector %s Reference = %v, want %v", s.Field, s.Reference, wantRef)
		}
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name   string
		v      interface{}
		want   int
		wantOk bool
	}{
		{name: "int", v: 5, want: 5, wantOk: true},
		{name: "float64", v: float64(5), want: 5, wantOk: true},
		{name: "numeric string", v: "5", want: 5, wantOk: true},
		{name: "float string", v: "5.0", want: 5, wantOk: true},
		{name: "garbage string", v: "lol"},
		{name: "nil"},
		{name: "bool", v: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsInt(tt.v)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("AsInt(%v) = (%d, %v), want (%d, %v)", tt.v, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestRefID(t *testing.T) {
	if id, ok := RefID(float64(4)); !ok || id != 4 {
		t.Errorf("RefID(4) = (%d, %v)", id, ok)
	}
	if id, ok := RefID(map[string]interface{}{"Id": float64(4)}); !ok || id != 4 {
		t.Errorf("RefID({Id:4}) = (%d, %v)", id, ok)
	}
	if _, ok := RefID(map[string]interface{}{"Name": "no id"}); ok {
		t.Error("RefID({Name:...}) should not resolve")
	}
}
