package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/assignment"
	"github.com/mwalimu/darasa/core/attendance"
	"github.com/mwalimu/darasa/core/comm"
	"github.com/mwalimu/darasa/core/grade"
	"github.com/mwalimu/darasa/core/report"
	"github.com/mwalimu/darasa/core/student"
	"github.com/mwalimu/darasa/services/email/dummy"
	"github.com/mwalimu/darasa/storage/table/fixture"
	"github.com/mwalimu/darasa/storage/tablerepo"
)

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}
func (testLogger) Enable(bool)                  {}

func setup(t *testing.T) (Server, *dummymail.Service) {
	t.Helper()

	client, err := fixture.Open()
	if err != nil {
		t.Fatalf("opening fixture boundary: %v", err)
	}
	mailSvc := dummymail.NewService()

	studentRepo := tablerepo.NewStudentRepository(client)
	assignmentRepo := tablerepo.NewAssignmentRepository(client)
	gradeRepo := tablerepo.NewGradeRepository(client)
	attendanceRepo := tablerepo.NewAttendanceRepository(client)
	commRepo := tablerepo.NewCommunicationRepository(client)

	srv := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           &core.Config{TestMode: true},
		Logger:         testLogger{},
		StudentSvc:     student.NewService(studentRepo),
		AssignmentSvc:  assignment.NewService(assignmentRepo),
		GradeSvc:       grade.NewService(gradeRepo),
		AttendanceSvc:  attendance.NewService(attendanceRepo),
		CommSvc:        comm.NewService(commRepo, mailSvc, core.NewConfig().FollowUpEmail),
		ReportSvc: report.NewService(
			studentRepo, assignmentRepo, gradeRepo, attendanceRepo, commRepo,
		),
	})
	return srv, mailSvc
}

func doRequest(srv Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestStudentAPI(t *testing.T) {
	srv, _ := setup(t)

	t.Run("query all", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/students", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var students []student.Student
		decodeInto(t, rec, &students)
		assert.Len(t, students, 6)
		assert.Equal(t, "Amina Juma", students[0].FullName())
	})

	t.Run("retrieve", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/students/3", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var s student.Student
		decodeInto(t, rec, &s)
		assert.Equal(t, "Chiku", s.FirstName)
		assert.Equal(t, "Grade 6", s.Grade)
	})

	t.Run("retrieve missing", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/students/999", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("retrieve malformed id", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/students/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create valid", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/v1/students", student.NewStudent{
			FirstName: "Zawadi",
			LastName:  "Kip",
			Grade:     "Grade 5",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var s student.Student
		decodeInto(t, rec, &s)
		assert.Equal(t, 7, s.ID)
		assert.Equal(t, student.StatusActive, s.Status, "status defaults to active")
	})

	t.Run("create invalid", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/v1/students", student.NewStudent{LastName: "NoFirst"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decodeInto(t, rec, &fields)
		assert.Contains(t, fields, "firstName")
	})

	t.Run("update", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPut, "/v1/students/5", student.NewStudent{
			FirstName: "Eshe",
			LastName:  "Abdalla",
			Status:    student.StatusActive,
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var s student.Student
		decodeInto(t, rec, &s)
		assert.Equal(t, student.StatusActive, s.Status)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(srv, http.MethodDelete, "/v1/students/7", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(srv, http.MethodGet, "/v1/students/7", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGradeAPI(t *testing.T) {
	srv, _ := setup(t)

	t.Run("query by student", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/grades?student=1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var grades []grade.Grade
		decodeInto(t, rec, &grades)
		assert.Len(t, grades, 3)
		for _, g := range grades {
			assert.Equal(t, 1, g.StudentID)
		}
	})

	t.Run("query by assignment", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/grades?assignment=2", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var grades []grade.Grade
		decodeInto(t, rec, &grades)
		assert.Len(t, grades, 4)
	})

	t.Run("negative student id", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/grades?student=-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/v1/grades", grade.NewGrade{
			StudentID:     5,
			AssignmentID:  3,
			Score:         180,
			SubmittedDate: "2024-02-23",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var g grade.Grade
		decodeInto(t, rec, &g)
		assert.Equal(t, 5, g.StudentID)
		assert.Equal(t, 3, g.AssignmentID)
		assert.Equal(t, float64(180), g.Score)
	})
}

func TestAttendanceAPI(t *testing.T) {
	srv, _ := setup(t)

	t.Run("query by date", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/attendance?date=2024-02-12", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var records []attendance.Attendance
		decodeInto(t, rec, &records)
		assert.Len(t, records, 5)
	})

	t.Run("query by student", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/attendance?student=4", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var records []attendance.Attendance
		decodeInto(t, rec, &records)
		assert.Len(t, records, 3)
	})

	t.Run("bulk mark", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/v1/attendance/bulk", BulkAttendanceRequest{
			Date:       "2024-02-15",
			Status:     attendance.StatusPresent,
			StudentIDs: []int{1, 2, 3, 4, 5, 6},
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created []attendance.Attendance
		decodeInto(t, rec, &created)
		assert.Len(t, created, 6)

		rec = doRequest(srv, http.MethodGet, "/v1/attendance?date=2024-02-15", nil)
		var records []attendance.Attendance
		decodeInto(t, rec, &records)
		assert.Len(t, records, 6)
	})

	t.Run("bulk mark bad status", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/v1/attendance/bulk", BulkAttendanceRequest{
			Date:       "2024-02-15",
			Status:     "vanished",
			StudentIDs: []int{1},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCommunicationAPI(t *testing.T) {
	srv, mailSvc := setup(t)

	t.Run("query by student", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/communications?student=2", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var comms []comm.Communication
		decodeInto(t, rec, &comms)
		assert.Len(t, comms, 1)
		assert.Equal(t, "Missing homework pattern", comms[0].Subject)
	})

	t.Run("create with follow-up sends reminder", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/v1/communications", comm.NewCommunication{
			StudentID:        3,
			Date:             "2024-02-20",
			Type:             comm.TypePhone,
			Subject:          "Missed quiz",
			FollowUpRequired: true,
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var c comm.Communication
		decodeInto(t, rec, &c)
		assert.NotEmpty(t, c.CreatedAt)

		if assert.Len(t, mailSvc.SentMessages, 1) {
			assert.Contains(t, mailSvc.SentMessages[0].Subject, "Missed quiz")
		}
	})
}

func TestReportAPI(t *testing.T) {
	srv, _ := setup(t)

	t.Run("overview", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/reports/overview", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var overview report.Overview
		decodeInto(t, rec, &overview)
		assert.Equal(t, 81, overview.GradeAverage)   // 564 of 700 points
		assert.Equal(t, 60, overview.AttendanceRate) // 9 of 15 present
		assert.Equal(t, 40, overview.CompletionRate) // 12 of 30 submissions
		assert.Equal(t, map[string]int{"Grade 5": 3, "Grade 6": 3}, overview.GradeDistribution)
	})

	t.Run("top performers", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/reports/top-performers?limit=1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var top []report.StudentAverage
		decodeInto(t, rec, &top)
		if assert.Len(t, top, 1) {
			assert.Equal(t, 1, top[0].Student.ID)
			assert.Equal(t, 91, top[0].Average) // 160 of 175 points
		}
	})

	t.Run("attendance issues", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/reports/attendance-issues", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var issues []report.AttendanceIssue
		decodeInto(t, rec, &issues)
		if assert.Len(t, issues, 3) {
			// lowest rate first
			assert.Equal(t, 4, issues[0].Student.ID)
			assert.Equal(t, 0, issues[0].Rate)
			assert.Equal(t, 2, issues[1].Student.ID)
			assert.Equal(t, 33, issues[1].Rate)
			assert.Equal(t, 3, issues[2].Student.ID)
			assert.Equal(t, 67, issues[2].Rate)
		}
	})

	t.Run("assignment stats", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/reports/assignments", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var stats []report.AssignmentStats
		decodeInto(t, rec, &stats)
		if assert.Len(t, stats, 5) {
			assert.Equal(t, "Fractions Quiz", stats[0].Assignment.Title)
			assert.Equal(t, 80, stats[0].Average)        // 319/4 of 100
			assert.Equal(t, 67, stats[0].CompletionRate) // 4 of 6 students
		}
	})

	t.Run("dashboard", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/reports/dashboard", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var dash report.DashboardStats
		decodeInto(t, rec, &dash)
		assert.Equal(t, report.DashboardStats{TotalStudents: 6, AverageGrade: 81, AttendanceRate: 60}, dash)
	})

	t.Run("student summary", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/v1/students/1/summary", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var summary report.StudentSummary
		decodeInto(t, rec, &summary)
		assert.Equal(t, "Amina", summary.Student.FirstName)
		assert.Equal(t, 91, summary.Average)
		assert.Equal(t, 100, summary.AttendanceRate)
		assert.Equal(t, 1, summary.Communications)
	})
}
