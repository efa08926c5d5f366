package report

import (
	"context"
	"sync"

	"github.com/mwalimu/darasa/core/assignment"
	"github.com/mwalimu/darasa/core/attendance"
	"github.com/mwalimu/darasa/core/comm"
	"github.com/mwalimu/darasa/core/grade"
	"github.com/mwalimu/darasa/core/student"
)

type (
	Overview struct {
		GradeDistribution map[string]int `json:"gradeDistribution"`
		AttendanceRate    int            `json:"attendanceRate"`
		GradeAverage      int            `json:"gradeAverage"`
		CompletionRate    int            `json:"completionRate"`
	}

	AssignmentStats struct {
		Assignment     assignment.Assignment `json:"assignment"`
		Average        int                   `json:"average"`
		CompletionRate int                   `json:"completionRate"`
	}

	DashboardStats struct {
		TotalStudents  int `json:"totalStudents"`
		AverageGrade   int `json:"averageGrade"`
		AttendanceRate int `json:"attendanceRate"`
	}

	StudentSummary struct {
		Student        student.Student `json:"student"`
		Average        int             `json:"average"`
		AttendanceRate int             `json:"attendanceRate"`
		Communications int             `json:"communications"`
	}

	Service struct {
		students    student.Repository
		assignments assignment.Repository
		grades      grade.Repository
		attendance  attendance.Repository
		comms       comm.Repository
	}

	// snapshot is one page-load's worth of data, fetched in full.
	snapshot struct {
		students    []student.Student
		assignments []assignment.Assignment
		grades      []grade.Grade
		records     []attendance.Attendance
	}
)

func NewService(
	students student.Repository,
	assignments assignment.Repository,
	grades grade.Repository,
	att attendance.Repository,
	comms comm.Repository,
) *Service {
	return &Service{
		students:    students,
		assignments: assignments,
		grades:      grades,
		attendance:  att,
		comms:       comms,
	}
}

// load fetches the four collections concurrently and awaits them together.
func (svc *Service) load(ctx context.Context) (snapshot, error) {
	var (
		snap     snapshot
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		students, err := svc.students.QueryAllStudents(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.students = students
	}()
	go func() {
		defer wg.Done()
		assignments, err := svc.assignments.QueryAllAssignments(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.assignments = assignments
	}()
	go func() {
		defer wg.Done()
		grades, err := svc.grades.QueryAllGrades(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.grades = grades
	}()
	go func() {
		defer wg.Done()
		records, err := svc.attendance.QueryAllAttendance(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.records = records
	}()
	wg.Wait()

	return snap, firstErr
}

func (svc *Service) Overview(ctx context.Context) (Overview, error) {
	snap, err := svc.load(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		GradeDistribution: GradeDistribution(snap.students),
		AttendanceRate:    AttendanceRate(snap.records),
		GradeAverage:      OverallAverage(snap.grades, snap.assignments),
		CompletionRate:    OverallCompletionRate(len(snap.grades), len(snap.students), len(snap.assignments)),
	}, nil
}

func (svc *Service) TopPerformers(ctx context.Context, n int) ([]StudentAverage, error) {
	snap, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	return TopPerformers(snap.students, snap.grades, snap.assignments, n), nil
}

func (svc *Service) AttendanceIssues(ctx context.Context) ([]AttendanceIssue, error) {
	snap, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	return AttendanceIssues(snap.students, snap.records), nil
}

func (svc *Service) AssignmentStats(ctx context.Context) ([]AssignmentStats, error) {
	snap, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]AssignmentStats, 0, len(snap.assignments))
	for _, a := range snap.assignments {
		stats = append(stats, AssignmentStats{
			Assignment:     a,
			Average:        ClassAverage(a.ID, snap.grades, snap.assignments),
			CompletionRate: CompletionRate(a.ID, snap.grades, len(snap.students)),
		})
	}
	return stats, nil
}

func (svc *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	snap, err := svc.load(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{
		TotalStudents:  len(snap.students),
		AverageGrade:   OverallAverage(snap.grades, snap.assignments),
		AttendanceRate: AttendanceRate(snap.records),
	}, nil
}

// StudentSummary computes one student's detail-page aggregates.
func (svc *Service) StudentSummary(ctx context.Context, id int) (StudentSummary, error) {
	s, err := svc.students.GetStudentByID(ctx, id)
	if err != nil {
		return StudentSummary{}, err
	}
	grades, err := svc.grades.QueryGradesByStudent(ctx, id)
	if err != nil {
		return StudentSummary{}, err
	}
	assignments, err := svc.assignments.QueryAllAssignments(ctx)
	if err != nil {
		return StudentSummary{}, err
	}
	records, err := svc.attendance.QueryAttendanceByStudent(ctx, id)
	if err != nil {
		return StudentSummary{}, err
	}
	comms, err := svc.comms.QueryCommunicationsByStudent(ctx, id)
	if err != nil {
		return StudentSummary{}, err
	}

	var avg int
	if len(grades) > 0 {
		avg = OverallAverage(grades, assignments)
	}
	return StudentSummary{
		Student:        s,
		Average:        avg,
		AttendanceRate: AttendanceRate(records),
		Communications: len(comms),
	}, nil
}
