// Package report computes the derived metrics every report and dashboard
// view depends on. The aggregation functions are pure, operate on
// collections already fetched into memory, and are total over their input
// domain: a malformed or dangling reference gets a documented fallback,
// never an error.
package report

import (
	"math"
	"sort"

	"github.com/mwalimu/darasa/core/assignment"
	"github.com/mwalimu/darasa/core/attendance"
	"github.com/mwalimu/darasa/core/grade"
	"github.com/mwalimu/darasa/core/student"
)

// defaultTotalPoints is the denominator contribution of a grade whose
// assignment cannot be found; such grades are not silently dropped.
const defaultTotalPoints = 100

// AttendanceThreshold is the rate below which a student is flagged.
const AttendanceThreshold = 90

type (
	StudentAverage struct {
		Student student.Student `json:"student"`
		Average int             `json:"average"`
	}

	AttendanceIssue struct {
		Student student.Student `json:"student"`
		Rate    int             `json:"rate"`
	}
)

// round is round-half-up, as the views expect (Math.round semantics).
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// GradePercentage computes one grade's percentage score. A zero-point
// assignment yields 0, not an error.
func GradePercentage(score float64, totalPoints int) int {
	if totalPoints == 0 {
		return 0
	}
	return round(score / float64(totalPoints) * 100)
}

// ClassAverage computes the average percentage over all grades for one
// assignment; 0 if the assignment has no grades.
func ClassAverage(assignmentID int, grades []grade.Grade, assignments []assignment.Assignment) int {
	points := totalPointsByAssignment(assignments)

	var sum float64
	var n int
	for _, g := range grades {
		if g.AssignmentID != assignmentID {
			continue
		}
		sum += g.Score
		n++
	}
	if n == 0 {
		return 0
	}
	total, ok := points[assignmentID]
	if !ok {
		total = defaultTotalPoints
	}
	if total == 0 {
		return 0
	}
	return round(sum / float64(n) / float64(total) * 100)
}

// OverallAverage computes the points-weighted average percentage over a
// set of grades; 0 when there are no points to earn.
func OverallAverage(grades []grade.Grade, assignments []assignment.Assignment) int {
	points := totalPointsByAssignment(assignments)

	var earned float64
	var possible int
	for _, g := range grades {
		total, ok := points[g.AssignmentID]
		if !ok {
			total = defaultTotalPoints
		}
		earned += g.Score
		possible += total
	}
	if possible == 0 {
		return 0
	}
	return round(earned / float64(possible) * 100)
}

// AttendanceRate is the percentage of records marked present. A student
// with no recorded attendance is not penalized: the empty rate is 100.
func AttendanceRate(records []attendance.Attendance) int {
	if len(records) == 0 {
		return 100
	}
	var present int
	for _, r := range records {
		if r.Status == attendance.StatusPresent {
			present++
		}
	}
	return round(float64(present) / float64(len(records)) * 100)
}

// GradeDistribution counts students per grade level label.
func GradeDistribution(students []student.Student) map[string]int {
	dist := make(map[string]int)
	for _, s := range students {
		dist[s.Grade]++
	}
	return dist
}

// StudentAverages computes each student's overall average over their own
// grades, in input order. A student with no grades averages 0.
func StudentAverages(students []student.Student, grades []grade.Grade, assignments []assignment.Assignment) []StudentAverage {
	byStudent := make(map[int][]grade.Grade)
	for _, g := range grades {
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}

	avgs := make([]StudentAverage, 0, len(students))
	for _, s := range students {
		var avg int
		if gs := byStudent[s.ID]; len(gs) > 0 {
			avg = OverallAverage(gs, assignments)
		}
		avgs = append(avgs, StudentAverage{Student: s, Average: avg})
	}
	return avgs
}

// TopPerformers returns the n highest student averages, descending; ties
// keep input order.
func TopPerformers(students []student.Student, grades []grade.Grade, assignments []assignment.Assignment, n int) []StudentAverage {
	avgs := StudentAverages(students, grades, assignments)
	sort.SliceStable(avgs, func(i, j int) bool { return avgs[i].Average > avgs[j].Average })
	if n >= 0 && n < len(avgs) {
		avgs = avgs[:n]
	}
	return avgs
}

// AttendanceIssues flags students whose attendance rate is strictly below
// the threshold, lowest rate first; ties keep input order.
func AttendanceIssues(students []student.Student, records []attendance.Attendance) []AttendanceIssue {
	byStudent := make(map[int][]attendance.Attendance)
	for _, r := range records {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}

	issues := make([]AttendanceIssue, 0)
	for _, s := range students {
		rate := AttendanceRate(byStudent[s.ID])
		if rate < AttendanceThreshold {
			issues = append(issues, AttendanceIssue{Student: s, Rate: rate})
		}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Rate < issues[j].Rate })
	return issues
}

// CompletionRate is the percentage of students with a grade for one
// assignment; 0 when there are no students.
func CompletionRate(assignmentID int, grades []grade.Grade, studentCount int) int {
	if studentCount == 0 {
		return 0
	}
	var submitted int
	for _, g := range grades {
		if g.AssignmentID == assignmentID {
			submitted++
		}
	}
	return round(float64(submitted) / float64(studentCount) * 100)
}

// OverallCompletionRate is the share of all possible submissions that
// exist: gradeCount / (studentCount × assignmentCount).
func OverallCompletionRate(gradeCount, studentCount, assignmentCount int) int {
	possible := studentCount * assignmentCount
	if possible == 0 {
		return 0
	}
	return round(float64(gradeCount) / float64(possible) * 100)
}

func totalPointsByAssignment(assignments []assignment.Assignment) map[int]int {
	points := make(map[int]int, len(assignments))
	for _, a := range assignments {
		points[a.ID] = a.TotalPoints
	}
	return points
}
