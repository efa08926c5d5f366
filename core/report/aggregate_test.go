package report

import (
	"reflect"
	"testing"

	"github.com/mwalimu/darasa/core/assignment"
	"github.com/mwalimu/darasa/core/attendance"
	"github.com/mwalimu/darasa/core/grade"
	"github.com/mwalimu/darasa/core/student"
)

func TestGradePercentage(t *testing.T) {
	tests := []struct {
		name        string
		score       float64
		totalPoints int
		want        int
	}{
		{name: "exact", score: 45, totalPoints: 50, want: 90},
		{name: "rounds half up", score: 42.75, totalPoints: 50, want: 86}, // 85.5%
		{name: "rounds down", score: 42.6, totalPoints: 50, want: 85},     // 85.2%
		{name: "zero-point assignment", score: 10, totalPoints: 0, want: 0},
		{name: "zero score", score: 0, totalPoints: 50, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradePercentage(tt.score, tt.totalPoints); got != tt.want {
				t.Errorf("GradePercentage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverallAverage(t *testing.T) {
	assignments := []assignment.Assignment{
		{ID: 1, TotalPoints: 100},
		{ID: 2, TotalPoints: 50},
	}

	tests := []struct {
		name   string
		grades []grade.Grade
		want   int
	}{
		{name: "no grades", want: 0},
		{
			name: "points-weighted", // (90+40)/(100+50) = 86.67 -> 87
			grades: []grade.Grade{
				{AssignmentID: 1, Score: 90},
				{AssignmentID: 2, Score: 40},
			},
			want: 87,
		},
		{
			name: "dangling assignment counts out of 100",
			grades: []grade.Grade{
				{AssignmentID: 99, Score: 50},
			},
			want: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallAverage(tt.grades, assignments); got != tt.want {
				t.Errorf("OverallAverage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassAverage(t *testing.T) {
	assignments := []assignment.Assignment{{ID: 1, TotalPoints: 50}}
	grades := []grade.Grade{
		{AssignmentID: 1, Score: 40},
		{AssignmentID: 1, Score: 45},
		{AssignmentID: 2, Score: 10}, // other assignment, ignored
	}

	if got := ClassAverage(1, grades, assignments); got != 85 {
		t.Errorf("ClassAverage() = %d, want 85", got)
	}
	if got := ClassAverage(3, grades, assignments); got != 0 {
		t.Errorf("ClassAverage() no grades = %d, want 0", got)
	}
}

func TestAttendanceRate(t *testing.T) {
	tests := []struct {
		name    string
		records []attendance.Attendance
		want    int
	}{
		{name: "no records is a perfect rate", want: 100},
		{
			name: "half present", // present,present,absent,late -> 50
			records: []attendance.Attendance{
				{Status: attendance.StatusPresent},
				{Status: attendance.StatusPresent},
				{Status: attendance.StatusAbsent},
				{Status: attendance.StatusLate},
			},
			want: 50,
		},
		{
			name: "excused is not present",
			records: []attendance.Attendance{
				{Status: attendance.StatusExcused},
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttendanceRate(tt.records); got != tt.want {
				t.Errorf("AttendanceRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTopPerformers(t *testing.T) {
	students := []student.Student{
		{ID: 1, FirstName: "Amina"},
		{ID: 2, FirstName: "Baraka"},
		{ID: 3, FirstName: "Chiku"},
	}
	assignments := []assignment.Assignment{{ID: 1, TotalPoints: 100}}
	grades := []grade.Grade{
		{StudentID: 1, AssignmentID: 1, Score: 80},
		{StudentID: 2, AssignmentID: 1, Score: 95},
		{StudentID: 3, AssignmentID: 1, Score: 80},
	}

	top := TopPerformers(students, grades, assignments, 1)
	if len(top) != 1 || top[0].Student.ID != 2 || top[0].Average != 95 {
		t.Fatalf("TopPerformers(1) = %+v", top)
	}

	// ties keep input order
	all := TopPerformers(students, grades, assignments, 3)
	gotIDs := []int{all[0].Student.ID, all[1].Student.ID, all[2].Student.ID}
	if !reflect.DeepEqual(gotIDs, []int{2, 1, 3}) {
		t.Errorf("TopPerformers(3) order = %v, want [2 1 3]", gotIDs)
	}

	// n larger than the class returns everyone
	if got := TopPerformers(students, grades, assignments, 10); len(got) != 3 {
		t.Errorf("TopPerformers(10) len = %d, want 3", len(got))
	}
}

func TestStudentAveragesNoGrades(t *testing.T) {
	students := []student.Student{{ID: 1}}
	avgs := StudentAverages(students, nil, nil)
	if len(avgs) != 1 || avgs[0].Average != 0 {
		t.Errorf("StudentAverages() = %+v, want average 0", avgs)
	}
}

func TestAttendanceIssues(t *testing.T) {
	students := []student.Student{
		{ID: 1, FirstName: "Amina"},
		{ID: 2, FirstName: "Baraka"},
		{ID: 3, FirstName: "Chiku"},
	}
	records := []attendance.Attendance{
		// student 1: 9/10 present = 90, exactly at the threshold, not flagged
		{StudentID: 1, Status: attendance.StatusAbsent},
	}
	for i := 0; i < 9; i++ {
		records = append(records, attendance.Attendance{StudentID: 1, Status: attendance.StatusPresent})
	}
	// student 2: 1/2 present = 50, flagged
	records = append(records,
		attendance.Attendance{StudentID: 2, Status: attendance.StatusPresent},
		attendance.Attendance{StudentID: 2, Status: attendance.StatusAbsent},
	)
	// student 3: no records, rate 100, not flagged

	issues := AttendanceIssues(students, records)
	if len(issues) != 1 {
		t.Fatalf("AttendanceIssues() = %+v, want 1 issue", issues)
	}
	if issues[0].Student.ID != 2 || issues[0].Rate != 50 {
		t.Errorf("AttendanceIssues()[0] = %+v", issues[0])
	}
}

func TestAttendanceIssuesSortsLowestFirst(t *testing.T) {
	students := []student.Student{{ID: 1}, {ID: 2}}
	records := []attendance.Attendance{
		{StudentID: 1, Status: attendance.StatusPresent},
		{StudentID: 1, Status: attendance.StatusAbsent},
		{StudentID: 2, Status: attendance.StatusAbsent},
	}
	issues := AttendanceIssues(students, records)
	if len(issues) != 2 || issues[0].Student.ID != 2 || issues[1].Student.ID != 1 {
		t.Errorf("AttendanceIssues() order = %+v, want student 2 first", issues)
	}
}

func TestCompletionRate(t *testing.T) {
	grades := []grade.Grade{
		{AssignmentID: 1, StudentID: 1},
		{AssignmentID: 1, StudentID: 2},
		{AssignmentID: 2, StudentID: 1},
	}
	if got := CompletionRate(1, grades, 3); got != 67 {
		t.Errorf("CompletionRate() = %d, want 67", got)
	}
	if got := CompletionRate(1, grades, 0); got != 0 {
		t.Errorf("CompletionRate() no students = %d, want 0", got)
	}
}

func TestOverallCompletionRate(t *testing.T) {
	if got := OverallCompletionRate(3, 2, 3); got != 50 {
		t.Errorf("OverallCompletionRate() = %d, want 50", got)
	}
	if got := OverallCompletionRate(0, 0, 5); got != 0 {
		t.Errorf("OverallCompletionRate() empty class = %d, want 0", got)
	}
}

func TestGradeDistribution(t *testing.T) {
	students := []student.Student{
		{Grade: "Grade 5"},
		{Grade: "Grade 5"},
		{Grade: "Grade 6"},
	}
	want := map[string]int{"Grade 5": 2, "Grade 6": 1}
	if got := GradeDistribution(students); !reflect.DeepEqual(got, want) {
		t.Errorf("GradeDistribution() = %v, want %v", got, want)
	}
}
