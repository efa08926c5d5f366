package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/mwalimu/darasa/core/report"
	"github.com/mwalimu/darasa/storage/tablerepo"
)

// stats prints a class overview from the configured boundary.
func (cli *commandLine) stats() error {
	svc := report.NewService(
		tablerepo.NewStudentRepository(cli.client),
		tablerepo.NewAssignmentRepository(cli.client),
		tablerepo.NewGradeRepository(cli.client),
		tablerepo.NewAttendanceRepository(cli.client),
		tablerepo.NewCommunicationRepository(cli.client),
	)

	ctx := context.Background()
	dash, err := svc.Dashboard(ctx)
	if err != nil {
		return err
	}
	overview, err := svc.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Students:          %d\n", dash.TotalStudents)
	fmt.Printf("Average grade:     %d%%\n", dash.AverageGrade)
	fmt.Printf("Attendance rate:   %d%%\n", dash.AttendanceRate)
	fmt.Printf("Completion rate:   %d%%\n", overview.CompletionRate)
	fmt.Println("Students per grade level:")
	levels := make([]string, 0, len(overview.GradeDistribution))
	for level := range overview.GradeDistribution {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		fmt.Printf("  %s: %d\n", level, overview.GradeDistribution[level])
	}
	return nil
}
