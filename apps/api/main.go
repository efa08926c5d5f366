package main

import (
	"log"
	"os"

	"github.com/mwalimu/darasa/apps/api/echo"
	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/assignment"
	"github.com/mwalimu/darasa/core/attendance"
	"github.com/mwalimu/darasa/core/comm"
	"github.com/mwalimu/darasa/core/grade"
	"github.com/mwalimu/darasa/core/report"
	"github.com/mwalimu/darasa/core/student"
	"github.com/mwalimu/darasa/core/table"
	"github.com/mwalimu/darasa/services/email"
	"github.com/mwalimu/darasa/services/email/sendgrid"
	"github.com/mwalimu/darasa/services/logger"
	"github.com/mwalimu/darasa/storage/table/fixture"
	"github.com/mwalimu/darasa/storage/table/live"
	"github.com/mwalimu/darasa/storage/table/postgres"
	"github.com/mwalimu/darasa/storage/tablerepo"
)

// TODO:
// - graceful shutdown
// - swagger
func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, conf.AppName+" : ", log.LstdFlags|log.Lshortfile)
	appLogger := logsvc.NewRollbarLogger(std, conf)
	appLogger.Enable(!(conf.Debug || conf.TestMode))

	// set up the table boundary
	client, closeFn, err := openBoundary(conf)
	if err != nil {
		appLogger.Fatal("opening table boundary", err)
	}
	if closeFn != nil {
		defer closeFn()
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = sendgridmail.NewService(conf, appLogger)
	}

	studentRepo := tablerepo.NewStudentRepository(client)
	assignmentRepo := tablerepo.NewAssignmentRepository(client)
	gradeRepo := tablerepo.NewGradeRepository(client)
	attendanceRepo := tablerepo.NewAttendanceRepository(client)
	commRepo := tablerepo.NewCommunicationRepository(client)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:       conf.Server.Addr(),
		Conf:          conf,
		Logger:        appLogger,
		StudentSvc:    student.NewService(studentRepo),
		AssignmentSvc: assignment.NewService(assignmentRepo),
		GradeSvc:      grade.NewService(gradeRepo),
		AttendanceSvc: attendance.NewService(attendanceRepo),
		CommSvc:       comm.NewService(commRepo, mailSvc, conf.FollowUpEmail),
		ReportSvc: report.NewService(
			studentRepo, assignmentRepo, gradeRepo, attendanceRepo, commRepo,
		),
	})
	app.Start()
}

func openBoundary(conf *core.Config) (table.Client, func(), error) {
	switch conf.Boundary.Kind {
	case "live":
		return live.NewClient(conf), nil, nil
	case "postgres":
		client, err := postgres.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	default:
		client, err := fixture.Open()
		return client, nil, err
	}
}
