package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwalimu/darasa/core/report"
)

const defaultTopPerformers = 5

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports")
	rg.GET("/overview", api.overview)
	rg.GET("/top-performers", api.topPerformers)
	rg.GET("/attendance-issues", api.attendanceIssues)
	rg.GET("/assignments", api.assignmentStats)
	rg.GET("/dashboard", api.dashboard)
}

func (api *reportApi) overview(ctx echo.Context) error {
	overview, err := api.svc.Overview(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, overview)
}

func (api *reportApi) topPerformers(ctx echo.Context) error {
	limit, err := intQuery(ctx, "limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = defaultTopPerformers
	}

	performers, err := api.svc.TopPerformers(ctx.Request().Context(), limit)
	if err != nil {
		return err
	}
	if performers == nil {
		performers = []report.StudentAverage{}
	}
	return ctx.JSON(http.StatusOK, performers)
}

func (api *reportApi) attendanceIssues(ctx echo.Context) error {
	issues, err := api.svc.AttendanceIssues(ctx.Request().Context())
	if err != nil {
		return err
	}
	if issues == nil {
		issues = []report.AttendanceIssue{}
	}
	return ctx.JSON(http.StatusOK, issues)
}

func (api *reportApi) assignmentStats(ctx echo.Context) error {
	stats, err := api.svc.AssignmentStats(ctx.Request().Context())
	if err != nil {
		return err
	}
	if stats == nil {
		stats = []report.AssignmentStats{}
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *reportApi) dashboard(ctx echo.Context) error {
	stats, err := api.svc.Dashboard(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}
