package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core/attendance"
)

type (
	attendanceApi struct {
		svc *attendance.Service
	}

	// BulkAttendanceRequest marks every listed student with one status on
	// one date.
	BulkAttendanceRequest struct {
		Date       string `json:"date"`
		Status     string `json:"status"`
		StudentIDs []int  `json:"studentIds"`
	}
)

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.POST("/bulk", api.markAll)

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *attendanceApi) create(ctx echo.Context) error {
	var data attendance.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}

	att, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, att)
}

func (api *attendanceApi) markAll(ctx echo.Context) error {
	var data BulkAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkAttendanceRequest")
	}

	created, err := api.svc.MarkAll(ctx.Request().Context(), data.Date, data.Status, data.StudentIDs)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, created)
}

// query returns all attendance, optionally scoped to ?student= or ?date=.
func (api *attendanceApi) query(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	studentID, err := intQuery(ctx, "student")
	if err != nil {
		return err
	}
	date := ctx.QueryParam("date")

	var records []attendance.Attendance
	switch {
	case studentID != 0:
		records, err = api.svc.QueryByStudent(reqCtx, studentID)
	case date != "":
		records, err = api.svc.QueryByDate(reqCtx, date)
	default:
		records, err = api.svc.QueryAll(reqCtx)
	}
	if err != nil {
		return err
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	att, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, att)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data attendance.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}

	att, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, att)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
