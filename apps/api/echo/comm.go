package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core/comm"
)

type communicationApi struct {
	svc *comm.Service
}

func registerCommunicationAPI(g *echo.Group, svc *comm.Service) {
	api := communicationApi{svc: svc}

	cg := g.Group("/communications")
	cg.GET("", api.query)
	cg.POST("", api.create)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *communicationApi) create(ctx echo.Context) error {
	var data comm.NewCommunication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCommunication")
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, c)
}

// query returns all communications, optionally scoped to ?student=.
func (api *communicationApi) query(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	studentID, err := intQuery(ctx, "student")
	if err != nil {
		return err
	}

	var comms []comm.Communication
	if studentID != 0 {
		comms, err = api.svc.QueryByStudent(reqCtx, studentID)
	} else {
		comms, err = api.svc.QueryAll(reqCtx)
	}
	if err != nil {
		return err
	}
	if comms == nil {
		comms = []comm.Communication{}
	}
	return ctx.JSON(http.StatusOK, comms)
}

func (api *communicationApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	c, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *communicationApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data comm.NewCommunication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCommunication")
	}

	c, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *communicationApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
