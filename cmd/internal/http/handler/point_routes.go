package handler

import (
	"context"
	"net/http"
	"strings"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type PointService interface {
	List(ctx context.Context, term string) ([]entity.Point, error)
	Create(ctx context.Context, req *contract.PointRequest) (*entity.Point, error)
	Update(ctx context.Context, id int64, req *contract.PointRequest) error
	Delete(ctx context.Context, id int64, confirmed bool) error
}

type DefaultPointRoute struct {
	PointService PointService
}

func NewPointRoute(pointService PointService) *DefaultPointRoute {
	return &DefaultPointRoute{PointService: pointService}
}

func (p *DefaultPointRoute) GetPoints(c echo.Context) error {
	points, err := p.PointService.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"pontos": points}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPointRoute) CreatePoint(c echo.Context) error {
	var req contract.PointRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	point, err := p.PointService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, point)
}

func (p *DefaultPointRoute) UpdatePoint(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	var req contract.PointRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if err := p.PointService.Update(c.Request().Context(), id, &req); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (p *DefaultPointRoute) DeletePoint(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	if !utils.IsConfirmed(c) {
		return respondAPIError(c, apierror.ConfirmationRequiredError)
	}

	if err := p.PointService.Delete(c.Request().Context(), id, true); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
