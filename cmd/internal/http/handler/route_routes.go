package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type RouteService interface {
	List(ctx context.Context, term string) ([]*contract.RouteResponse, error)
	Refresh(ctx context.Context) error
	Close()
	Create(ctx context.Context, req *contract.CreateRouteRequest) (*entity.Route, error)
	SetActive(ctx context.Context, id int64, req *contract.SetActiveRequest) error
	Update(ctx context.Context, id int64, req *contract.UpdateRouteRequest) error
	Delete(ctx context.Context, id int64, confirmed bool) error
	Trajectory(ctx context.Context, id int64) ([]entity.Point, error)
}

type CityService interface {
	List(ctx context.Context) ([]entity.City, error)
	Create(ctx context.Context, req *contract.CreateCityRequest) (*entity.City, error)
}

type RouteCollaboratorService interface {
	List(ctx context.Context, routeID int64, term string) ([]*contract.AssignmentResponse, error)
	MoveToPoint(ctx context.Context, routeID, collaboratorID, pointID int64) error
	Remove(ctx context.Context, routeID, collaboratorID int64, confirmed bool) error
	ToggleLeader(ctx context.Context, routeID, collaboratorID int64) error
}

type DefaultRouteRoute struct {
	RouteService        RouteService
	CityService         CityService
	CollaboratorService RouteCollaboratorService
}

func NewRouteRoute(routeService RouteService, cityService CityService, collaboratorService RouteCollaboratorService) *DefaultRouteRoute {
	return &DefaultRouteRoute{
		RouteService:        routeService,
		CityService:         cityService,
		CollaboratorService: collaboratorService,
	}
}

func (r *DefaultRouteRoute) GetCities(c echo.Context) error {
	cities, err := r.CityService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"cidades": cities}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultRouteRoute) CreateCity(c echo.Context) error {
	var req contract.CreateCityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	city, err := r.CityService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, city)
}

func (r *DefaultRouteRoute) GetRoutes(c echo.Context) error {
	routes, err := r.RouteService.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"rotas": routes}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultRouteRoute) RefreshRoutes(c echo.Context) error {
	if err := r.RouteService.Refresh(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	return r.GetRoutes(c)
}

// CloseRoutesView is called when the manager leaves the routes screen.
func (r *DefaultRouteRoute) CloseRoutesView(c echo.Context) error {
	r.RouteService.Close()
	return c.NoContent(http.StatusNoContent)
}

func (r *DefaultRouteRoute) CreateRoute(c echo.Context) error {
	var req contract.CreateRouteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	route, err := r.RouteService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, route)
}

func (r *DefaultRouteRoute) UpdateRoute(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	var req contract.UpdateRouteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if err := r.RouteService.Update(c.Request().Context(), id, &req); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (r *DefaultRouteRoute) SetRouteActive(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	var req contract.SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if err := r.RouteService.SetActive(c.Request().Context(), id, &req); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (r *DefaultRouteRoute) DeleteRoute(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	if !utils.IsConfirmed(c) {
		return respondAPIError(c, apierror.ConfirmationRequiredError)
	}

	if err := r.RouteService.Delete(c.Request().Context(), id, true); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (r *DefaultRouteRoute) GetTrajectory(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	points, err := r.RouteService.Trajectory(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"pontos": points}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultRouteRoute) GetRouteCollaborators(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	assignments, err := r.CollaboratorService.List(c.Request().Context(), id, strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"colaboradores": assignments}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultRouteRoute) MoveCollaborator(c echo.Context) error {
	routeID, collaboratorID, apierr := routeAndCollaborator(c)
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	raw := strings.TrimSpace(c.QueryParam("idPonto"))
	if raw == "" {
		return respondAPIError(c, apierror.NewMissingParamError("idPonto"))
	}
	pointID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || pointID <= 0 {
		return respondAPIError(c, apierror.NewInvalidParamTypeError("idPonto", "int64 > 0"))
	}

	if err := r.CollaboratorService.MoveToPoint(c.Request().Context(), routeID, collaboratorID, pointID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (r *DefaultRouteRoute) RemoveCollaborator(c echo.Context) error {
	routeID, collaboratorID, apierr := routeAndCollaborator(c)
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	if !utils.IsConfirmed(c) {
		return respondAPIError(c, apierror.ConfirmationRequiredError)
	}

	if err := r.CollaboratorService.Remove(c.Request().Context(), routeID, collaboratorID, true); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (r *DefaultRouteRoute) ToggleLeader(c echo.Context) error {
	routeID, collaboratorID, apierr := routeAndCollaborator(c)
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	if err := r.CollaboratorService.ToggleLeader(c.Request().Context(), routeID, collaboratorID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func routeAndCollaborator(c echo.Context) (int64, int64, apierror.ErrorResponse) {
	routeID, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return 0, 0, apierr
	}

	collaboratorID, apierr := utils.ParseIDParam(c, "cid")
	if apierr != nil {
		return 0, 0, apierr
	}
	return routeID, collaboratorID, nil
}
