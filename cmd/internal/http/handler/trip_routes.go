package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/service"
	"trackpass/cmd/internal/utils"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TripService interface {
	List(ctx context.Context, routeID int64) ([]entity.Trip, error)
	Create(ctx context.Context, req *contract.TripRequest) (*entity.Trip, error)
	Update(ctx context.Context, id int64, req *contract.TripRequest) error
	Boardings(ctx context.Context, tripID int64) ([]entity.Boarding, error)
}

type FleetService interface {
	Vehicles(ctx context.Context) ([]entity.Vehicle, error)
	Vehicle(ctx context.Context, id int64) (*entity.Vehicle, error)
	Drivers(ctx context.Context) ([]entity.Driver, error)
	Driver(ctx context.Context, id int64) (*entity.Driver, error)
}

type ImpedimentService interface {
	List(ctx context.Context, filter service.ImpedimentFilter) ([]entity.Impediment, error)
	Get(ctx context.Context, id int64) (*entity.Impediment, error)
}

type DefaultTripRoute struct {
	TripService       TripService
	FleetService      FleetService
	ImpedimentService ImpedimentService
}

func NewTripRoute(trips TripService, fleet FleetService, impediments ImpedimentService) *DefaultTripRoute {
	return &DefaultTripRoute{
		TripService:       trips,
		FleetService:      fleet,
		ImpedimentService: impediments,
	}
}

func (t *DefaultTripRoute) GetTrips(c echo.Context) error {
	var routeID int64
	if raw := strings.TrimSpace(c.QueryParam("idRota")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return respondAPIError(c, apierror.NewInvalidParamTypeError("idRota", "int64 > 0"))
		}
		routeID = id
	}

	trips, err := t.TripService.List(c.Request().Context(), routeID)
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"viagens": trips}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTripRoute) CreateTrip(c echo.Context) error {
	var req contract.TripRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	trip, err := t.TripService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, trip)
}

func (t *DefaultTripRoute) UpdateTrip(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	var req contract.TripRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if err := t.TripService.Update(c.Request().Context(), id, &req); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (t *DefaultTripRoute) GetBoardings(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	boardings, err := t.TripService.Boardings(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"embarques": boardings}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTripRoute) GetVehicles(c echo.Context) error {
	vehicles, err := t.FleetService.Vehicles(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"veiculos": vehicles}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTripRoute) GetVehicle(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	vehicle, err := t.FleetService.Vehicle(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (t *DefaultTripRoute) GetDrivers(c echo.Context) error {
	drivers, err := t.FleetService.Drivers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"motoristas": drivers}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTripRoute) GetDriver(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	driver, err := t.FleetService.Driver(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, driver)
}

func (t *DefaultTripRoute) GetImpediments(c echo.Context) error {
	filter := service.ImpedimentFilter{
		Severity: entity.Severity(strings.TrimSpace(c.QueryParam("gravidade"))),
	}
	if raw := c.QueryParam("ativos"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return respondAPIError(c, apierror.NewInvalidParamTypeError("ativos", "bool"))
		}
		filter.ActiveOnly = active
	}

	impediments, err := t.ImpedimentService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"impedimentos": impediments}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTripRoute) GetImpediment(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	impediment, err := t.ImpedimentService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, impediment)
}
