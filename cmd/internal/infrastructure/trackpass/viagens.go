package trackpass

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/optimistic"
)

type TripInput struct {
	RouteID   int64
	DriverID  int64
	VehicleID int64
	Date      string
	Departure string
	Arrival   string
	Direction entity.Direction
	Active    bool
}

type tripPayload struct {
	RouteID   int64  `json:"idRota"`
	DriverID  int64  `json:"idMotorista"`
	VehicleID int64  `json:"idVeiculo"`
	Date      string `json:"data"`
	Departure string `json:"horarioPartida"`
	Arrival   string `json:"horarioChegada"`
	Direction string `json:"sentido"`
	Active    bool   `json:"ativo"`
}

func (in TripInput) payload() *tripPayload {
	return &tripPayload{
		RouteID:   in.RouteID,
		DriverID:  in.DriverID,
		VehicleID: in.VehicleID,
		Date:      in.Date,
		Departure: in.Departure,
		Arrival:   in.Arrival,
		Direction: string(in.Direction),
		Active:    in.Active,
	}
}

func (c *Client) ListTrips(ctx context.Context, routeID int64) ([]entity.Trip, error) {
	var query url.Values
	if routeID > 0 {
		query = url.Values{"idRota": {strconv.FormatInt(routeID, 10)}}
	}
	return getList(ctx, c, "/viagens", query, decodeTrip)
}

func (c *Client) CreateTrip(ctx context.Context, in TripInput) (entity.Trip, error) {
	f, ok, err := c.send(ctx, http.MethodPost, "/viagens", nil, in.payload())
	if err != nil {
		return entity.Trip{}, err
	}

	created := entity.Trip{
		RouteID:   in.RouteID,
		DriverID:  in.DriverID,
		VehicleID: in.VehicleID,
		Date:      in.Date,
		Departure: in.Departure,
		Arrival:   in.Arrival,
		Direction: in.Direction,
		Active:    in.Active,
	}
	if ok {
		created = applyTrip(f, created)
	}
	return created, nil
}

func (c *Client) UpdateTrip(ctx context.Context, id int64, in TripInput) (optimistic.Patch[entity.Trip], error) {
	f, ok, err := c.send(ctx, http.MethodPut, idPath("/viagens/%d", id), nil, in.payload())
	if err != nil || !ok {
		return nil, err
	}
	return func(t entity.Trip) entity.Trip { return applyTrip(f, t) }, nil
}

func (c *Client) ListBoardings(ctx context.Context, tripID int64) ([]entity.Boarding, error) {
	return getList(ctx, c, idPath("/viagens/%d/embarques", tripID), nil, decodeBoarding)
}
