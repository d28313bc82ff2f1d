package trackpass

import (
	"context"
	"net/http"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/optimistic"
)

type RouteInput struct {
	Name      string
	CityID    int64
	Period    entity.Period
	Capacity  int
	Departure string
	Arrival   string
	Active    bool
	Points    []entity.RoutePoint
}

type routePointPayload struct {
	PointID int64 `json:"idPonto"`
	Order   int   `json:"ordem"`
}

type routePayload struct {
	Name      string              `json:"nome"`
	CityID    int64               `json:"idCidade"`
	Period    string              `json:"periodo"`
	Capacity  int                 `json:"capacidade"`
	Departure string              `json:"horarioPartida"`
	Arrival   string              `json:"horarioChegada"`
	Active    bool                `json:"ativo"`
	Points    []routePointPayload `json:"pontos"`
}

// RoutePatch is a partial route update; nil fields are not sent.
type RoutePatch struct {
	Name      *string `json:"nome,omitempty"`
	CityID    *int64  `json:"idCidade,omitempty"`
	Period    *string `json:"periodo,omitempty"`
	Capacity  *int    `json:"capacidade,omitempty"`
	Departure *string `json:"horarioPartida,omitempty"`
	Arrival   *string `json:"horarioChegada,omitempty"`
	Active    *bool   `json:"ativo,omitempty"`
}

func (c *Client) ListRoutes(ctx context.Context) ([]entity.Route, error) {
	return getList(ctx, c, "/rotas", nil, decodeRoute)
}

func (c *Client) CreateRoute(ctx context.Context, in RouteInput) (entity.Route, error) {
	payload := &routePayload{
		Name:      in.Name,
		CityID:    in.CityID,
		Period:    string(in.Period),
		Capacity:  in.Capacity,
		Departure: in.Departure,
		Arrival:   in.Arrival,
		Active:    in.Active,
		Points:    make([]routePointPayload, len(in.Points)),
	}
	for i, p := range in.Points {
		payload.Points[i] = routePointPayload{PointID: p.PointID, Order: p.Order}
	}

	f, ok, err := c.send(ctx, http.MethodPost, "/rotas", nil, payload)
	if err != nil {
		return entity.Route{}, err
	}

	created := entity.Route{
		Name:      in.Name,
		CityID:    in.CityID,
		Period:    in.Period,
		Capacity:  in.Capacity,
		Departure: in.Departure,
		Arrival:   in.Arrival,
		Active:    in.Active,
		Points:    append([]entity.RoutePoint(nil), in.Points...),
	}
	if ok {
		created = applyRoute(f, created)
	}
	return created, nil
}

// PatchRoute sends a partial update. The returned patch carries whatever the
// backend echoed back and is nil when the answer had no body.
func (c *Client) PatchRoute(ctx context.Context, id int64, patch RoutePatch) (optimistic.Patch[entity.Route], error) {
	f, ok, err := c.send(ctx, http.MethodPatch, idPath("/rotas/%d", id), nil, &patch)
	if err != nil || !ok {
		return nil, err
	}
	return func(r entity.Route) entity.Route { return applyRoute(f, r) }, nil
}

func (c *Client) DeleteRoute(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/rotas/%d", id), nil, nil)
	return err
}

// GetTrajectory returns the route's points sorted by their route-scoped order.
func (c *Client) GetTrajectory(ctx context.Context, routeID int64) ([]entity.Point, error) {
	data, err := c.do(ctx, http.MethodGet, idPath("/rotas/%d/trajeto", routeID), nil, nil)
	if err != nil {
		return nil, err
	}

	items := collection(data)
	rows := make([]fields, 0, len(items))
	for _, item := range items {
		if item.IsObject() {
			rows = append(rows, fields{item})
		}
	}
	return decodeTrajectory(rows), nil
}

func (c *Client) ListLeaders(ctx context.Context, routeID int64) ([]entity.Collaborator, error) {
	return getList(ctx, c, idPath("/rotas/%d/lideres", routeID), nil, decodeCollaborator)
}

func (c *Client) AssignLeader(ctx context.Context, routeID, collaboratorID int64) error {
	_, err := c.do(ctx, http.MethodPut, idPath("/rotas/%d/lideres/%d", routeID, collaboratorID), nil, nil)
	return err
}

func (c *Client) RevokeLeader(ctx context.Context, routeID, collaboratorID int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/rotas/%d/lideres/%d", routeID, collaboratorID), nil, nil)
	return err
}
