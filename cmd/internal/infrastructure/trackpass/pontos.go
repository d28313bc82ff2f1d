package trackpass

import (
	"context"
	"net/http"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/optimistic"
)

type PointInput struct {
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	CityID    int64
}

type pointPayload struct {
	Name      string  `json:"nome"`
	Address   string  `json:"endereco"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CityID    int64   `json:"idCidade"`
}

func (in PointInput) payload() *pointPayload {
	return &pointPayload{
		Name:      in.Name,
		Address:   in.Address,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CityID:    in.CityID,
	}
}

func (in PointInput) entity() entity.Point {
	return entity.Point{
		Name:      in.Name,
		Address:   in.Address,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CityID:    in.CityID,
	}
}

func (c *Client) ListPoints(ctx context.Context) ([]entity.Point, error) {
	return getList(ctx, c, "/pontos", nil, decodePoint)
}

func (c *Client) CreatePoint(ctx context.Context, in PointInput) (entity.Point, error) {
	f, ok, err := c.send(ctx, http.MethodPost, "/pontos", nil, in.payload())
	if err != nil {
		return entity.Point{}, err
	}

	created := in.entity()
	if ok {
		created = applyPoint(f, created)
	}
	return created, nil
}

func (c *Client) UpdatePoint(ctx context.Context, id int64, in PointInput) (optimistic.Patch[entity.Point], error) {
	f, ok, err := c.send(ctx, http.MethodPut, idPath("/pontos/%d", id), nil, in.payload())
	if err != nil || !ok {
		return nil, err
	}
	return func(p entity.Point) entity.Point { return applyPoint(f, p) }, nil
}

func (c *Client) DeletePoint(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/pontos/%d", id), nil, nil)
	return err
}
