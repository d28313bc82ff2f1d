package trackpass

import (
	"context"
	"trackpass/cmd/internal/domain/entity"
)

func (c *Client) ListVehicles(ctx context.Context) ([]entity.Vehicle, error) {
	return getList(ctx, c, "/veiculos", nil, decodeVehicle)
}

func (c *Client) GetVehicle(ctx context.Context, id int64) (entity.Vehicle, error) {
	return getOne(ctx, c, idPath("/veiculos/%d", id), decodeVehicle)
}

func (c *Client) ListDrivers(ctx context.Context) ([]entity.Driver, error) {
	return getList(ctx, c, "/motorista", nil, decodeDriver)
}

func (c *Client) GetDriver(ctx context.Context, id int64) (entity.Driver, error) {
	return getOne(ctx, c, idPath("/motorista/%d", id), decodeDriver)
}
