package trackpass

import (
	"context"
	"trackpass/cmd/internal/domain/entity"
)

func (c *Client) ListImpediments(ctx context.Context) ([]entity.Impediment, error) {
	return getList(ctx, c, "/impedimentos", nil, decodeImpediment)
}

func (c *Client) GetImpediment(ctx context.Context, id int64) (entity.Impediment, error) {
	return getOne(ctx, c, idPath("/impedimentos/%d/detalhado", id), decodeImpediment)
}
