package trackpass

import (
	"context"
	"net/http"
	"trackpass/cmd/internal/domain/entity"
)

type cityPayload struct {
	Name string `json:"nome"`
	UF   string `json:"uf"`
}

func (c *Client) ListCities(ctx context.Context) ([]entity.City, error) {
	return getList(ctx, c, "/cidades", nil, decodeCity)
}

// CreateCity returns the city as echoed by the backend, falling back to the
// submitted fields for anything the echo left out.
func (c *Client) CreateCity(ctx context.Context, name, uf string) (entity.City, error) {
	f, ok, err := c.send(ctx, http.MethodPost, "/cidades", nil, &cityPayload{Name: name, UF: uf})
	if err != nil {
		return entity.City{}, err
	}

	created := entity.City{Name: name, UF: uf}
	if ok {
		created = applyCity(f, created)
	}
	return created, nil
}
