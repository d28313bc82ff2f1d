package trackpass

import (
	"context"
	"net/http"
	"net/url"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/optimistic"
)

type EntryInput struct {
	Matricula string
	GateID    int64
	Occupants []entity.Occupant
}

type occupantPayload struct {
	Name     string `json:"nome"`
	Document string `json:"documento,omitempty"`
}

type entryPayload struct {
	Matricula string            `json:"matricula"`
	GateID    int64             `json:"idPortaria,omitempty"`
	Occupants []occupantPayload `json:"ocupantes"`
}

// ListAccesses returns the current gate log.
func (c *Client) ListAccesses(ctx context.Context) ([]entity.Access, error) {
	return getList(ctx, c, "/acessos", nil, decodeAccess)
}

// AccessHistory returns the gate log between two YYYY-MM-DD dates, inclusive.
func (c *Client) AccessHistory(ctx context.Context, from, to string) ([]entity.Access, error) {
	query := url.Values{"de": {from}, "ate": {to}}
	return getList(ctx, c, "/acessos/historico", query, decodeAccess)
}

func (c *Client) RegisterEntry(ctx context.Context, in EntryInput) (entity.Access, error) {
	payload := &entryPayload{
		Matricula: in.Matricula,
		GateID:    in.GateID,
		Occupants: make([]occupantPayload, len(in.Occupants)),
	}
	for i, o := range in.Occupants {
		payload.Occupants[i] = occupantPayload{Name: o.Name, Document: o.Document}
	}

	f, ok, err := c.send(ctx, http.MethodPost, "/acessos/por-matricula", nil, payload)
	if err != nil {
		return entity.Access{}, err
	}
	if !ok {
		return entity.Access{}, notFound(http.MethodPost + " /acessos/por-matricula")
	}
	return decodeAccess(f), nil
}

func (c *Client) RegisterExit(ctx context.Context, id int64) (optimistic.Patch[entity.Access], error) {
	f, ok, err := c.send(ctx, http.MethodPost, idPath("/acessos/%d/saida", id), nil, nil)
	if err != nil || !ok {
		return nil, err
	}
	return func(a entity.Access) entity.Access { return applyAccess(f, a) }, nil
}
