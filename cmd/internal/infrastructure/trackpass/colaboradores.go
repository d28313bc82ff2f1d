package trackpass

import (
	"context"
	"trackpass/cmd/internal/domain/entity"
)

func (c *Client) ListCollaborators(ctx context.Context) ([]entity.Collaborator, error) {
	return getList(ctx, c, "/colaboradores", nil, decodeCollaborator)
}

func (c *Client) GetCollaborator(ctx context.Context, id int64) (entity.Collaborator, error) {
	return getOne(ctx, c, idPath("/colaboradores/%d", id), decodeCollaborator)
}
