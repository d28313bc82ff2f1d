package trackpass

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"trackpass/cmd/internal/domain/entity"
)

func (c *Client) ListRouteCollaborators(ctx context.Context, routeID int64) ([]entity.RouteAssignment, error) {
	return getList(ctx, c, idPath("/rotaColaborador/%d/colaboradores", routeID), nil, func(f fields) entity.RouteAssignment {
		return decodeAssignment(routeID, f)
	})
}

// AssignCollaborator places (or moves) a collaborator on one point of a route.
func (c *Client) AssignCollaborator(ctx context.Context, routeID, collaboratorID, pointID int64) error {
	query := url.Values{"idPonto": {strconv.FormatInt(pointID, 10)}}
	_, err := c.do(ctx, http.MethodPut, idPath("/rotaColaborador/%d/%d", routeID, collaboratorID), query, nil)
	return err
}

func (c *Client) RemoveCollaborator(ctx context.Context, routeID, collaboratorID int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/rotaColaborador/%d/%d", routeID, collaboratorID), nil, nil)
	return err
}
