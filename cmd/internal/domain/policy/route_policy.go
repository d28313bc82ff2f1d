package policy

import (
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils/apierror"
)

// RoutePolicy holds the client-side rules of the route screens. They spare
// the manager a round trip; the backend remains the authority.
type RoutePolicy struct{}

func NewRoutePolicy() *RoutePolicy {
	return &RoutePolicy{}
}

// CanPromoteLeader allows promotion only for collaborators boarding at the route's first point.
func (p *RoutePolicy) CanPromoteLeader(a entity.RouteAssignment) error {
	if a.PointOrder != entity.LeaderPointOrder {
		return apierror.NewPreconditionError("Apenas colaboradores do primeiro ponto da rota podem ser líderes")
	}
	return nil
}

// CanDemoteLeader always succeeds, wherever the collaborator boards.
func (p *RoutePolicy) CanDemoteLeader(entity.RouteAssignment) error {
	return nil
}

// CanDelete requires an explicit confirmation for destructive actions.
func (p *RoutePolicy) CanDelete(confirmed bool) error {
	if !confirmed {
		return apierror.NewPreconditionError("Confirme a exclusão antes de continuar")
	}
	return nil
}

// CanAssignPoint only accepts points that are part of the route's trajectory.
func (p *RoutePolicy) CanAssignPoint(trajectory []entity.Point, pointID int64) (entity.Point, error) {
	for _, pt := range trajectory {
		if pt.ID == pointID {
			return pt, nil
		}
	}
	return entity.Point{}, apierror.NewPreconditionError("O ponto %d não faz parte do trajeto da rota", pointID)
}
