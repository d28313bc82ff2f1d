package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/domain/policy"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/utils"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

type RouteCollaboratorClient interface {
	ListRouteCollaborators(ctx context.Context, routeID int64) ([]entity.RouteAssignment, error)
	AssignCollaborator(ctx context.Context, routeID, collaboratorID, pointID int64) error
	RemoveCollaborator(ctx context.Context, routeID, collaboratorID int64) error
	GetTrajectory(ctx context.Context, routeID int64) ([]entity.Point, error)
	ListLeaders(ctx context.Context, routeID int64) ([]entity.Collaborator, error)
	AssignLeader(ctx context.Context, routeID, collaboratorID int64) error
	RevokeLeader(ctx context.Context, routeID, collaboratorID int64) error
}

// roster is the collaborators screen of one route.
type roster struct {
	routeID int64
	view    *listView[entity.RouteAssignment]

	mu         sync.RWMutex
	trajectory []entity.Point
}

func (r *roster) setTrajectory(points []entity.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trajectory = points
}

func (r *roster) getTrajectory() []entity.Point {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.trajectory)
}

type RouteCollaboratorService struct {
	Client   RouteCollaboratorClient
	Notifier notify.Notifier
	Policy   *policy.RoutePolicy

	parent  context.Context
	mu      sync.Mutex
	rosters map[int64]*roster
}

func NewRouteCollaboratorService(parent context.Context, client RouteCollaboratorClient, notifier notify.Notifier) *RouteCollaboratorService {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &RouteCollaboratorService{
		Client:   client,
		Notifier: notifier,
		Policy:   policy.NewRoutePolicy(),
		parent:   parent,
		rosters:  make(map[int64]*roster),
	}
}

func assignmentKey(a entity.RouteAssignment) string {
	return strconv.FormatInt(a.Collaborator.ID, 10)
}

// Store exposes the local assignments of one route.
func (s *RouteCollaboratorService) Store(routeID int64) *optimistic.Store[entity.RouteAssignment] {
	return s.roster(routeID).view.store
}

// opened returns the roster of the route, loading it when it is not on screen yet.
func (s *RouteCollaboratorService) opened(ctx context.Context, routeID int64) (*roster, error) {
	r := s.roster(routeID)
	if _, err := r.view.items(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RouteCollaboratorService) roster(routeID int64) *roster {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rosters[routeID]; ok {
		return r
	}

	r := &roster{routeID: routeID}
	store := optimistic.NewStore(fmt.Sprintf("rotas/%d/colaboradores", routeID), assignmentKey)
	r.view = newListView(s.parent, store, func(ctx context.Context) ([]entity.RouteAssignment, error) {
		return s.load(ctx, r)
	}, s.Notifier, "Erro ao carregar colaboradores da rota")

	s.rosters[routeID] = r
	return r
}

// load reads assignments, trajectory and leaders of the route concurrently
// and joins them.
func (s *RouteCollaboratorService) load(ctx context.Context, r *roster) ([]entity.RouteAssignment, error) {
	var (
		assignments []entity.RouteAssignment
		trajectory  []entity.Point
		leaders     []entity.Collaborator
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assignments, err = s.Client.ListRouteCollaborators(gctx, r.routeID)
		return err
	})
	g.Go(func() (err error) {
		trajectory, err = s.Client.GetTrajectory(gctx, r.routeID)
		return err
	})
	g.Go(func() (err error) {
		leaders, err = s.Client.ListLeaders(gctx, r.routeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.setTrajectory(trajectory)
	return joinAssignments(assignments, trajectory, leaders), nil
}

func joinAssignments(assignments []entity.RouteAssignment, trajectory []entity.Point, leaders []entity.Collaborator) []entity.RouteAssignment {
	orders := make(map[int64]int, len(trajectory))
	for _, p := range trajectory {
		orders[p.ID] = p.Order
	}

	leading := make(map[int64]bool, len(leaders))
	for _, l := range leaders {
		leading[l.ID] = true
	}

	out := make([]entity.RouteAssignment, len(assignments))
	for i, a := range assignments {
		if order, ok := orders[a.PointID]; ok {
			a.PointOrder = order
		}
		a.Leader = a.Leader || leading[a.Collaborator.ID]
		out[i] = a
	}
	return out
}

// List returns the route's collaborators ordered by boarding point, then name.
func (s *RouteCollaboratorService) List(ctx context.Context, routeID int64, term string) ([]*contract.AssignmentResponse, error) {
	r := s.roster(routeID)
	assignments, err := r.view.items(ctx)
	if err != nil {
		return nil, err
	}

	assignments = utils.FilterSearch(assignments, term, func(a entity.RouteAssignment) []string {
		return []string{a.Collaborator.Name, a.Collaborator.Matricula}
	})
	slices.SortStableFunc(assignments, func(a, b entity.RouteAssignment) int {
		if a.PointOrder != b.PointOrder {
			return a.PointOrder - b.PointOrder
		}
		return utils.CompareNames(a.Collaborator.Name, b.Collaborator.Name)
	})

	resp := make([]*contract.AssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = &contract.AssignmentResponse{
			RouteAssignment: a,
			Pending:         r.view.store.Pending(assignmentKey(a)),
			CanLead:         a.Leader || s.Policy.CanPromoteLeader(a) == nil,
		}
	}
	return resp, nil
}

func (s *RouteCollaboratorService) Refresh(ctx context.Context, routeID int64) error {
	return s.roster(routeID).view.Refresh(ctx)
}

// MoveToPoint changes the point a collaborator boards at. The list is re-read
// once the backend accepts, since a move may change leadership too.
func (s *RouteCollaboratorService) MoveToPoint(ctx context.Context, routeID, collaboratorID, pointID int64) error {
	r, err := s.opened(ctx, routeID)
	if err != nil {
		return err
	}

	point, err := s.Policy.CanAssignPoint(r.getTrajectory(), pointID)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao alterar o ponto do colaborador"))
		return err
	}

	err = r.view.mutate(ctx, optimistic.Mutation[entity.RouteAssignment]{
		Key: strconv.FormatInt(collaboratorID, 10),
		Patch: func(a entity.RouteAssignment) entity.RouteAssignment {
			a.PointID = point.ID
			a.PointOrder = point.Order
			return a
		},
		Commit: func(ctx context.Context) (optimistic.Patch[entity.RouteAssignment], error) {
			return nil, s.Client.AssignCollaborator(ctx, routeID, collaboratorID, pointID)
		},
		Success: "Ponto do colaborador atualizado",
		Failure: "Erro ao alterar o ponto do colaborador",
	})
	if err != nil {
		return err
	}

	if err := r.view.Refresh(ctx); err != nil && !optimistic.IsDiscarded(err) {
		log.Warnf("route %d: failed to reload collaborators after move: %v", routeID, err)
		s.Notifier.Notify(notify.Warning("A lista de colaboradores pode estar desatualizada"))
	}
	return nil
}

func (s *RouteCollaboratorService) Remove(ctx context.Context, routeID, collaboratorID int64, confirmed bool) error {
	if err := s.Policy.CanDelete(confirmed); err != nil {
		return err
	}

	r, err := s.opened(ctx, routeID)
	if err != nil {
		return err
	}

	return r.view.mutate(ctx, optimistic.Mutation[entity.RouteAssignment]{
		Key:    strconv.FormatInt(collaboratorID, 10),
		Remove: true,
		Commit: func(ctx context.Context) (optimistic.Patch[entity.RouteAssignment], error) {
			return nil, s.Client.RemoveCollaborator(ctx, routeID, collaboratorID)
		},
		Success: "Colaborador removido da rota",
		Failure: "Erro ao remover colaborador da rota",
	})
}

// ToggleLeader promotes or demotes a collaborator. Promotion is refused
// locally, without calling the backend, unless they board at the first point.
func (s *RouteCollaboratorService) ToggleLeader(ctx context.Context, routeID, collaboratorID int64) error {
	r, err := s.opened(ctx, routeID)
	if err != nil {
		return err
	}
	key := strconv.FormatInt(collaboratorID, 10)

	current, ok := r.view.store.Find(key)
	if !ok {
		err := apierror.NewPreconditionError("Colaborador %d não está nesta rota", collaboratorID)
		s.Notifier.Notify(notify.Failure(err, "Erro ao alterar liderança"))
		return err
	}

	promote := !current.Leader
	check := s.Policy.CanDemoteLeader
	if promote {
		check = s.Policy.CanPromoteLeader
	}
	if err := check(current); err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao alterar liderança"))
		return err
	}

	success := "Líder removido"
	if promote {
		success = "Líder definido"
	}

	return r.view.mutate(ctx, optimistic.Mutation[entity.RouteAssignment]{
		Key: key,
		Patch: func(a entity.RouteAssignment) entity.RouteAssignment {
			a.Leader = promote
			return a
		},
		Commit: func(ctx context.Context) (optimistic.Patch[entity.RouteAssignment], error) {
			if promote {
				return nil, s.Client.AssignLeader(ctx, routeID, collaboratorID)
			}
			return nil, s.Client.RevokeLeader(ctx, routeID, collaboratorID)
		},
		Success: success,
		Failure: "Erro ao alterar liderança",
	})
}

// Close discards the screen of one route.
func (s *RouteCollaboratorService) Close(routeID int64) {
	s.mu.Lock()
	r, ok := s.rosters[routeID]
	delete(s.rosters, routeID)
	s.mu.Unlock()

	if ok {
		r.view.Close()
	}
}
