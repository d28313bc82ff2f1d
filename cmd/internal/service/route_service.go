package service

import (
	"context"
	"slices"
	"strconv"
	"time"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/domain/policy"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/service/jobs"
	"trackpass/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
)

type RouteClient interface {
	ListRoutes(ctx context.Context) ([]entity.Route, error)
	CreateRoute(ctx context.Context, in trackpass.RouteInput) (entity.Route, error)
	PatchRoute(ctx context.Context, id int64, patch trackpass.RoutePatch) (optimistic.Patch[entity.Route], error)
	DeleteRoute(ctx context.Context, id int64) error
	GetTrajectory(ctx context.Context, routeID int64) ([]entity.Point, error)
}

// RouteService backs the routes management screen. While the screen is open
// its list is re-read every poll interval.
type RouteService struct {
	Client   RouteClient
	Notifier notify.Notifier
	Policy   *policy.RoutePolicy
	Validate *validator.Validate
	Routes   *optimistic.Store[entity.Route]

	view *listView[entity.Route]
}

func NewRouteService(
	parent context.Context,
	client RouteClient,
	notifier notify.Notifier,
	validate *validator.Validate,
	pollInterval time.Duration,
) *RouteService {
	if notifier == nil {
		notifier = notify.Discard
	}

	s := &RouteService{
		Client:   client,
		Notifier: notifier,
		Policy:   policy.NewRoutePolicy(),
		Validate: validate,
		Routes:   optimistic.NewStore("rotas", routeKey),
	}
	s.view = newListView(parent, s.Routes, client.ListRoutes, notifier, "Erro ao carregar rotas")
	s.view.onOpen = func(scope *optimistic.Scope) {
		refresh := func(ctx context.Context) error {
			return s.view.refresh(ctx, scope)
		}
		jobs.NewPoller("routes", pollInterval, refresh).Start(scope.Context())
	}
	return s
}

func routeKey(r entity.Route) string {
	return strconv.FormatInt(r.ID, 10)
}

// List opens the screen if needed and returns its routes sorted by name,
// filtered by a case and accent insensitive search term.
func (s *RouteService) List(ctx context.Context, term string) ([]*contract.RouteResponse, error) {
	routes, err := s.view.items(ctx)
	if err != nil {
		return nil, err
	}

	routes = utils.FilterSearch(routes, term, func(r entity.Route) []string {
		return []string{r.Name, string(r.Period)}
	})
	slices.SortStableFunc(routes, func(a, b entity.Route) int {
		return utils.CompareNames(a.Name, b.Name)
	})

	resp := make([]*contract.RouteResponse, len(routes))
	for i, r := range routes {
		resp[i] = &contract.RouteResponse{Route: r, Pending: s.Routes.Pending(routeKey(r))}
	}
	return resp, nil
}

func (s *RouteService) Refresh(ctx context.Context) error {
	return s.view.Refresh(ctx)
}

// Close stops polling and discards whatever is still in flight for the screen.
func (s *RouteService) Close() {
	s.view.Close()
}

func (s *RouteService) IsOpen() bool {
	return s.view.IsOpen()
}

func (s *RouteService) Create(ctx context.Context, req *contract.CreateRouteRequest) (*entity.Route, error) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	draft := NewRouteDraft(req.Points...)
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := s.Client.CreateRoute(ctx, trackpass.RouteInput{
		Name:      req.Name,
		CityID:    req.CityID,
		Period:    entity.Period(req.Period),
		Capacity:  req.Capacity,
		Departure: req.Departure,
		Arrival:   req.Arrival,
		Active:    active,
		Points:    draft.Points(),
	})
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao cadastrar rota"))
		return nil, err
	}

	s.Routes.Upsert(created)
	s.Notifier.Notify(notify.Success("Rota cadastrada com sucesso"))
	return &created, nil
}

// SetActive flips the route's active flag locally, then on the backend.
func (s *RouteService) SetActive(ctx context.Context, id int64, req *contract.SetActiveRequest) error {
	if err := s.Validate.Struct(req); err != nil {
		return err
	}
	active := *req.Active

	return s.view.mutate(ctx, optimistic.Mutation[entity.Route]{
		Key: strconv.FormatInt(id, 10),
		Patch: func(r entity.Route) entity.Route {
			r.Active = active
			return r
		},
		Commit: func(ctx context.Context) (optimistic.Patch[entity.Route], error) {
			return s.Client.PatchRoute(ctx, id, trackpass.RoutePatch{Active: &active})
		},
		Success: activeMessage(active),
		Failure: "Erro ao alterar o status da rota",
	})
}

func (s *RouteService) Update(ctx context.Context, id int64, req *contract.UpdateRouteRequest) error {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return err
	}

	patch := trackpass.RoutePatch{
		Name:      req.Name,
		CityID:    req.CityID,
		Period:    req.Period,
		Capacity:  req.Capacity,
		Departure: req.Departure,
		Arrival:   req.Arrival,
	}

	return s.view.mutate(ctx, optimistic.Mutation[entity.Route]{
		Key: strconv.FormatInt(id, 10),
		Patch: func(r entity.Route) entity.Route {
			return applyRoutePatch(r, patch)
		},
		Commit: func(ctx context.Context) (optimistic.Patch[entity.Route], error) {
			return s.Client.PatchRoute(ctx, id, patch)
		},
		Success: "Rota atualizada com sucesso",
		Failure: "Erro ao atualizar rota",
	})
}

// Delete removes the route. Nothing is sent unless the manager confirmed.
func (s *RouteService) Delete(ctx context.Context, id int64, confirmed bool) error {
	if err := s.Policy.CanDelete(confirmed); err != nil {
		return err
	}

	return s.view.mutate(ctx, optimistic.Mutation[entity.Route]{
		Key:    strconv.FormatInt(id, 10),
		Remove: true,
		Commit: func(ctx context.Context) (optimistic.Patch[entity.Route], error) {
			return nil, s.Client.DeleteRoute(ctx, id)
		},
		Success: "Rota excluída com sucesso",
		Failure: "Erro ao excluir rota",
	})
}

func (s *RouteService) Trajectory(ctx context.Context, id int64) ([]entity.Point, error) {
	points, err := s.Client.GetTrajectory(ctx, id)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar o trajeto"))
		return nil, err
	}
	return points, nil
}

func applyRoutePatch(r entity.Route, p trackpass.RoutePatch) entity.Route {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.CityID != nil {
		r.CityID = *p.CityID
	}
	if p.Period != nil {
		r.Period = entity.Period(*p.Period)
	}
	if p.Capacity != nil {
		r.Capacity = *p.Capacity
	}
	if p.Departure != nil {
		r.Departure = *p.Departure
	}
	if p.Arrival != nil {
		r.Arrival = *p.Arrival
	}
	if p.Active != nil {
		r.Active = *p.Active
	}
	return r
}

func activeMessage(active bool) string {
	if active {
		return "Rota ativada com sucesso"
	}
	return "Rota desativada com sucesso"
}
