package service

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/domain/policy"
	"trackpass/cmd/internal/infrastructure/geocoding"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/utils"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type PointClient interface {
	ListPoints(ctx context.Context) ([]entity.Point, error)
	CreatePoint(ctx context.Context, in trackpass.PointInput) (entity.Point, error)
	UpdatePoint(ctx context.Context, id int64, in trackpass.PointInput) (optimistic.Patch[entity.Point], error)
	DeletePoint(ctx context.Context, id int64) error
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocoding.Location, error)
}

type PointService struct {
	Client   PointClient
	Geocoder Geocoder
	Notifier notify.Notifier
	Policy   *policy.RoutePolicy
	Validate *validator.Validate
	Points   *optimistic.Store[entity.Point]

	view *listView[entity.Point]
}

func NewPointService(
	parent context.Context,
	client PointClient,
	geocoder Geocoder,
	notifier notify.Notifier,
	validate *validator.Validate,
) *PointService {
	if notifier == nil {
		notifier = notify.Discard
	}

	points := optimistic.NewStore("pontos", pointKey)
	return &PointService{
		Client:   client,
		Geocoder: geocoder,
		Notifier: notifier,
		Policy:   policy.NewRoutePolicy(),
		Validate: validate,
		Points:   points,
		view:     newListView(parent, points, client.ListPoints, notifier, "Erro ao carregar pontos"),
	}
}

func pointKey(p entity.Point) string {
	return strconv.FormatInt(p.ID, 10)
}

func (s *PointService) List(ctx context.Context, term string) ([]entity.Point, error) {
	points, err := s.view.items(ctx)
	if err != nil {
		return nil, err
	}

	points = utils.FilterSearch(points, term, func(p entity.Point) []string {
		return []string{p.Name, p.Address}
	})
	slices.SortStableFunc(points, func(a, b entity.Point) int {
		return utils.CompareNames(a.Name, b.Name)
	})
	return points, nil
}

func (s *PointService) Refresh(ctx context.Context) error {
	return s.view.Refresh(ctx)
}

func (s *PointService) Close() {
	s.view.Close()
}

func (s *PointService) Create(ctx context.Context, req *contract.PointRequest) (*entity.Point, error) {
	in, err := s.input(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := s.Client.CreatePoint(ctx, in)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao cadastrar ponto"))
		return nil, err
	}

	s.Points.Upsert(created)
	s.Notifier.Notify(notify.Success("Ponto cadastrado com sucesso"))
	return &created, nil
}

func (s *PointService) Update(ctx context.Context, id int64, req *contract.PointRequest) error {
	in, err := s.input(ctx, req)
	if err != nil {
		return err
	}

	return s.view.mutate(ctx, optimistic.Mutation[entity.Point]{
		Key: strconv.FormatInt(id, 10),
		Patch: func(p entity.Point) entity.Point {
			p.Name = in.Name
			p.Address = in.Address
			p.Latitude = in.Latitude
			p.Longitude = in.Longitude
			p.CityID = in.CityID
			return p
		},
		Commit: func(ctx context.Context) (optimistic.Patch[entity.Point], error) {
			return s.Client.UpdatePoint(ctx, id, in)
		},
		Success: "Ponto atualizado com sucesso",
		Failure: "Erro ao atualizar ponto",
	})
}

func (s *PointService) Delete(ctx context.Context, id int64, confirmed bool) error {
	if err := s.Policy.CanDelete(confirmed); err != nil {
		return err
	}

	return s.view.mutate(ctx, optimistic.Mutation[entity.Point]{
		Key:    strconv.FormatInt(id, 10),
		Remove: true,
		Commit: func(ctx context.Context) (optimistic.Patch[entity.Point], error) {
			return nil, s.Client.DeletePoint(ctx, id)
		},
		Success: "Ponto excluído com sucesso",
		Failure: "Erro ao excluir ponto",
	})
}

// input validates the form and fills in missing coordinates from the address.
func (s *PointService) input(ctx context.Context, req *contract.PointRequest) (trackpass.PointInput, error) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return trackpass.PointInput{}, err
	}

	in := trackpass.PointInput{
		Name:    req.Name,
		Address: req.Address,
		CityID:  req.CityID,
	}
	if req.Latitude != nil && req.Longitude != nil {
		in.Latitude = *req.Latitude
		in.Longitude = *req.Longitude
		return in, nil
	}

	if s.Geocoder == nil {
		return in, apierror.NewPreconditionError("Informe a latitude e a longitude do ponto")
	}

	loc, err := s.Geocoder.Geocode(ctx, req.Address)
	switch {
	case errors.Is(err, geocoding.ErrDisabled):
		return in, apierror.NewPreconditionError("Informe a latitude e a longitude do ponto")
	case errors.Is(err, geocoding.ErrNotFound):
		return in, apierror.NewPreconditionError("Endereço não encontrado: %s", req.Address)
	case err != nil:
		log.Warnf("failed to geocode %q: %v", req.Address, err)
		return in, apierror.NewNetworkError("geocode", err)
	}

	in.Latitude = loc.Latitude
	in.Longitude = loc.Longitude
	return in, nil
}
