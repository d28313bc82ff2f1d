package service

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
)

type CityClient interface {
	ListCities(ctx context.Context) ([]entity.City, error)
	CreateCity(ctx context.Context, name, uf string) (entity.City, error)
}

type CityService struct {
	Client   CityClient
	Notifier notify.Notifier
	Validate *validator.Validate
	Cities   *optimistic.Store[entity.City]

	view *listView[entity.City]
}

func NewCityService(parent context.Context, client CityClient, notifier notify.Notifier, validate *validator.Validate) *CityService {
	if notifier == nil {
		notifier = notify.Discard
	}

	cities := optimistic.NewStore("cidades", func(c entity.City) string {
		return strconv.FormatInt(c.ID, 10)
	})
	return &CityService{
		Client:   client,
		Notifier: notifier,
		Validate: validate,
		Cities:   cities,
		view:     newListView(parent, cities, client.ListCities, notifier, "Erro ao carregar cidades"),
	}
}

func (s *CityService) List(ctx context.Context) ([]entity.City, error) {
	cities, err := s.view.items(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(cities, func(a, b entity.City) int {
		return utils.CompareNames(a.Name, b.Name)
	})
	return cities, nil
}

// Create registers a city and appends the backend's copy to the list.
func (s *CityService) Create(ctx context.Context, req *contract.CreateCityRequest) (*entity.City, error) {
	utils.Sanitize(req)
	req.UF = strings.ToUpper(req.UF)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	created, err := s.Client.CreateCity(ctx, req.Name, req.UF)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao cadastrar cidade"))
		return nil, err
	}

	s.Cities.Upsert(created)
	s.Notifier.Notify(notify.Success("Cidade cadastrada com sucesso"))
	return &created, nil
}

func (s *CityService) Close() {
	s.view.Close()
}
