package service

import (
	"context"
	"slices"
	"strings"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/utils"
)

type FleetClient interface {
	ListVehicles(ctx context.Context) ([]entity.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (entity.Vehicle, error)
	ListDrivers(ctx context.Context) ([]entity.Driver, error)
	GetDriver(ctx context.Context, id int64) (entity.Driver, error)
}

// FleetService is read-only: vehicles and drivers are managed elsewhere.
type FleetService struct {
	Client   FleetClient
	Notifier notify.Notifier
}

func NewFleetService(client FleetClient, notifier notify.Notifier) *FleetService {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &FleetService{Client: client, Notifier: notifier}
}

func (s *FleetService) Vehicles(ctx context.Context) ([]entity.Vehicle, error) {
	vehicles, err := s.Client.ListVehicles(ctx)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar veículos"))
		return nil, err
	}

	slices.SortStableFunc(vehicles, func(a, b entity.Vehicle) int {
		return strings.Compare(a.Plate, b.Plate)
	})
	return vehicles, nil
}

func (s *FleetService) Vehicle(ctx context.Context, id int64) (*entity.Vehicle, error) {
	v, err := s.Client.GetVehicle(ctx, id)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar veículo"))
		return nil, err
	}
	return &v, nil
}

func (s *FleetService) Drivers(ctx context.Context) ([]entity.Driver, error) {
	drivers, err := s.Client.ListDrivers(ctx)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar motoristas"))
		return nil, err
	}

	slices.SortStableFunc(drivers, func(a, b entity.Driver) int {
		return utils.CompareNames(a.Name, b.Name)
	})
	for i := range drivers {
		drivers[i].Phone = utils.MaskPhoneNumber(drivers[i].Phone)
	}
	return drivers, nil
}

func (s *FleetService) Driver(ctx context.Context, id int64) (*entity.Driver, error) {
	d, err := s.Client.GetDriver(ctx, id)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar motorista"))
		return nil, err
	}
	d.Phone = utils.MaskPhoneNumber(d.Phone)
	return &d, nil
}
