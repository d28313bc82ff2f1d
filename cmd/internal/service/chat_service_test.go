package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils/apierror"
)

type chatFunc func(ctx context.Context, message string) (string, error)

func (f chatFunc) Chat(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

func TestAsk(t *testing.T) {
	var asked string
	s := NewChatService(chatFunc(func(ctx context.Context, message string) (string, error) {
		asked = message
		return "Há 3 rotas ativas", nil
	}), nil)

	answer, err := s.Ask(context.Background(), "  quantas rotas?  ")
	if err != nil || answer != "Há 3 rotas ativas" || asked != "quantas rotas?" {
		t.Errorf("Ask() = %q, %v (asked %q)", answer, err, asked)
	}

	for _, msg := range []string{"   ", strings.Repeat("á", MaxChatMessageLength+1)} {
		if _, err := s.Ask(context.Background(), msg); apierror.KindOf(err) != apierror.KindPrecondition {
			t.Errorf("Ask(%d runes) error = %v", len([]rune(msg)), err)
		}
	}
}

type fakeImpedimentClient struct{}

func (fakeImpedimentClient) ListImpediments(ctx context.Context) ([]entity.Impediment, error) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return []entity.Impediment{
		{ID: 1, Severity: entity.SeverityHigh, Active: true, OccurredAt: base},
		{ID: 2, Severity: entity.SeverityLow, Active: true, OccurredAt: base.Add(time.Hour)},
		{ID: 3, Severity: entity.SeverityHigh, Active: false, OccurredAt: base.Add(2 * time.Hour)},
		{ID: 4, Severity: entity.SeverityHigh, Active: true, OccurredAt: base.Add(3 * time.Hour)},
	}, nil
}

func (fakeImpedimentClient) GetImpediment(ctx context.Context, id int64) (entity.Impediment, error) {
	return entity.Impediment{ID: id}, nil
}

func TestImpedimentFilter(t *testing.T) {
	s := NewImpedimentService(fakeImpedimentClient{}, nil)

	all, _ := s.List(context.Background(), ImpedimentFilter{})
	if len(all) != 4 || all[0].ID != 4 || all[3].ID != 1 {
		t.Errorf("List() should be newest first: %+v", all)
	}

	high, _ := s.List(context.Background(), ImpedimentFilter{Severity: "alta", ActiveOnly: true})
	if len(high) != 2 || high[0].ID != 4 || high[1].ID != 1 {
		t.Errorf("filtered = %+v", high)
	}
}

type fakeFleetClient struct{}

func (fakeFleetClient) ListVehicles(ctx context.Context) ([]entity.Vehicle, error) {
	return []entity.Vehicle{{ID: 1, Plate: "XYZ9A87"}, {ID: 2, Plate: "ABC1D23"}}, nil
}

func (fakeFleetClient) GetVehicle(ctx context.Context, id int64) (entity.Vehicle, error) {
	return entity.Vehicle{ID: id}, nil
}

func (fakeFleetClient) ListDrivers(ctx context.Context) ([]entity.Driver, error) {
	return []entity.Driver{
		{ID: 1, Name: "Otávio", Phone: "11987654321"},
		{ID: 2, Name: "Álvaro", Phone: "11912345678"},
	}, nil
}

func (fakeFleetClient) GetDriver(ctx context.Context, id int64) (entity.Driver, error) {
	return entity.Driver{ID: id, Phone: "11987654321"}, nil
}

func TestFleetOrderingAndMasks(t *testing.T) {
	s := NewFleetService(fakeFleetClient{}, nil)
	ctx := context.Background()

	vehicles, _ := s.Vehicles(ctx)
	if len(vehicles) != 2 || vehicles[0].Plate != "ABC1D23" {
		t.Errorf("Vehicles() = %+v", vehicles)
	}

	drivers, _ := s.Drivers(ctx)
	if len(drivers) != 2 || drivers[0].Name != "Álvaro" || drivers[1].Phone != "(11) 98765-4321" {
		t.Errorf("Drivers() = %+v", drivers)
	}

	if d, _ := s.Driver(ctx, 1); d.Phone != "(11) 98765-4321" {
		t.Errorf("Driver() phone = %q", d.Phone)
	}
}
