package service

import (
	"context"
	"errors"
	"testing"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/infrastructure/geocoding"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/utils/apierror"
	"trackpass/cmd/internal/utils/validators"
)

type fakePointClient struct {
	counter
	sent      trackpass.PointInput
	updateErr error
}

func (f *fakePointClient) ListPoints(ctx context.Context) ([]entity.Point, error) {
	f.hit("list")
	return []entity.Point{{ID: 1, Name: "Terminal Central", Address: "Praça da Sé"}}, nil
}

func (f *fakePointClient) CreatePoint(ctx context.Context, in trackpass.PointInput) (entity.Point, error) {
	f.hit("create")
	f.sent = in
	return entity.Point{ID: 2, Name: in.Name, Latitude: in.Latitude, Longitude: in.Longitude}, nil
}

func (f *fakePointClient) UpdatePoint(ctx context.Context, id int64, in trackpass.PointInput) (optimistic.Patch[entity.Point], error) {
	f.hit("update")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return func(p entity.Point) entity.Point {
		p.Address = in.Address + " - Bela Vista"
		return p
	}, nil
}

func (f *fakePointClient) DeletePoint(ctx context.Context, id int64) error {
	f.hit("delete")
	return nil
}

type geocoderFunc func(ctx context.Context, address string) (*geocoding.Location, error)

func (f geocoderFunc) Geocode(ctx context.Context, address string) (*geocoding.Location, error) {
	return f(ctx, address)
}

func pointRequest() *contract.PointRequest {
	return &contract.PointRequest{Name: "Portaria 2", Address: "Av. Paulista, 1000", CityID: 1}
}

func TestCreatePointGeocodes(t *testing.T) {
	client := &fakePointClient{}
	geocoder := geocoderFunc(func(ctx context.Context, address string) (*geocoding.Location, error) {
		return &geocoding.Location{Latitude: -23.56, Longitude: -46.65}, nil
	})
	s := NewPointService(testContext(t), client, geocoder, nil, validators.New())

	if _, err := s.Create(context.Background(), pointRequest()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if client.sent.Latitude != -23.56 || client.sent.Longitude != -46.65 {
		t.Errorf("coordinates not filled: %+v", client.sent)
	}
}

func TestCreatePointGeocodingFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apierror.Kind
	}{
		{"disabled", geocoding.ErrDisabled, apierror.KindPrecondition},
		{"not found", geocoding.ErrNotFound, apierror.KindPrecondition},
		{"unreachable", errors.New("timeout"), apierror.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakePointClient{}
			geocoder := geocoderFunc(func(ctx context.Context, address string) (*geocoding.Location, error) {
				return nil, tt.err
			})
			s := NewPointService(testContext(t), client, geocoder, nil, validators.New())

			if _, err := s.Create(context.Background(), pointRequest()); apierror.KindOf(err) != tt.kind {
				t.Errorf("Create() error = %v, want kind %s", err, tt.kind)
			}
			if client.get("create") != 0 {
				t.Error("point without coordinates reached the backend")
			}
		})
	}
}

func TestCreatePointWithCoordinates(t *testing.T) {
	client := &fakePointClient{}
	s := NewPointService(testContext(t), client, nil, nil, validators.New())

	lat, lng := -22.9, -47.06
	req := pointRequest()
	req.Latitude, req.Longitude = &lat, &lng

	if _, err := s.Create(context.Background(), req); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if client.sent.Latitude != lat {
		t.Errorf("coordinates changed: %+v", client.sent)
	}
}

func TestDeletePoint(t *testing.T) {
	client := &fakePointClient{}
	s := NewPointService(testContext(t), client, nil, nil, validators.New())
	t.Cleanup(s.Close)
	ctx := context.Background()

	if _, err := s.List(ctx, "terminal"); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if err := s.Delete(ctx, 1, false); err == nil || client.get("delete") != 0 {
		t.Error("unconfirmed delete reached the backend")
	}
	if err := s.Delete(ctx, 1, true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if s.Points.Len() != 0 {
		t.Error("deleted point still listed")
	}
}

func TestDeletePointBeforeList(t *testing.T) {
	client := &fakePointClient{}
	s := NewPointService(testContext(t), client, nil, nil, validators.New())
	t.Cleanup(s.Close)

	if err := s.Delete(context.Background(), 1, true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if client.get("delete") != 1 || client.get("list") != 1 {
		t.Errorf("deletes = %d, list reads = %d, want 1 each", client.get("delete"), client.get("list"))
	}

	points, err := s.List(context.Background(), "")
	if err != nil || len(points) != 0 {
		t.Errorf("List() = %+v, %v", points, err)
	}
}

func TestUpdatePoint(t *testing.T) {
	tests := []struct {
		name        string
		updateErr   error
		wantName    string
		wantAddress string
		wantLevel   notify.Level
	}{
		{"accepted", nil, "Portaria 2", "Av. Paulista, 1000 - Bela Vista", notify.LevelSuccess},
		{"refused", errBackend, "Terminal Central", "Praça da Sé", notify.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakePointClient{updateErr: tt.updateErr}
			rec := &recorder{}
			s := NewPointService(testContext(t), client, nil, rec, validators.New())
			t.Cleanup(s.Close)

			lat, lng := -23.56, -46.65
			req := pointRequest()
			req.Latitude, req.Longitude = &lat, &lng

			if err := s.Update(context.Background(), 1, req); !errors.Is(err, tt.updateErr) {
				t.Fatalf("Update() error = %v, want %v", err, tt.updateErr)
			}

			p, ok := s.Points.Find("1")
			if !ok || p.Name != tt.wantName || p.Address != tt.wantAddress {
				t.Errorf("point = %+v", p)
			}
			if n := rec.last(t); n.Level != tt.wantLevel {
				t.Errorf("notification = %+v", n)
			}
		})
	}
}
