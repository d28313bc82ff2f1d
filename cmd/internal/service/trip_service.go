package service

import (
	"context"
	"strconv"
	"sync"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

// rosterFetchLimit bounds concurrent collaborator lookups while enriching a boarding roster.
const rosterFetchLimit = 4

type TripClient interface {
	ListTrips(ctx context.Context, routeID int64) ([]entity.Trip, error)
	CreateTrip(ctx context.Context, in trackpass.TripInput) (entity.Trip, error)
	UpdateTrip(ctx context.Context, id int64, in trackpass.TripInput) (optimistic.Patch[entity.Trip], error)
	ListBoardings(ctx context.Context, tripID int64) ([]entity.Boarding, error)
	GetCollaborator(ctx context.Context, id int64) (entity.Collaborator, error)
}

type TripService struct {
	Client   TripClient
	Notifier notify.Notifier
	Validate *validator.Validate
	Trips    *optimistic.Store[entity.Trip]

	mu      sync.Mutex
	routeID int64
	view    *listView[entity.Trip]
}

func NewTripService(parent context.Context, client TripClient, notifier notify.Notifier, validate *validator.Validate) *TripService {
	if notifier == nil {
		notifier = notify.Discard
	}

	s := &TripService{
		Client:   client,
		Notifier: notifier,
		Validate: validate,
		Trips: optimistic.NewStore("viagens", func(t entity.Trip) string {
			return strconv.FormatInt(t.ID, 10)
		}),
	}
	s.view = newListView(parent, s.Trips, func(ctx context.Context) ([]entity.Trip, error) {
		return client.ListTrips(ctx, s.filter())
	}, notifier, "Erro ao carregar viagens")
	return s
}

func (s *TripService) filter() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.routeID
}

// List returns the trips of one route, or all of them when routeID is zero.
// Switching route reopens the screen.
func (s *TripService) List(ctx context.Context, routeID int64) ([]entity.Trip, error) {
	s.mu.Lock()
	if s.routeID != routeID {
		s.routeID = routeID
		s.mu.Unlock()
		s.view.Close()
	} else {
		s.mu.Unlock()
	}
	return s.view.items(ctx)
}

func (s *TripService) Create(ctx context.Context, req *contract.TripRequest) (*entity.Trip, error) {
	in, err := s.input(req)
	if err != nil {
		return nil, err
	}

	created, err := s.Client.CreateTrip(ctx, in)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao cadastrar viagem"))
		return nil, err
	}

	if filter := s.filter(); filter == 0 || filter == created.RouteID {
		s.Trips.Upsert(created)
	}
	s.Notifier.Notify(notify.Success("Viagem cadastrada com sucesso"))
	return &created, nil
}

func (s *TripService) Update(ctx context.Context, id int64, req *contract.TripRequest) error {
	in, err := s.input(req)
	if err != nil {
		return err
	}

	return s.view.mutate(ctx, optimistic.Mutation[entity.Trip]{
		Key: strconv.FormatInt(id, 10),
		Patch: func(t entity.Trip) entity.Trip {
			t.RouteID = in.RouteID
			t.DriverID = in.DriverID
			t.VehicleID = in.VehicleID
			t.Date = in.Date
			t.Departure = in.Departure
			t.Arrival = in.Arrival
			t.Direction = in.Direction
			t.Active = in.Active
			return t
		},
		Commit: func(ctx context.Context) (optimistic.Patch[entity.Trip], error) {
			return s.Client.UpdateTrip(ctx, id, in)
		},
		Success: "Viagem atualizada com sucesso",
		Failure: "Erro ao atualizar viagem",
	})
}

// Boardings returns the trip's roster. Rows the backend sent without the
// collaborator's name are completed with concurrent lookups; a failed
// lookup leaves the row as it came.
func (s *TripService) Boardings(ctx context.Context, tripID int64) ([]entity.Boarding, error) {
	boardings, err := s.Client.ListBoardings(ctx, tripID)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar embarques"))
		return nil, err
	}

	missing := make(map[int64]struct{})
	for _, b := range boardings {
		if b.CollaboratorName == "" && b.CollaboratorID > 0 {
			missing[b.CollaboratorID] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return boardings, nil
	}

	var mu sync.Mutex
	found := make(map[int64]entity.Collaborator, len(missing))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterFetchLimit)
	for id := range missing {
		g.Go(func() error {
			c, err := s.Client.GetCollaborator(gctx, id)
			if err != nil {
				log.Warnf("trip %d: failed to load collaborator %d: %v", tripID, id, err)
				return nil
			}
			mu.Lock()
			found[id] = c
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for i, b := range boardings {
		if c, ok := found[b.CollaboratorID]; ok {
			boardings[i].CollaboratorName = c.Name
			boardings[i].CollaboratorRole = c.Role
		}
	}
	return boardings, nil
}

func (s *TripService) Close() {
	s.view.Close()
}

func (s *TripService) input(req *contract.TripRequest) (trackpass.TripInput, error) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return trackpass.TripInput{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return trackpass.TripInput{
		RouteID:   req.RouteID,
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
		Date:      req.Date,
		Departure: req.Departure,
		Arrival:   req.Arrival,
		Direction: entity.Direction(req.Direction),
		Active:    active,
	}, nil
}
