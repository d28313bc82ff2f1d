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
	"trackpass/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
)

type AccessClient interface {
	ListAccesses(ctx context.Context) ([]entity.Access, error)
	AccessHistory(ctx context.Context, from, to string) ([]entity.Access, error)
	RegisterEntry(ctx context.Context, in trackpass.EntryInput) (entity.Access, error)
	RegisterExit(ctx context.Context, id int64) (optimistic.Patch[entity.Access], error)
}

// AccessService backs the gate screen.
type AccessService struct {
	Client   AccessClient
	Notifier notify.Notifier
	Policy   *policy.AccessPolicy
	Validate *validator.Validate
	Accesses *optimistic.Store[entity.Access]

	view *listView[entity.Access]
	now  func() time.Time
}

func NewAccessService(parent context.Context, client AccessClient, notifier notify.Notifier, validate *validator.Validate) *AccessService {
	if notifier == nil {
		notifier = notify.Discard
	}

	accesses := optimistic.NewStore("acessos", func(a entity.Access) string {
		return strconv.FormatInt(a.ID, 10)
	})
	return &AccessService{
		Client:   client,
		Notifier: notifier,
		Policy:   policy.NewAccessPolicy(),
		Validate: validate,
		Accesses: accesses,
		view:     newListView(parent, accesses, client.ListAccesses, notifier, "Erro ao carregar acessos"),
		now:      time.Now,
	}
}

// Open returns the records still waiting for an exit, newest entry first.
func (s *AccessService) Open(ctx context.Context) ([]entity.Access, error) {
	accesses, err := s.view.items(ctx)
	if err != nil {
		return nil, err
	}

	open := slices.DeleteFunc(accesses, func(a entity.Access) bool {
		return !a.Open()
	})
	slices.SortStableFunc(open, func(a, b entity.Access) int {
		return b.EnteredAt.Compare(a.EnteredAt)
	})
	return open, nil
}

// History lists records between two YYYY-MM-DD dates, both inclusive.
func (s *AccessService) History(ctx context.Context, from, to string) ([]entity.Access, error) {
	if err := s.Policy.CheckRange(from, to); err != nil {
		return nil, err
	}

	history, err := s.Client.AccessHistory(ctx, from, to)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar histórico de acessos"))
		return nil, err
	}
	return history, nil
}

func (s *AccessService) RegisterEntry(ctx context.Context, req *contract.EntryRequest) (*entity.Access, error) {
	utils.Sanitize(req)

	occupants := make([]entity.Occupant, len(req.Occupants))
	for i, o := range req.Occupants {
		occupants[i] = entity.Occupant{Name: o.Name, Document: o.Document}
	}
	if err := s.Policy.CanRegisterEntry(occupants); err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao registrar entrada"))
		return nil, err
	}
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	access, err := s.Client.RegisterEntry(ctx, trackpass.EntryInput{
		Matricula: req.Matricula,
		GateID:    req.GateID,
		Occupants: occupants,
	})
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao registrar entrada"))
		return nil, err
	}

	s.Accesses.Upsert(access)
	s.Notifier.Notify(notify.Success("Entrada registrada com sucesso"))
	return &access, nil
}

// RegisterExit closes an open record. Records already closed are refused
// without calling the backend.
func (s *AccessService) RegisterExit(ctx context.Context, id int64) error {
	if _, err := s.view.items(ctx); err != nil {
		return err
	}

	key := strconv.FormatInt(id, 10)
	if current, ok := s.Accesses.Find(key); ok {
		if err := s.Policy.CanRegisterExit(current); err != nil {
			s.Notifier.Notify(notify.Failure(err, "Erro ao registrar saída"))
			return err
		}
	}

	return s.view.mutate(ctx, optimistic.Mutation[entity.Access]{
		Key: key,
		Patch: func(a entity.Access) entity.Access {
			exit := s.now()
			a.ExitedAt = &exit
			return a
		},
		Commit: func(ctx context.Context) (optimistic.Patch[entity.Access], error) {
			return s.Client.RegisterExit(ctx, id)
		},
		Success: "Saída registrada com sucesso",
		Failure: "Erro ao registrar saída",
	})
}

func (s *AccessService) Close() {
	s.view.Close()
}
