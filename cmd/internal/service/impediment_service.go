package service

import (
	"context"
	"slices"
	"strings"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/notify"
)

type ImpedimentClient interface {
	ListImpediments(ctx context.Context) ([]entity.Impediment, error)
	GetImpediment(ctx context.Context, id int64) (entity.Impediment, error)
}

type ImpedimentFilter struct {
	// Severity keeps only one severity when set.
	Severity entity.Severity
	// ActiveOnly hides resolved impediments.
	ActiveOnly bool
}

type ImpedimentService struct {
	Client   ImpedimentClient
	Notifier notify.Notifier
}

func NewImpedimentService(client ImpedimentClient, notifier notify.Notifier) *ImpedimentService {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &ImpedimentService{Client: client, Notifier: notifier}
}

// List returns impediments newest first.
func (s *ImpedimentService) List(ctx context.Context, filter ImpedimentFilter) ([]entity.Impediment, error) {
	all, err := s.Client.ListImpediments(ctx)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar impedimentos"))
		return nil, err
	}

	severity := entity.Severity(strings.ToUpper(string(filter.Severity)))
	out := make([]entity.Impediment, 0, len(all))
	for _, imp := range all {
		if severity != "" && imp.Severity != severity {
			continue
		}
		if filter.ActiveOnly && !imp.Active {
			continue
		}
		out = append(out, imp)
	}

	slices.SortStableFunc(out, func(a, b entity.Impediment) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})
	return out, nil
}

func (s *ImpedimentService) Get(ctx context.Context, id int64) (*entity.Impediment, error) {
	imp, err := s.Client.GetImpediment(ctx, id)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar impedimento"))
		return nil, err
	}
	return &imp, nil
}
