package service

import (
	"context"
	"slices"
	"strconv"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/utils"
)

type CollaboratorClient interface {
	ListCollaborators(ctx context.Context) ([]entity.Collaborator, error)
	GetCollaborator(ctx context.Context, id int64) (entity.Collaborator, error)
}

type CollaboratorService struct {
	Client        CollaboratorClient
	Notifier      notify.Notifier
	Collaborators *optimistic.Store[entity.Collaborator]

	view *listView[entity.Collaborator]
}

func NewCollaboratorService(parent context.Context, client CollaboratorClient, notifier notify.Notifier) *CollaboratorService {
	if notifier == nil {
		notifier = notify.Discard
	}

	collaborators := optimistic.NewStore("colaboradores", collaboratorKey)
	return &CollaboratorService{
		Client:        client,
		Notifier:      notifier,
		Collaborators: collaborators,
		view:          newListView(parent, collaborators, client.ListCollaborators, notifier, "Erro ao carregar colaboradores"),
	}
}

func collaboratorKey(c entity.Collaborator) string {
	return strconv.FormatInt(c.ID, 10)
}

// List matches term against name and matricula, ignoring case and accents.
func (s *CollaboratorService) List(ctx context.Context, term string) ([]entity.Collaborator, error) {
	collaborators, err := s.view.items(ctx)
	if err != nil {
		return nil, err
	}

	collaborators = utils.FilterSearch(collaborators, term, func(c entity.Collaborator) []string {
		return []string{c.Name, c.Matricula}
	})
	slices.SortStableFunc(collaborators, func(a, b entity.Collaborator) int {
		return utils.CompareNames(a.Name, b.Name)
	})
	return collaborators, nil
}

func (s *CollaboratorService) Get(ctx context.Context, id int64) (*entity.Collaborator, error) {
	c, err := s.Client.GetCollaborator(ctx, id)
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao carregar colaborador"))
		return nil, err
	}
	return &c, nil
}

func (s *CollaboratorService) Close() {
	s.view.Close()
}
