package service

import (
	"context"
	"slices"
	"strconv"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/utils"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

type VisitorClient interface {
	ListVisitors(ctx context.Context) ([]entity.Visitor, error)
	CreateVisitor(ctx context.Context, in trackpass.VisitorInput) (entity.Visitor, error)
}

type VisitorService struct {
	Client   VisitorClient
	Notifier notify.Notifier
	Validate *validator.Validate
	Visitors *optimistic.Store[entity.Visitor]

	view *listView[entity.Visitor]
}

func NewVisitorService(parent context.Context, client VisitorClient, notifier notify.Notifier, validate *validator.Validate) *VisitorService {
	if notifier == nil {
		notifier = notify.Discard
	}

	visitors := optimistic.NewStore("visitantes", func(v entity.Visitor) string {
		return strconv.FormatInt(v.ID, 10)
	})
	return &VisitorService{
		Client:   client,
		Notifier: notifier,
		Validate: validate,
		Visitors: visitors,
		view:     newListView(parent, visitors, client.ListVisitors, notifier, "Erro ao carregar visitantes"),
	}
}

// List returns visitors with document and phone masked for display.
func (s *VisitorService) List(ctx context.Context, term string) ([]entity.Visitor, error) {
	visitors, err := s.view.items(ctx)
	if err != nil {
		return nil, err
	}

	visitors = utils.FilterSearch(visitors, term, func(v entity.Visitor) []string {
		return []string{v.Name, v.Document}
	})
	slices.SortStableFunc(visitors, func(a, b entity.Visitor) int {
		return utils.CompareNames(a.Name, b.Name)
	})

	for i := range visitors {
		visitors[i] = masked(visitors[i])
	}
	return visitors, nil
}

// Create accepts masked or raw form values; the backend always receives digits only.
func (s *VisitorService) Create(ctx context.Context, req *contract.CreateVisitorRequest) (*entity.Visitor, error) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	docType := entity.DocumentType(req.DocumentType)
	if len(req.Document) > utils.MaxMaskedLength(docType) {
		err := apierror.NewPreconditionError("Documento excede %d caracteres", utils.MaxMaskedLength(docType))
		s.Notifier.Notify(notify.Failure(err, "Documento inválido"))
		return nil, err
	}

	document := utils.UnmaskDocument(docType, req.Document)
	if err := checkDocument(docType, document); err != nil {
		s.Notifier.Notify(notify.Failure(err, "Documento inválido"))
		return nil, err
	}

	phone := utils.UnmaskPhone(req.Phone)
	if len(phone) < 10 || len(phone) > 11 {
		err := apierror.NewPreconditionError("Telefone deve ter 10 ou 11 dígitos")
		s.Notifier.Notify(notify.Failure(err, "Telefone inválido"))
		return nil, err
	}

	created, err := s.Client.CreateVisitor(ctx, trackpass.VisitorInput{
		Name:         req.Name,
		DocumentType: docType,
		Document:     document,
		Phone:        phone,
		BirthDate:    req.BirthDate,
		HostID:       req.HostID,
		Reason:       req.Reason,
	})
	if err != nil {
		s.Notifier.Notify(notify.Failure(err, "Erro ao cadastrar visitante"))
		return nil, err
	}

	s.Visitors.Upsert(created)
	s.Notifier.Notify(notify.Success("Visitante cadastrado com sucesso"))

	created = masked(created)
	return &created, nil
}

func (s *VisitorService) Close() {
	s.view.Close()
}

func checkDocument(docType entity.DocumentType, document string) error {
	switch docType {
	case entity.DocumentCPF:
		if !utils.IsCPFValid(document) {
			return apierror.NewPreconditionError("CPF inválido")
		}
	case entity.DocumentRG:
		if len(document) != utils.RGLength {
			return apierror.NewPreconditionError("RG deve ter %d dígitos", utils.RGLength)
		}
	case entity.DocumentPassport:
		if document == "" || len(document) > utils.PassportLength {
			return apierror.NewPreconditionError("Passaporte deve ter até %d caracteres", utils.PassportLength)
		}
	}
	return nil
}

func masked(v entity.Visitor) entity.Visitor {
	v.Document = utils.MaskDocument(v.DocumentType, v.Document)
	v.Phone = utils.MaskPhoneNumber(v.Phone)
	return v
}
