package handler

import (
	"context"
	"net/http"
	"strings"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CollaboratorService interface {
	List(ctx context.Context, term string) ([]entity.Collaborator, error)
	Get(ctx context.Context, id int64) (*entity.Collaborator, error)
}

type VisitorService interface {
	List(ctx context.Context, term string) ([]entity.Visitor, error)
	Create(ctx context.Context, req *contract.CreateVisitorRequest) (*entity.Visitor, error)
}

type AccessService interface {
	Open(ctx context.Context) ([]entity.Access, error)
	History(ctx context.Context, from, to string) ([]entity.Access, error)
	RegisterEntry(ctx context.Context, req *contract.EntryRequest) (*entity.Access, error)
	RegisterExit(ctx context.Context, id int64) error
}

type DefaultPeopleRoute struct {
	CollaboratorService CollaboratorService
	VisitorService      VisitorService
	AccessService       AccessService
}

func NewPeopleRoute(collaborators CollaboratorService, visitors VisitorService, accesses AccessService) *DefaultPeopleRoute {
	return &DefaultPeopleRoute{
		CollaboratorService: collaborators,
		VisitorService:      visitors,
		AccessService:       accesses,
	}
}

func (p *DefaultPeopleRoute) GetCollaborators(c echo.Context) error {
	collaborators, err := p.CollaboratorService.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"colaboradores": collaborators}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPeopleRoute) GetCollaborator(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	collaborator, err := p.CollaboratorService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, collaborator)
}

func (p *DefaultPeopleRoute) GetVisitors(c echo.Context) error {
	visitors, err := p.VisitorService.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"visitantes": visitors}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPeopleRoute) CreateVisitor(c echo.Context) error {
	var req contract.CreateVisitorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	visitor, err := p.VisitorService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, visitor)
}

func (p *DefaultPeopleRoute) GetOpenAccesses(c echo.Context) error {
	accesses, err := p.AccessService.Open(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"acessos": accesses}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPeopleRoute) GetAccessHistory(c echo.Context) error {
	from := strings.TrimSpace(c.QueryParam("de"))
	if from == "" {
		return respondAPIError(c, apierror.NewMissingParamError("de"))
	}

	to := strings.TrimSpace(c.QueryParam("ate"))
	if to == "" {
		return respondAPIError(c, apierror.NewMissingParamError("ate"))
	}

	history, err := p.AccessService.History(c.Request().Context(), from, to)
	if err != nil {
		if apierror.KindOf(err) == apierror.KindPrecondition {
			return respondAPIError(c, apierror.InvalidDateRangeError)
		}
		return respondError(c, err)
	}

	resp := echo.Map{"acessos": history}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPeopleRoute) RegisterEntry(c echo.Context) error {
	var req contract.EntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	access, err := p.AccessService.RegisterEntry(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, access)
}

func (p *DefaultPeopleRoute) RegisterExit(c echo.Context) error {
	id, apierr := utils.ParseIDParam(c, "id")
	if apierr != nil {
		return respondAPIError(c, apierr)
	}

	if err := p.AccessService.RegisterExit(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
