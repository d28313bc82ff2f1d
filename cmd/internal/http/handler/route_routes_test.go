package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/optimistic"
	"trackpass/cmd/internal/service"
	"trackpass/cmd/internal/utils/apierror"
	"trackpass/cmd/internal/utils/validators"

	"github.com/labstack/echo/v4"
)

type stubRoutes struct {
	deleted []int64
	err     error
}

func (s *stubRoutes) List(ctx context.Context, term string) ([]*contract.RouteResponse, error) {
	return []*contract.RouteResponse{{Route: entity.Route{ID: 1, Name: term}}}, s.err
}
func (s *stubRoutes) Refresh(ctx context.Context) error { return s.err }
func (s *stubRoutes) Close()                            {}
func (s *stubRoutes) Create(ctx context.Context, req *contract.CreateRouteRequest) (*entity.Route, error) {
	return nil, s.err
}
func (s *stubRoutes) SetActive(ctx context.Context, id int64, req *contract.SetActiveRequest) error {
	return s.err
}
func (s *stubRoutes) Update(ctx context.Context, id int64, req *contract.UpdateRouteRequest) error {
	return s.err
}
func (s *stubRoutes) Delete(ctx context.Context, id int64, confirmed bool) error {
	s.deleted = append(s.deleted, id)
	return s.err
}
func (s *stubRoutes) Trajectory(ctx context.Context, id int64) ([]entity.Point, error) {
	return nil, s.err
}

type stubRoster struct {
	moved []int64
}

func (s *stubRoster) List(ctx context.Context, routeID int64, term string) ([]*contract.AssignmentResponse, error) {
	return nil, nil
}
func (s *stubRoster) MoveToPoint(ctx context.Context, routeID, collaboratorID, pointID int64) error {
	s.moved = append(s.moved, routeID, collaboratorID, pointID)
	return nil
}
func (s *stubRoster) Remove(ctx context.Context, routeID, collaboratorID int64, confirmed bool) error {
	return nil
}
func (s *stubRoster) ToggleLeader(ctx context.Context, routeID, collaboratorID int64) error {
	return nil
}

func call(h echo.HandlerFunc, method, target string, names, values []string, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	_ = h(c)
	return rec
}

func TestDeleteRouteNeedsConfirmation(t *testing.T) {
	routes := &stubRoutes{}
	h := NewRouteRoute(routes, nil, nil)

	rec := call(h.DeleteRoute, http.MethodDelete, "/api/rotas/1", []string{"id"}, []string{"1"}, "")
	if rec.Code != http.StatusPreconditionRequired || len(routes.deleted) != 0 {
		t.Errorf("unconfirmed delete = %d, deleted %v", rec.Code, routes.deleted)
	}

	rec = call(h.DeleteRoute, http.MethodDelete, "/api/rotas/1?confirm=true", []string{"id"}, []string{"1"}, "")
	if rec.Code != http.StatusOK || len(routes.deleted) != 1 {
		t.Errorf("confirmed delete = %d, deleted %v", rec.Code, routes.deleted)
	}

	rec = call(h.DeleteRoute, http.MethodDelete, "/api/rotas/abc?confirm=true", []string{"id"}, []string{"abc"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id = %d", rec.Code)
	}
}

func TestMoveCollaboratorParams(t *testing.T) {
	roster := &stubRoster{}
	h := NewRouteRoute(nil, nil, roster)
	names := []string{"id", "cid"}

	rec := call(h.MoveCollaborator, http.MethodPut, "/api/rotas/3/colaboradores/42", names, []string{"3", "42"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing idPonto = %d", rec.Code)
	}

	rec = call(h.MoveCollaborator, http.MethodPut, "/api/rotas/3/colaboradores/42?idPonto=7", names, []string{"3", "42"}, "")
	if rec.Code != http.StatusOK || len(roster.moved) != 3 || roster.moved[2] != 7 {
		t.Errorf("move = %d, %v", rec.Code, roster.moved)
	}
}

func TestErrorMapping(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
	}
	validationErr := validators.New().Struct(&form{})

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", validationErr, http.StatusBadRequest},
		{"not manager", service.ErrNotManager, http.StatusForbidden},
		{"discarded", optimistic.ErrScopeClosed, http.StatusConflict},
		{"backend validation", apierror.FromStatus("PATCH /rotas/1", 422, []byte(`{"message":"Capacidade inválida"}`)), 422},
		{"backend down", apierror.NewNetworkError("PATCH /rotas/1", errors.New("refused")), http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRouteRoute(&stubRoutes{err: tt.err}, nil, nil)
			rec := call(h.SetRouteActive, http.MethodPatch, "/api/rotas/1/ativo", []string{"id"}, []string{"1"}, `{"ativo":true}`)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body.String())
			}
		})
	}
}

func TestGetRoutesPassesSearch(t *testing.T) {
	h := NewRouteRoute(&stubRoutes{}, nil, nil)

	rec := call(h.GetRoutes, http.MethodGet, "/api/rotas?q=+norte+", nil, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Routes []contract.RouteResponse `json:"rotas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Routes) != 1 || body.Routes[0].Name != "norte" {
		t.Errorf("routes = %+v", body.Routes)
	}
}
