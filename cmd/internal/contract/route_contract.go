package contract

import "trackpass/cmd/internal/domain/entity"

type CreateCityRequest struct {
	Name string `json:"nome" validate:"required,min=2,max=80"`
	UF   string `json:"uf" validate:"required,uf"`
}

type CreateRouteRequest struct {
	Name      string  `json:"nome" validate:"required,min=2,max=80"`
	CityID    int64   `json:"idCidade" validate:"required,min=1"`
	Period    string  `json:"periodo" validate:"required,oneof=MANHA TARDE NOITE MADRUGADA"`
	Capacity  int     `json:"capacidade" validate:"required,min=1,max=200"`
	Departure string  `json:"horarioPartida" validate:"required,datetime=15:04"`
	Arrival   string  `json:"horarioChegada" validate:"required,datetime=15:04"`
	Active    *bool   `json:"ativo"`
	Points    []int64 `json:"pontos" validate:"required,min=1,nodupes,dive,min=1"`
}

type UpdateRouteRequest struct {
	Name      *string `json:"nome" validate:"omitempty,min=2,max=80"`
	CityID    *int64  `json:"idCidade" validate:"omitempty,min=1"`
	Period    *string `json:"periodo" validate:"omitempty,oneof=MANHA TARDE NOITE MADRUGADA"`
	Capacity  *int    `json:"capacidade" validate:"omitempty,min=1,max=200"`
	Departure *string `json:"horarioPartida" validate:"omitempty,datetime=15:04"`
	Arrival   *string `json:"horarioChegada" validate:"omitempty,datetime=15:04"`
}

type SetActiveRequest struct {
	Active *bool `json:"ativo" validate:"required"`
}

type PointRequest struct {
	Name      string   `json:"nome" validate:"required,min=2,max=120"`
	Address   string   `json:"endereco" validate:"required,min=3,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	CityID    int64    `json:"idCidade" validate:"required,min=1"`
}

// RouteResponse flags routes with a change still waiting for the backend,
// so the browser can disable their controls.
type RouteResponse struct {
	entity.Route
	Pending bool `json:"pendente"`
}

type AssignmentResponse struct {
	entity.RouteAssignment
	Pending bool `json:"pendente"`
	// CanLead tells whether the promote button should be enabled.
	CanLead bool `json:"podeLiderar"`
}
