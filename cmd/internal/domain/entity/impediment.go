package entity

import "time"

type Severity string

const (
	SeverityHigh   Severity = "ALTA"
	SeverityMedium Severity = "MEDIA"
	SeverityLow    Severity = "BAIXA"
)

type Impediment struct {
	ID          int64          `json:"id"`
	Reason      string         `json:"motivo"`
	Severity    Severity       `json:"gravidade"`
	Description string         `json:"descricao"`
	RouteID     int64          `json:"idRota,omitempty"`
	DriverID    int64          `json:"idMotorista,omitempty"`
	OccurredAt  time.Time      `json:"dataHora"`
	Active      bool           `json:"ativo"`
	Affected    []Collaborator `json:"colaboradores"`
}
