package entity

import "time"

type Direction string

const (
	DirectionOutbound Direction = "IDA"
	DirectionReturn   Direction = "VOLTA"
)

// Trip is one run of a route. Active means "not concluded yet" and is
// unrelated to the route's own active flag.
type Trip struct {
	ID        int64     `json:"id"`
	RouteID   int64     `json:"idRota"`
	DriverID  int64     `json:"idMotorista"`
	VehicleID int64     `json:"idVeiculo"`
	Date      string    `json:"data"`
	Departure string    `json:"horarioPartida"`
	Arrival   string    `json:"horarioChegada"`
	Direction Direction `json:"sentido"`
	Active    bool      `json:"ativo"`
}

type Boarding struct {
	ID               int64     `json:"id"`
	TripID           int64     `json:"idViagem"`
	CollaboratorID   int64     `json:"idColaborador"`
	BoardedAt        time.Time `json:"dataHora"`
	CollaboratorName string    `json:"nomeColaborador,omitempty"`
	CollaboratorRole string    `json:"cargoColaborador,omitempty"`
}

type Vehicle struct {
	ID       int64  `json:"id"`
	Plate    string `json:"placa"`
	Model    string `json:"modelo"`
	Capacity int    `json:"capacidade"`
	Active   bool   `json:"ativo"`
}

type Driver struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	License string `json:"cnh"`
	Phone   string `json:"telefone"`
	Active  bool   `json:"ativo"`
}
