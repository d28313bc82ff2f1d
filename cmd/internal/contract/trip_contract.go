package contract

type TripRequest struct {
	RouteID   int64  `json:"idRota" validate:"required,min=1"`
	DriverID  int64  `json:"idMotorista" validate:"required,min=1"`
	VehicleID int64  `json:"idVeiculo" validate:"required,min=1"`
	Date      string `json:"data" validate:"required,datetime=2006-01-02"`
	Departure string `json:"horarioPartida" validate:"required,datetime=15:04"`
	Arrival   string `json:"horarioChegada" validate:"required,datetime=15:04"`
	Direction string `json:"sentido" validate:"required,oneof=IDA VOLTA"`
	Active    *bool  `json:"ativo"`
}
