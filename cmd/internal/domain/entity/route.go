package entity

type Period string

const (
	PeriodMorning   Period = "MANHA"
	PeriodAfternoon Period = "TARDE"
	PeriodNight     Period = "NOITE"
	PeriodDawn      Period = "MADRUGADA"
)

// Point is a stop. Order only means something inside one route's trajectory
// and is zero when the point was not read through a route.
type Point struct {
	ID        int64   `json:"id"`
	Name      string  `json:"nome"`
	Address   string  `json:"endereco"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CityID    int64   `json:"idCidade"`
	Order     int     `json:"ordem,omitempty"`
}

type RoutePoint struct {
	PointID int64 `json:"idPonto"`
	Order   int   `json:"ordem"`
}

type Route struct {
	ID        int64        `json:"id"`
	Name      string       `json:"nome"`
	CityID    int64        `json:"idCidade"`
	Period    Period       `json:"periodo"`
	Capacity  int          `json:"capacidade"`
	Departure string       `json:"horarioPartida"`
	Arrival   string       `json:"horarioChegada"`
	Active    bool         `json:"ativo"`
	Points    []RoutePoint `json:"pontos"`
}

func (r Route) Clone() Route {
	if r.Points != nil {
		r.Points = append([]RoutePoint(nil), r.Points...)
	}
	return r
}
