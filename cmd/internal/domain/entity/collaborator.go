package entity

type Collaborator struct {
	ID        int64  `json:"id"`
	Name      string `json:"nome"`
	Matricula string `json:"matricula"`
	Role      string `json:"cargo"`
	Active    bool   `json:"ativo"`
}

// RouteAssignment is a collaborator boarding a route at one of its points.
type RouteAssignment struct {
	RouteID      int64        `json:"idRota"`
	Collaborator Collaborator `json:"colaborador"`
	PointID      int64        `json:"idPonto"`
	PointOrder   int          `json:"ordemPonto"`
	Leader       bool         `json:"lider"`
}

// LeaderPointOrder is the only trajectory position a route leader may board at.
const LeaderPointOrder = 1
