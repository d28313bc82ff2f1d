package entity

import "time"

type PersonType string

const (
	PersonCollaborator PersonType = "COLABORADOR"
	PersonVisitor      PersonType = "VISITANTE"
)

const MaxOccupants = 10

type Occupant struct {
	Name     string `json:"nome"`
	Document string `json:"documento,omitempty"`
}

// Access is a gate log entry. It is open while ExitedAt is nil.
type Access struct {
	ID         int64      `json:"id"`
	PersonType PersonType `json:"tipoPessoa"`
	PersonID   int64      `json:"idPessoa"`
	PersonName string     `json:"nomePessoa,omitempty"`
	GateID     int64      `json:"idPortaria"`
	EnteredAt  time.Time  `json:"dataHoraEntrada"`
	ExitedAt   *time.Time `json:"dataHoraSaida,omitempty"`
	Occupants  []Occupant `json:"ocupantes"`
}

func (a Access) Open() bool {
	return a.ExitedAt == nil
}

func (a Access) Clone() Access {
	if a.ExitedAt != nil {
		exit := *a.ExitedAt
		a.ExitedAt = &exit
	}
	if a.Occupants != nil {
		a.Occupants = append([]Occupant(nil), a.Occupants...)
	}
	return a
}
