package policy

import (
	"time"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils/apierror"
)

const DateLayout = "2006-01-02"

type AccessPolicy struct{}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanRegisterExit only allows exits for records that are still open.
func (p *AccessPolicy) CanRegisterExit(a entity.Access) error {
	if !a.Open() {
		return apierror.NewPreconditionError("A saída deste acesso já foi registrada")
	}
	return nil
}

func (p *AccessPolicy) CanRegisterEntry(occupants []entity.Occupant) error {
	if len(occupants) > entity.MaxOccupants {
		return apierror.NewPreconditionError("Máximo de %d ocupantes por acesso", entity.MaxOccupants)
	}
	return nil
}

// CheckRange validates a YYYY-MM-DD history window.
func (p *AccessPolicy) CheckRange(from, to string) error {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return apierror.NewPreconditionError("Data inicial inválida: %s", from)
	}

	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return apierror.NewPreconditionError("Data final inválida: %s", to)
	}

	if end.Before(start) {
		return apierror.NewPreconditionError("A data inicial deve ser anterior à final")
	}
	return nil
}
