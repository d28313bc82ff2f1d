package policy

import (
	"errors"
	"testing"
	"time"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils/apierror"
)

func TestLeadership(t *testing.T) {
	p := NewRoutePolicy()

	first := entity.RouteAssignment{PointOrder: 1}
	second := entity.RouteAssignment{PointOrder: 2, Leader: true}

	if err := p.CanPromoteLeader(first); err != nil {
		t.Errorf("first point promotion refused: %v", err)
	}
	if err := p.CanPromoteLeader(second); !errors.Is(err, apierror.ErrPrecondition) {
		t.Errorf("second point promotion gave %v, want a precondition error", err)
	}
	if err := p.CanDemoteLeader(second); err != nil {
		t.Errorf("demotion should always be allowed: %v", err)
	}
}

func TestCanAssignPoint(t *testing.T) {
	p := NewRoutePolicy()
	trajectory := []entity.Point{{ID: 5, Order: 1}, {ID: 7, Order: 2}}

	pt, err := p.CanAssignPoint(trajectory, 7)
	if err != nil || pt.Order != 2 {
		t.Errorf("CanAssignPoint(7) = %+v, %v", pt, err)
	}
	if _, err := p.CanAssignPoint(trajectory, 9); apierror.KindOf(err) != apierror.KindPrecondition {
		t.Errorf("CanAssignPoint(9) error = %v", err)
	}
	if err := p.CanDelete(false); err == nil {
		t.Error("unconfirmed delete must be refused")
	}
}

func TestAccessPolicy(t *testing.T) {
	p := NewAccessPolicy()

	tests := []struct {
		from, to string
		ok       bool
	}{
		{"2026-01-01", "2026-01-31", true},
		{"2026-01-31", "2026-01-31", true},
		{"2026-02-01", "2026-01-31", false},
		{"01/01/2026", "2026-01-31", false},
		{"2026-01-01", "", false},
	}
	for _, tt := range tests {
		if err := p.CheckRange(tt.from, tt.to); (err == nil) != tt.ok {
			t.Errorf("CheckRange(%q, %q) error = %v", tt.from, tt.to, err)
		}
	}

	exit := time.Now()
	if err := p.CanRegisterExit(entity.Access{ExitedAt: &exit}); err == nil {
		t.Error("closed access must refuse a second exit")
	}
	if err := p.CanRegisterExit(entity.Access{}); err != nil {
		t.Errorf("open access refused: %v", err)
	}
	if err := p.CanRegisterEntry(make([]entity.Occupant, entity.MaxOccupants+1)); err == nil {
		t.Error("too many occupants accepted")
	}
}
