package service

import "testing"

func TestRouteDraft(t *testing.T) {
	d := NewRouteDraft(4, 2, 4)
	if d.Len() != 2 {
		t.Fatalf("duplicates should be dropped, Len() = %d", d.Len())
	}

	if !d.Toggle(9) || !d.Contains(9) {
		t.Error("toggling a new point should add it")
	}
	if d.Toggle(2) || d.Contains(2) {
		t.Error("toggling an existing point should remove it")
	}

	points := d.Points()
	want := []int64{4, 9}
	if len(points) != len(want) {
		t.Fatalf("Points() = %+v", points)
	}
	for i, p := range points {
		if p.PointID != want[i] || p.Order != i+1 {
			t.Errorf("Points()[%d] = %+v, want point %d order %d", i, p, want[i], i+1)
		}
	}
}
