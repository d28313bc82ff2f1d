package service

import "trackpass/cmd/internal/domain/entity"

// RouteDraft is the point list of a route being composed. Points are toggled
// in and out instead of appended, so a point can never appear twice.
type RouteDraft struct {
	points []int64
}

func NewRouteDraft(pointIDs ...int64) *RouteDraft {
	d := &RouteDraft{}
	for _, id := range pointIDs {
		if !d.Contains(id) {
			d.points = append(d.points, id)
		}
	}
	return d
}

// Toggle adds the point at the end of the trajectory, or removes it when it is already there.
// It reports whether the point is part of the draft afterwards.
func (d *RouteDraft) Toggle(pointID int64) bool {
	for i, id := range d.points {
		if id == pointID {
			d.points = append(d.points[:i:i], d.points[i+1:]...)
			return false
		}
	}
	d.points = append(d.points, pointID)
	return true
}

func (d *RouteDraft) Contains(pointID int64) bool {
	for _, id := range d.points {
		if id == pointID {
			return true
		}
	}
	return false
}

func (d *RouteDraft) Len() int {
	return len(d.points)
}

// Points numbers the trajectory from 1, in toggle order.
func (d *RouteDraft) Points() []entity.RoutePoint {
	out := make([]entity.RoutePoint, len(d.points))
	for i, id := range d.points {
		out[i] = entity.RoutePoint{PointID: id, Order: i + 1}
	}
	return out
}
