package entities

import (
	"time"

	"github.com/cockroachdb/errors"
)

// WorkCenterID represents a unique work center identifier
type WorkCenterID string

// WorkCenter represents a machine or station with a bounded daily
// working-hours capacity. The scheduler treats work centers as read-only
// reference data owned by the surrounding persistence layer.
type WorkCenter struct {
	ID                  WorkCenterID
	Name                string
	CapacityHoursPerDay int
	IsActive            bool
	Skills              map[string]bool
}

// NewWorkCenter creates a work center, validating its daily capacity
func NewWorkCenter(id WorkCenterID, name string, capacityHoursPerDay int, isActive bool, skills []string) (*WorkCenter, error) {
	if id == "" {
		return nil, errors.New("work center ID must not be empty")
	}
	if capacityHoursPerDay <= 0 || capacityHoursPerDay > 24 {
		return nil, errors.Newf("work center %s: capacity hours per day must be in 1..24, got %d", id, capacityHoursPerDay)
	}
	skillSet := make(map[string]bool, len(skills))
	for _, s := range skills {
		skillSet[s] = true
	}
	return &WorkCenter{
		ID:                  id,
		Name:                name,
		CapacityHoursPerDay: capacityHoursPerDay,
		IsActive:            isActive,
		Skills:              skillSet,
	}, nil
}

// HasSkills reports whether the work center covers every required skill tag
// (subset containment). An empty requirement matches every work center.
func (w *WorkCenter) HasSkills(required []string) bool {
	for _, tag := range required {
		if !w.Skills[tag] {
			return false
		}
	}
	return true
}

// DailyCapacity returns the working window length for one calendar day
func (w *WorkCenter) DailyCapacity() time.Duration {
	return time.Duration(w.CapacityHoursPerDay) * time.Hour
}
