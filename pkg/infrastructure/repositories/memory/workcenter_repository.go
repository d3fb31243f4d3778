package memory

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/quillon/jobshop/pkg/domain/entities"
	"github.com/quillon/jobshop/pkg/domain/repositories"
)

// WorkCenterRepository provides in-memory work center storage
type WorkCenterRepository struct {
	mu      sync.RWMutex
	centers map[entities.WorkCenterID]entities.WorkCenter
}

// NewWorkCenterRepository creates a new in-memory work center repository
func NewWorkCenterRepository() *WorkCenterRepository {
	return &WorkCenterRepository{
		centers: make(map[entities.WorkCenterID]entities.WorkCenter),
	}
}

// Verify interface compliance
var _ repositories.WorkCenterRepository = (*WorkCenterRepository)(nil)

// LoadWorkCenters loads work centers into the repository
func (r *WorkCenterRepository) LoadWorkCenters(workCenters []*entities.WorkCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wc := range workCenters {
		r.centers[wc.ID] = *wc
	}
	return nil
}

// AddWorkCenter adds a single work center
func (r *WorkCenterRepository) AddWorkCenter(wc *entities.WorkCenter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.centers[wc.ID] = *wc
}

// GetWorkCenter returns the work center with the given ID
func (r *WorkCenterRepository) GetWorkCenter(id entities.WorkCenterID) (*entities.WorkCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wc, exists := r.centers[id]
	if !exists {
		return nil, errors.Newf("work center not found: %s", id)
	}
	return &wc, nil
}

// GetActiveWorkCenters returns all active work centers, ID-sorted
func (r *WorkCenterRepository) GetActiveWorkCenters() ([]*entities.WorkCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var active []*entities.WorkCenter
	for id := range r.centers {
		wc := r.centers[id]
		if wc.IsActive {
			active = append(active, &wc)
		}
	}
	sortByID(active)
	return active, nil
}

// GetAllWorkCenters returns every work center, ID-sorted
func (r *WorkCenterRepository) GetAllWorkCenters() ([]*entities.WorkCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entities.WorkCenter, 0, len(r.centers))
	for id := range r.centers {
		wc := r.centers[id]
		all = append(all, &wc)
	}
	sortByID(all)
	return all, nil
}

func sortByID(centers []*entities.WorkCenter) {
	sort.Slice(centers, func(i, j int) bool { return centers[i].ID < centers[j].ID })
}
