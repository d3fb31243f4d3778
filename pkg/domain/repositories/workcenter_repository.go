package repositories

import "github.com/quillon/jobshop/pkg/domain/entities"

// WorkCenterRepository provides access to work center reference data
type WorkCenterRepository interface {
	GetWorkCenter(id entities.WorkCenterID) (*entities.WorkCenter, error)
	GetActiveWorkCenters() ([]*entities.WorkCenter, error)
	GetAllWorkCenters() ([]*entities.WorkCenter, error)
	LoadWorkCenters(workCenters []*entities.WorkCenter) error
}
