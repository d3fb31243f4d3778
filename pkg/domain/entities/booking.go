package entities

// Booking represents an occupation of a work center for an interval, either
// committed by a previous run (another job) or proposed by the current one.
// Conflict detection treats both identically within a single invocation.
type Booking struct {
	ID           string       `json:"id"`
	WorkCenterID WorkCenterID `json:"work_center_id"`
	JobID        string       `json:"job_id"`
	OperationID  string       `json:"operation_id"`
	Interval     Interval     `json:"interval"`
}
