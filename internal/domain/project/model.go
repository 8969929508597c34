package project

// Status is the lifecycle state of a project.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusPaused Status = "PAUSED"
	StatusDone   Status = "DONE"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusPaused, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusDone:
		return true
	}
	return false
}

// DateLayout is the canonical createdAt shape.
const DateLayout = "2006-01-02"

// Project is a budgeted unit of work tracked by the dashboard.
// CreatedAt stays a YYYY-MM-DD string so it round-trips the record store unchanged.
type Project struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Owner     string  `json:"owner"`
	Status    Status  `json:"status"`
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	CreatedAt string  `json:"createdAt"`
}

// CreateRequest defines project creation inputs. The store assigns the ID.
type CreateRequest struct {
	Name      string  `json:"name"`
	Owner     string  `json:"owner"`
	Status    Status  `json:"status"`
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	CreatedAt string  `json:"createdAt"`
}
