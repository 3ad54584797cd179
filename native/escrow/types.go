package escrow

import (
	"fmt"
	"math/big"
)

// ProjectStatus represents the lifecycle states of a project escrow. The walk
// is strictly linear: Created -> Funded -> InProgress -> Completed, with no
// skips and no reversals.
type ProjectStatus uint8

const (
	ProjectCreated ProjectStatus = iota + 1
	ProjectFunded
	ProjectInProgress
	ProjectCompleted
)

// Project captures a single client/freelancer engagement and the escrowed
// amount attached to it. The amount is fixed at creation; custody moves from
// the client to the module vault on funding and from the vault to the
// freelancer on completion.
type Project struct {
	ID          uint64
	Client      [20]byte
	Freelancer  [20]byte
	Amount      *big.Int
	Status      ProjectStatus
	CreatedAt   int64
	CompletedAt int64
}

// Clone returns a deep copy of the project so callers can safely mutate the
// copy without affecting the stored instance.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Amount != nil {
		clone.Amount = new(big.Int).Set(p.Amount)
	} else {
		clone.Amount = big.NewInt(0)
	}
	return &clone
}

// Valid reports whether the status value is within the supported range.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectCreated, ProjectFunded, ProjectInProgress, ProjectCompleted:
		return true
	default:
		return false
	}
}

// SanitizeProject validates the supplied project definition and returns a
// cloned instance with a non-nil amount. The function does not mutate the
// original value.
func SanitizeProject(p *Project) (*Project, error) {
	if p == nil {
		return nil, fmt.Errorf("nil project")
	}
	clone := p.Clone()
	if clone.ID == 0 {
		return nil, fmt.Errorf("project id must be positive")
	}
	if clone.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("project amount must be positive")
	}
	if !clone.Status.Valid() {
		return nil, fmt.Errorf("invalid project status: %d", clone.Status)
	}
	if (clone.CompletedAt != 0) != (clone.Status == ProjectCompleted) {
		return nil, fmt.Errorf("completedAt must be set exactly when status is completed")
	}
	return clone, nil
}
