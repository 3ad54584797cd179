package milestone

import (
	"fmt"
	"math/big"
)

// Status represents the lifecycle states of a milestone. The walk is strictly
// linear: Created -> Approved -> Completed -> Paid.
type Status uint8

const (
	StatusCreated Status = iota + 1
	StatusApproved
	StatusCompleted
	StatusPaid
)

// Milestone is a sub-deliverable of a project with its own approval,
// completion and payment status markers. It is keyed by (projectID, id) where
// id comes from a per-project counter starting at 1.
//
// The amount is deliberately not reconciled against the parent project's
// escrowed amount, and Paid is a status marker only: the project escrow
// release remains the sole fund movement.
type Milestone struct {
	ProjectID   uint64
	ID          uint64
	Description string
	Amount      *big.Int
	Status      Status
	CreatedAt   int64
	CompletedAt int64
	PaidAt      int64
}

// Clone returns a deep copy of the milestone so callers can safely mutate the
// copy without affecting the stored instance.
func (m *Milestone) Clone() *Milestone {
	if m == nil {
		return nil
	}
	clone := *m
	if m.Amount != nil {
		clone.Amount = new(big.Int).Set(m.Amount)
	} else {
		clone.Amount = big.NewInt(0)
	}
	return &clone
}

// Valid reports whether the status value is within the supported range.
func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusApproved, StatusCompleted, StatusPaid:
		return true
	default:
		return false
	}
}

// SanitizeMilestone validates the supplied milestone and returns a cloned
// instance with a non-nil amount. The function does not mutate the original
// value.
func SanitizeMilestone(m *Milestone) (*Milestone, error) {
	if m == nil {
		return nil, fmt.Errorf("nil milestone")
	}
	clone := m.Clone()
	if clone.ProjectID == 0 || clone.ID == 0 {
		return nil, fmt.Errorf("milestone ids must be positive")
	}
	if clone.Amount.Sign() < 0 {
		return nil, fmt.Errorf("milestone amount must be non-negative")
	}
	if !clone.Status.Valid() {
		return nil, fmt.Errorf("invalid milestone status: %d", clone.Status)
	}
	if (clone.CompletedAt != 0) != (clone.Status >= StatusCompleted) {
		return nil, fmt.Errorf("completedAt must be set exactly when status reaches completed")
	}
	if (clone.PaidAt != 0) != (clone.Status == StatusPaid) {
		return nil, fmt.Errorf("paidAt must be set exactly when status is paid")
	}
	return clone, nil
}
