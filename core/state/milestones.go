package state

import (
	"math/big"

	"gigchain/native/milestone"
)

type storedMilestone struct {
	ProjectID   uint64
	ID          uint64
	Description string
	Amount      *big.Int
	Status      uint8
	CreatedAt   uint64
	CompletedAt uint64
	PaidAt      uint64
}

// MilestonePut persists the supplied milestone record after sanitising it.
func (m *Manager) MilestonePut(ms *milestone.Milestone) error {
	sanitized, err := milestone.SanitizeMilestone(ms)
	if err != nil {
		return err
	}
	stored := storedMilestone{
		ProjectID:   sanitized.ProjectID,
		ID:          sanitized.ID,
		Description: sanitized.Description,
		Amount:      sanitized.Amount,
		Status:      uint8(sanitized.Status),
		CreatedAt:   uint64(sanitized.CreatedAt),
		CompletedAt: uint64(sanitized.CompletedAt),
		PaidAt:      uint64(sanitized.PaidAt),
	}
	return m.KVPut(milestoneKey(sanitized.ProjectID, sanitized.ID), &stored)
}

// MilestoneGet loads the milestone stored under (projectID, id), reporting
// ok=false when the id was never allocated on the project.
func (m *Manager) MilestoneGet(projectID, id uint64) (*milestone.Milestone, bool, error) {
	var stored storedMilestone
	ok, err := m.KVGet(milestoneKey(projectID, id), &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	amount := stored.Amount
	if amount == nil {
		amount = big.NewInt(0)
	}
	ms := &milestone.Milestone{
		ProjectID:   stored.ProjectID,
		ID:          stored.ID,
		Description: stored.Description,
		Amount:      amount,
		Status:      milestone.Status(stored.Status),
		CreatedAt:   int64(stored.CreatedAt),
		CompletedAt: int64(stored.CompletedAt),
		PaidAt:      int64(stored.PaidAt),
	}
	return ms, true, nil
}

// MilestoneCount returns the per-project milestone counter, zero when the
// project has no milestones yet.
func (m *Manager) MilestoneCount(projectID uint64) (uint64, error) {
	var count uint64
	if _, err := m.KVGet(milestoneCountKey(projectID), &count); err != nil {
		return 0, err
	}
	return count, nil
}

// MilestoneSetCount persists the per-project milestone counter.
func (m *Manager) MilestoneSetCount(projectID, count uint64) error {
	return m.KVPut(milestoneCountKey(projectID), count)
}
