package state

import (
	"math/big"

	"gigchain/native/escrow"
	"gigchain/native/milestone"
)

type storedProject struct {
	ID          uint64
	Client      [20]byte
	Freelancer  [20]byte
	Amount      *big.Int
	Status      uint8
	CreatedAt   uint64
	CompletedAt uint64
}

// ProjectNextID allocates the next ledger-wide project identifier. The
// counter starts at 1 and only ever increases.
func (m *Manager) ProjectNextID() (uint64, error) {
	var counter uint64
	if _, err := m.KVGet(projectCounterKey(), &counter); err != nil {
		return 0, err
	}
	next := counter + 1
	if err := m.KVPut(projectCounterKey(), next); err != nil {
		return 0, err
	}
	return next, nil
}

// ProjectPut persists the supplied project record after sanitising it.
func (m *Manager) ProjectPut(p *escrow.Project) error {
	sanitized, err := escrow.SanitizeProject(p)
	if err != nil {
		return err
	}
	stored := storedProject{
		ID:          sanitized.ID,
		Client:      sanitized.Client,
		Freelancer:  sanitized.Freelancer,
		Amount:      sanitized.Amount,
		Status:      uint8(sanitized.Status),
		CreatedAt:   uint64(sanitized.CreatedAt),
		CompletedAt: uint64(sanitized.CompletedAt),
	}
	return m.KVPut(projectKey(sanitized.ID), &stored)
}

// ProjectGet loads the project stored under id, reporting ok=false when the
// id was never allocated.
func (m *Manager) ProjectGet(id uint64) (*escrow.Project, bool, error) {
	var stored storedProject
	ok, err := m.KVGet(projectKey(id), &stored)
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
	project := &escrow.Project{
		ID:          stored.ID,
		Client:      stored.Client,
		Freelancer:  stored.Freelancer,
		Amount:      amount,
		Status:      escrow.ProjectStatus(stored.Status),
		CreatedAt:   int64(stored.CreatedAt),
		CompletedAt: int64(stored.CompletedAt),
	}
	return project, true, nil
}

// ProjectRoles implements the milestone engine's read-only project
// capability, resolving the client and freelancer principals for role checks.
func (m *Manager) ProjectRoles(id uint64) (milestone.ProjectRoles, bool, error) {
	project, ok, err := m.ProjectGet(id)
	if err != nil || !ok {
		return milestone.ProjectRoles{}, false, err
	}
	return milestone.ProjectRoles{Client: project.Client, Freelancer: project.Freelancer}, true, nil
}
