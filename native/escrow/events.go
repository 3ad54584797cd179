package escrow

import (
	"encoding/hex"
	"strconv"

	"gigchain/core/types"
)

const (
	EventTypeProjectCreated   = "escrow.project.created"
	EventTypeProjectFunded    = "escrow.project.funded"
	EventTypeProjectStarted   = "escrow.project.started"
	EventTypeProjectCompleted = "escrow.project.completed"
)

// NewProjectCreatedEvent returns the canonical event payload for a newly
// created project.
func NewProjectCreatedEvent(p *Project) *types.Event {
	return newProjectEvent(EventTypeProjectCreated, p)
}

// NewProjectFundedEvent returns the canonical event payload emitted when the
// client escrows the project amount.
func NewProjectFundedEvent(p *Project) *types.Event {
	return newProjectEvent(EventTypeProjectFunded, p)
}

// NewProjectStartedEvent returns the canonical event payload emitted when the
// freelancer starts work.
func NewProjectStartedEvent(p *Project) *types.Event {
	return newProjectEvent(EventTypeProjectStarted, p)
}

// NewProjectCompletedEvent returns the canonical event payload emitted when
// escrowed funds are released to the freelancer.
func NewProjectCompletedEvent(p *Project) *types.Event {
	return newProjectEvent(EventTypeProjectCompleted, p)
}

func newProjectEvent(eventType string, p *Project) *types.Event {
	attrs := make(map[string]string)
	if p == nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	sanitized, err := SanitizeProject(p)
	if err != nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	attrs["id"] = strconv.FormatUint(sanitized.ID, 10)
	attrs["client"] = hex.EncodeToString(sanitized.Client[:])
	attrs["freelancer"] = hex.EncodeToString(sanitized.Freelancer[:])
	attrs["amount"] = sanitized.Amount.String()
	attrs["status"] = strconv.FormatUint(uint64(sanitized.Status), 10)
	attrs["createdAt"] = strconv.FormatInt(sanitized.CreatedAt, 10)
	if sanitized.CompletedAt != 0 {
		attrs["completedAt"] = strconv.FormatInt(sanitized.CompletedAt, 10)
	}
	return &types.Event{Type: eventType, Attributes: attrs}
}
