package milestone

import (
	"strconv"

	"gigchain/core/types"
)

const (
	EventTypeMilestoneCreated   = "escrow.milestone.created"
	EventTypeMilestoneApproved  = "escrow.milestone.approved"
	EventTypeMilestoneCompleted = "escrow.milestone.completed"
	EventTypeMilestonePaid      = "escrow.milestone.paid"
)

// NewMilestoneCreatedEvent returns the canonical event payload for a newly
// created milestone.
func NewMilestoneCreatedEvent(m *Milestone) *types.Event {
	return newMilestoneEvent(EventTypeMilestoneCreated, m)
}

// NewMilestoneApprovedEvent returns the canonical event payload emitted when
// the client approves a milestone.
func NewMilestoneApprovedEvent(m *Milestone) *types.Event {
	return newMilestoneEvent(EventTypeMilestoneApproved, m)
}

// NewMilestoneCompletedEvent returns the canonical event payload emitted when
// the freelancer completes a milestone.
func NewMilestoneCompletedEvent(m *Milestone) *types.Event {
	return newMilestoneEvent(EventTypeMilestoneCompleted, m)
}

// NewMilestonePaidEvent returns the canonical event payload emitted when the
// client marks a milestone as paid.
func NewMilestonePaidEvent(m *Milestone) *types.Event {
	return newMilestoneEvent(EventTypeMilestonePaid, m)
}

func newMilestoneEvent(eventType string, m *Milestone) *types.Event {
	attrs := make(map[string]string)
	if m == nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	sanitized, err := SanitizeMilestone(m)
	if err != nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	attrs["projectId"] = strconv.FormatUint(sanitized.ProjectID, 10)
	attrs["milestoneId"] = strconv.FormatUint(sanitized.ID, 10)
	attrs["amount"] = sanitized.Amount.String()
	attrs["status"] = strconv.FormatUint(uint64(sanitized.Status), 10)
	attrs["createdAt"] = strconv.FormatInt(sanitized.CreatedAt, 10)
	if sanitized.CompletedAt != 0 {
		attrs["completedAt"] = strconv.FormatInt(sanitized.CompletedAt, 10)
	}
	if sanitized.PaidAt != 0 {
		attrs["paidAt"] = strconv.FormatInt(sanitized.PaidAt, 10)
	}
	return &types.Event{Type: eventType, Attributes: attrs}
}
