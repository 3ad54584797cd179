package milestone

import (
	"math/big"
	"testing"

	"gigchain/core/events"
)

type recordingEmitter struct {
	types []string
}

func (r *recordingEmitter) Emit(evt events.Event) {
	r.types = append(r.types, evt.EventType())
}

func TestMilestoneEventAttributes(t *testing.T) {
	ms := &Milestone{
		ProjectID:   1,
		ID:          2,
		Description: "UI",
		Amount:      big.NewInt(500),
		Status:      StatusPaid,
		CreatedAt:   123456,
		CompletedAt: 123700,
		PaidAt:      123900,
	}
	evt := NewMilestonePaidEvent(ms)
	if evt.Type != EventTypeMilestonePaid {
		t.Fatalf("expected type %s, got %s", EventTypeMilestonePaid, evt.Type)
	}
	if evt.Attributes["projectId"] != "1" || evt.Attributes["milestoneId"] != "2" {
		t.Fatalf("unexpected identifiers: %v", evt.Attributes)
	}
	if evt.Attributes["completedAt"] != "123700" || evt.Attributes["paidAt"] != "123900" {
		t.Fatalf("unexpected timestamps: %v", evt.Attributes)
	}
}

func TestMilestoneEventInvalidPayload(t *testing.T) {
	evt := NewMilestoneCreatedEvent(&Milestone{})
	if evt.Type != EventTypeMilestoneCreated {
		t.Fatalf("expected type %s, got %s", EventTypeMilestoneCreated, evt.Type)
	}
	if len(evt.Attributes) != 0 {
		t.Fatalf("expected empty attributes for invalid payload, got %v", evt.Attributes)
	}
}
