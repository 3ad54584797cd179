package reputation

import (
	"encoding/hex"
	"strconv"

	"gigchain/core/types"
)

const (
	// EventTypeSkillVerified is emitted when the admin attests to a skill.
	EventTypeSkillVerified = "reputation.skillVerified"
	// EventTypeSkillEndorsed is emitted when a principal endorses a verified
	// skill.
	EventTypeSkillEndorsed = "reputation.skillEndorsed"
)

// NewSkillVerifiedEvent returns the canonical event payload for a skill
// verification.
func NewSkillVerifiedEvent(v *SkillVerification) *types.Event {
	attrs := make(map[string]string)
	if v == nil {
		return &types.Event{Type: EventTypeSkillVerified, Attributes: attrs}
	}
	if err := v.Validate(); err != nil {
		return &types.Event{Type: EventTypeSkillVerified, Attributes: attrs}
	}
	attrs["subject"] = hex.EncodeToString(v.Subject[:])
	attrs["verifier"] = hex.EncodeToString(v.Verifier[:])
	attrs["skill"] = v.Skill
	attrs["issuedAt"] = strconv.FormatInt(v.IssuedAt, 10)
	return &types.Event{Type: EventTypeSkillVerified, Attributes: attrs}
}

// NewSkillEndorsedEvent returns the canonical event payload for a skill
// endorsement.
func NewSkillEndorsedEvent(e *SkillEndorsement) *types.Event {
	attrs := make(map[string]string)
	if e == nil {
		return &types.Event{Type: EventTypeSkillEndorsed, Attributes: attrs}
	}
	if err := e.Validate(); err != nil {
		return &types.Event{Type: EventTypeSkillEndorsed, Attributes: attrs}
	}
	attrs["subject"] = hex.EncodeToString(e.Subject[:])
	attrs["endorser"] = hex.EncodeToString(e.Endorser[:])
	attrs["skill"] = e.Skill
	attrs["rating"] = strconv.FormatUint(uint64(e.Rating), 10)
	attrs["issuedAt"] = strconv.FormatInt(e.IssuedAt, 10)
	return &types.Event{Type: EventTypeSkillEndorsed, Attributes: attrs}
}
