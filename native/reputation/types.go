package reputation

import (
	"errors"
	"strings"
)

// MaxRating is the upper bound of the endorsement rating scale.
const MaxRating = 5

// SkillVerification captures an admin attestation that a freelancer holds a
// skill. Once created it is never revoked; re-verifying simply overwrites the
// record with a fresh timestamp.
type SkillVerification struct {
	Subject  [20]byte
	Skill    string
	Verifier [20]byte
	Verified bool
	IssuedAt int64
}

// Validate ensures the verification payload is well formed.
func (s *SkillVerification) Validate() error {
	if s == nil {
		return errors.New("reputation: verification nil")
	}
	if len(strings.TrimSpace(s.Skill)) == 0 {
		return errors.New("reputation: skill required")
	}
	if s.Subject == ([20]byte{}) {
		return errors.New("reputation: subject required")
	}
	if s.Verifier == ([20]byte{}) {
		return errors.New("reputation: verifier required")
	}
	if s.IssuedAt <= 0 {
		return errors.New("reputation: issuedAt must be positive")
	}
	return nil
}

// SkillEndorsement is a third-party rating and comment attached to an already
// verified skill. At most one endorsement exists per (subject, skill,
// endorser) tuple; re-endorsing replaces the prior entry.
type SkillEndorsement struct {
	Subject  [20]byte
	Skill    string
	Endorser [20]byte
	Rating   uint32
	Comment  string
	IssuedAt int64
}

// Validate ensures the endorsement payload is well formed.
func (s *SkillEndorsement) Validate() error {
	if s == nil {
		return errors.New("reputation: endorsement nil")
	}
	if len(strings.TrimSpace(s.Skill)) == 0 {
		return errors.New("reputation: skill required")
	}
	if s.Subject == ([20]byte{}) {
		return errors.New("reputation: subject required")
	}
	if s.Endorser == ([20]byte{}) {
		return errors.New("reputation: endorser required")
	}
	if s.Rating > MaxRating {
		return errors.New("reputation: rating out of range")
	}
	if s.IssuedAt <= 0 {
		return errors.New("reputation: issuedAt must be positive")
	}
	return nil
}
