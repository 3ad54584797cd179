package reputation

import (
	"errors"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// storage abstracts the subset of state manager functionality required by the
// reputation ledger.
type storage interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

var (
	skillVerificationPrefix = []byte("reputation/skill/")
	skillEndorsementPrefix  = []byte("reputation/endorsement/")
)

// Skill names are keyed by keccak digest rather than the raw string, so
// delimiter characters inside identifiers cannot collide with the key layout.
func skillDigest(skill string) ([]byte, bool) {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	if normalized == "" {
		return nil, false
	}
	return ethcrypto.Keccak256([]byte(normalized)), true
}

func skillVerificationKey(subject [20]byte, skill string) []byte {
	digest, ok := skillDigest(skill)
	if !ok {
		return nil
	}
	return []byte(fmt.Sprintf("%s%x/%x", skillVerificationPrefix, subject, digest))
}

func skillEndorsementKey(subject [20]byte, skill string, endorser [20]byte) []byte {
	digest, ok := skillDigest(skill)
	if !ok {
		return nil
	}
	return []byte(fmt.Sprintf("%s%x/%x/%x", skillEndorsementPrefix, subject, digest, endorser))
}

type storedSkillVerification struct {
	Subject  [20]byte
	Skill    string
	Verifier [20]byte
	Verified bool
	IssuedAt uint64
}

type storedSkillEndorsement struct {
	Subject  [20]byte
	Skill    string
	Endorser [20]byte
	Rating   uint32
	Comment  string
	IssuedAt uint64
}

// Ledger persists skill verifications and the endorsements layered on top of
// them.
type Ledger struct {
	store storage
}

// NewLedger constructs a ledger bound to the provided storage backend.
func NewLedger(store storage) *Ledger {
	return &Ledger{store: store}
}

// PutVerification stores the verification record, overwriting any previous
// attestation for the subject and skill combination.
func (l *Ledger) PutVerification(verification *SkillVerification) error {
	if l == nil || l.store == nil {
		return errors.New("reputation: storage unavailable")
	}
	if verification == nil {
		return errors.New("reputation: verification required")
	}
	sanitized := *verification
	sanitized.Skill = strings.TrimSpace(sanitized.Skill)
	if err := sanitized.Validate(); err != nil {
		return err
	}
	key := skillVerificationKey(sanitized.Subject, sanitized.Skill)
	if key == nil {
		return errors.New("reputation: skill required")
	}
	stored := storedSkillVerification{
		Subject:  sanitized.Subject,
		Skill:    sanitized.Skill,
		Verifier: sanitized.Verifier,
		Verified: sanitized.Verified,
		IssuedAt: uint64(sanitized.IssuedAt),
	}
	return l.store.KVPut(key, &stored)
}

// GetVerification retrieves the verification record for the subject and skill
// combination.
func (l *Ledger) GetVerification(subject [20]byte, skill string) (*SkillVerification, bool, error) {
	if l == nil || l.store == nil {
		return nil, false, errors.New("reputation: storage unavailable")
	}
	key := skillVerificationKey(subject, skill)
	if key == nil {
		return nil, false, errors.New("reputation: skill required")
	}
	var stored storedSkillVerification
	ok, err := l.store.KVGet(key, &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	verification := &SkillVerification{
		Subject:  stored.Subject,
		Skill:    stored.Skill,
		Verifier: stored.Verifier,
		Verified: stored.Verified,
		IssuedAt: int64(stored.IssuedAt),
	}
	return verification, true, nil
}

// PutEndorsement stores the endorsement record, overwriting any previous
// endorsement from the same endorser for the subject and skill combination.
func (l *Ledger) PutEndorsement(endorsement *SkillEndorsement) error {
	if l == nil || l.store == nil {
		return errors.New("reputation: storage unavailable")
	}
	if endorsement == nil {
		return errors.New("reputation: endorsement required")
	}
	sanitized := *endorsement
	sanitized.Skill = strings.TrimSpace(sanitized.Skill)
	if err := sanitized.Validate(); err != nil {
		return err
	}
	key := skillEndorsementKey(sanitized.Subject, sanitized.Skill, sanitized.Endorser)
	if key == nil {
		return errors.New("reputation: skill required")
	}
	stored := storedSkillEndorsement{
		Subject:  sanitized.Subject,
		Skill:    sanitized.Skill,
		Endorser: sanitized.Endorser,
		Rating:   sanitized.Rating,
		Comment:  sanitized.Comment,
		IssuedAt: uint64(sanitized.IssuedAt),
	}
	return l.store.KVPut(key, &stored)
}

// GetEndorsement retrieves the endorsement issued by the specified endorser
// for the subject and skill combination.
func (l *Ledger) GetEndorsement(subject [20]byte, skill string, endorser [20]byte) (*SkillEndorsement, bool, error) {
	if l == nil || l.store == nil {
		return nil, false, errors.New("reputation: storage unavailable")
	}
	key := skillEndorsementKey(subject, skill, endorser)
	if key == nil {
		return nil, false, errors.New("reputation: skill required")
	}
	var stored storedSkillEndorsement
	ok, err := l.store.KVGet(key, &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	endorsement := &SkillEndorsement{
		Subject:  stored.Subject,
		Skill:    stored.Skill,
		Endorser: stored.Endorser,
		Rating:   stored.Rating,
		Comment:  stored.Comment,
		IssuedAt: int64(stored.IssuedAt),
	}
	return endorsement, true, nil
}
