package reputation

import (
	"errors"
	"fmt"
	"time"

	"gigchain/core/events"
	"gigchain/core/types"
)

var (
	errNilLedger = errors.New("reputation engine: ledger not configured")

	// ErrUnauthorized marks verification attempts from callers other than the
	// configured admin principal.
	ErrUnauthorized = errors.New("reputation: unauthorized caller")
	// ErrInvalidRating marks endorsement ratings above MaxRating.
	ErrInvalidRating = errors.New("reputation: rating out of range")
	// ErrSkillNotVerified marks endorsements against a skill that carries no
	// verification record.
	ErrSkillNotVerified = errors.New("reputation: skill not verified")
)

type reputationEvent struct {
	evt *types.Event
}

func (e reputationEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e reputationEvent) Event() *types.Event { return e.evt }

// Engine owns skill attestations and the endorsements layered on top. The
// admin principal is an explicit authorization context configured on the
// engine rather than ambient global state, so tests can exercise multiple
// admins without mutation tricks.
type Engine struct {
	ledger  *Ledger
	admin   [20]byte
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine constructs an engine backed by the provided storage backend. The
// admin principal must be configured via SetAdmin before verifications are
// accepted.
func NewEngine(store storage) *Engine {
	engine := &Engine{
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
	if store != nil {
		engine.ledger = NewLedger(store)
	}
	return engine
}

// SetAdmin configures the admin principal authorised to verify skills.
// Rotation is an out-of-band operation performed by the surrounding runtime.
func (e *Engine) SetAdmin(admin [20]byte) { e.admin = admin }

// Admin returns the currently configured admin principal.
func (e *Engine) Admin() [20]byte { return e.admin }

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(reputationEvent{evt: event})
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

// Verify attests that the subject holds the skill. Only the configured admin
// principal may verify; an unset admin rejects every caller. Re-verifying
// overwrites the record with a fresh timestamp.
func (e *Engine) Verify(caller, subject [20]byte, skill string) (*SkillVerification, error) {
	if e == nil || e.ledger == nil {
		return nil, errNilLedger
	}
	if e.admin == ([20]byte{}) || caller != e.admin {
		return nil, fmt.Errorf("%w: verify requires the admin principal", ErrUnauthorized)
	}
	verification := &SkillVerification{
		Subject:  subject,
		Skill:    skill,
		Verifier: caller,
		Verified: true,
		IssuedAt: e.now(),
	}
	if err := e.ledger.PutVerification(verification); err != nil {
		return nil, err
	}
	e.emit(NewSkillVerifiedEvent(verification))
	return verification, nil
}

// Endorse attaches the caller's rating and comment to an already verified
// skill. Any principal may endorse; re-endorsing replaces the caller's prior
// entry. The rating bound is checked before the verification lookup.
func (e *Engine) Endorse(caller, subject [20]byte, skill string, rating uint32, comment string) (*SkillEndorsement, error) {
	if e == nil || e.ledger == nil {
		return nil, errNilLedger
	}
	if rating > MaxRating {
		return nil, fmt.Errorf("%w: rating %d exceeds %d", ErrInvalidRating, rating, MaxRating)
	}
	verified, err := e.IsVerified(subject, skill)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrSkillNotVerified
	}
	endorsement := &SkillEndorsement{
		Subject:  subject,
		Skill:    skill,
		Endorser: caller,
		Rating:   rating,
		Comment:  comment,
		IssuedAt: e.now(),
	}
	if err := e.ledger.PutEndorsement(endorsement); err != nil {
		return nil, err
	}
	e.emit(NewSkillEndorsedEvent(endorsement))
	return endorsement, nil
}

// IsVerified reports whether a verification record exists for the subject and
// skill combination.
func (e *Engine) IsVerified(subject [20]byte, skill string) (bool, error) {
	if e == nil || e.ledger == nil {
		return false, errNilLedger
	}
	verification, ok, err := e.ledger.GetVerification(subject, skill)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return verification.Verified, nil
}

// GetVerification fetches the verification record for subject/skill,
// reporting ok=false when none exists.
func (e *Engine) GetVerification(subject [20]byte, skill string) (*SkillVerification, bool, error) {
	if e == nil || e.ledger == nil {
		return nil, false, errNilLedger
	}
	return e.ledger.GetVerification(subject, skill)
}

// GetEndorsement fetches the endorsement issued by endorser for subject/skill,
// reporting ok=false when none exists.
func (e *Engine) GetEndorsement(subject [20]byte, skill string, endorser [20]byte) (*SkillEndorsement, bool, error) {
	if e == nil || e.ledger == nil {
		return nil, false, errNilLedger
	}
	return e.ledger.GetEndorsement(subject, skill, endorser)
}
