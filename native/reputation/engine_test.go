package reputation

import (
	"errors"
	"testing"

	"gigchain/core/events"
)

type recordingEmitter struct {
	types []string
}

func (r *recordingEmitter) Emit(evt events.Event) {
	r.types = append(r.types, evt.EventType())
}

func newTestAddress(fill byte) [20]byte {
	var addr [20]byte
	for i := range addr {
		addr[i] = fill
	}
	return addr
}

func newTestEngine() (*Engine, [20]byte) {
	admin := newTestAddress(0xAD)
	engine := NewEngine(newMemoryStore())
	engine.SetAdmin(admin)
	engine.SetNowFunc(func() int64 { return 123456 })
	return engine, admin
}

func TestVerifySkill(t *testing.T) {
	engine, admin := newTestEngine()
	freelancer := newTestAddress(0x01)

	verification, err := engine.Verify(admin, freelancer, "javascript")
	if err != nil {
		t.Fatalf("verify skill: %v", err)
	}
	if !verification.Verified {
		t.Fatalf("expected verified flag")
	}
	if verification.Verifier != admin {
		t.Fatalf("expected verifier to be the admin")
	}
	if verification.IssuedAt != 123456 {
		t.Fatalf("expected issuedAt 123456, got %d", verification.IssuedAt)
	}

	verified, err := engine.IsVerified(freelancer, "javascript")
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if !verified {
		t.Fatalf("expected skill to be verified")
	}
}

func TestVerifySkillUnauthorized(t *testing.T) {
	engine, _ := newTestEngine()
	freelancer := newTestAddress(0x01)

	if _, err := engine.Verify(freelancer, freelancer, "javascript"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if verified, _ := engine.IsVerified(freelancer, "javascript"); verified {
		t.Fatalf("expected no verification record")
	}
}

func TestVerifySkillRespectsAdminRotation(t *testing.T) {
	engine, admin := newTestEngine()
	successor := newTestAddress(0xAE)
	freelancer := newTestAddress(0x01)

	engine.SetAdmin(successor)
	if _, err := engine.Verify(admin, freelancer, "javascript"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected former admin to be rejected, got %v", err)
	}
	if _, err := engine.Verify(successor, freelancer, "javascript"); err != nil {
		t.Fatalf("verify by successor: %v", err)
	}
}

func TestVerifySkillOverwrites(t *testing.T) {
	engine, admin := newTestEngine()
	freelancer := newTestAddress(0x01)

	if _, err := engine.Verify(admin, freelancer, "javascript"); err != nil {
		t.Fatalf("verify skill: %v", err)
	}
	engine.SetNowFunc(func() int64 { return 123999 })
	if _, err := engine.Verify(admin, freelancer, "javascript"); err != nil {
		t.Fatalf("re-verify skill: %v", err)
	}

	verification, ok, err := engine.GetVerification(freelancer, "javascript")
	if err != nil || !ok {
		t.Fatalf("get verification: ok=%v err=%v", ok, err)
	}
	if verification.IssuedAt != 123999 {
		t.Fatalf("expected overwrite with fresh timestamp, got %d", verification.IssuedAt)
	}
}

func TestEndorseSkill(t *testing.T) {
	engine, admin := newTestEngine()
	freelancer := newTestAddress(0x01)
	endorser := newTestAddress(0x02)

	if _, err := engine.Verify(admin, freelancer, "javascript"); err != nil {
		t.Fatalf("verify skill: %v", err)
	}
	endorsement, err := engine.Endorse(endorser, freelancer, "javascript", 5, "Great JavaScript skills!")
	if err != nil {
		t.Fatalf("endorse skill: %v", err)
	}
	if endorsement.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", endorsement.Rating)
	}

	stored, ok, err := engine.GetEndorsement(freelancer, "javascript", endorser)
	if err != nil || !ok {
		t.Fatalf("get endorsement: ok=%v err=%v", ok, err)
	}
	if stored.Comment != "Great JavaScript skills!" {
		t.Fatalf("unexpected comment %q", stored.Comment)
	}
}

func TestEndorseSkillInvalidRating(t *testing.T) {
	engine, admin := newTestEngine()
	freelancer := newTestAddress(0x01)
	endorser := newTestAddress(0x02)

	if _, err := engine.Verify(admin, freelancer, "python"); err != nil {
		t.Fatalf("verify skill: %v", err)
	}
	if _, err := engine.Endorse(endorser, freelancer, "python", 6, "x"); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if _, ok, _ := engine.GetEndorsement(freelancer, "python", endorser); ok {
		t.Fatalf("expected no endorsement record")
	}
}

func TestEndorseSkillNotVerified(t *testing.T) {
	engine, _ := newTestEngine()
	freelancer := newTestAddress(0x01)
	endorser := newTestAddress(0x02)

	if _, err := engine.Endorse(endorser, freelancer, "python", 5, "should fail"); !errors.Is(err, ErrSkillNotVerified) {
		t.Fatalf("expected ErrSkillNotVerified, got %v", err)
	}
}

func TestEndorseSkillReplacesPriorEntry(t *testing.T) {
	engine, admin := newTestEngine()
	freelancer := newTestAddress(0x01)
	endorser := newTestAddress(0x02)

	if _, err := engine.Verify(admin, freelancer, "go"); err != nil {
		t.Fatalf("verify skill: %v", err)
	}
	if _, err := engine.Endorse(endorser, freelancer, "go", 3, "decent"); err != nil {
		t.Fatalf("endorse skill: %v", err)
	}
	if _, err := engine.Endorse(endorser, freelancer, "go", 5, "improved a lot"); err != nil {
		t.Fatalf("re-endorse skill: %v", err)
	}

	stored, ok, err := engine.GetEndorsement(freelancer, "go", endorser)
	if err != nil || !ok {
		t.Fatalf("get endorsement: ok=%v err=%v", ok, err)
	}
	if stored.Rating != 5 || stored.Comment != "improved a lot" {
		t.Fatalf("expected replacement, got %+v", stored)
	}
}

func TestReputationEventsEmitted(t *testing.T) {
	engine, admin := newTestEngine()
	emitter := &recordingEmitter{}
	engine.SetEmitter(emitter)
	freelancer := newTestAddress(0x01)

	if _, err := engine.Verify(admin, freelancer, "go"); err != nil {
		t.Fatalf("verify skill: %v", err)
	}
	if _, err := engine.Endorse(admin, freelancer, "go", 4, "ok"); err != nil {
		t.Fatalf("endorse skill: %v", err)
	}

	want := []string{EventTypeSkillVerified, EventTypeSkillEndorsed}
	if len(emitter.types) != len(want) {
		t.Fatalf("expected %d events, got %d (%v)", len(want), len(emitter.types), emitter.types)
	}
	for i, evtType := range want {
		if emitter.types[i] != evtType {
			t.Fatalf("event %d: expected %s, got %s", i, evtType, emitter.types[i])
		}
	}
}

func TestIsVerifiedAbsent(t *testing.T) {
	engine, _ := newTestEngine()

	verified, err := engine.IsVerified(newTestAddress(0x01), "rust")
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if verified {
		t.Fatalf("expected unverified skill")
	}
}
