package genesis

import (
	"math/big"
	"testing"

	"gigchain/core/state"
	"gigchain/crypto"
	"gigchain/storage"
)

func testAddress(t *testing.T, fill byte) (string, [20]byte) {
	t.Helper()
	var raw [20]byte
	for i := range raw {
		raw[i] = fill
	}
	return crypto.NewAddress(raw[:]).String(), raw
}

func TestAllocationsParsing(t *testing.T) {
	clientStr, clientRaw := testAddress(t, 0x01)
	adminStr, _ := testAddress(t, 0xAD)

	spec := &GenesisSpec{
		Alloc: map[string]string{clientStr: "1000"},
		Admin: adminStr,
	}
	allocs, err := spec.Allocations()
	if err != nil {
		t.Fatalf("allocations: %v", err)
	}
	if len(allocs) != 1 {
		t.Fatalf("expected one allocation, got %d", len(allocs))
	}
	if allocs[0].Address != clientRaw {
		t.Fatalf("unexpected allocation address")
	}
	if allocs[0].Amount.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("expected amount 1000, got %s", allocs[0].Amount)
	}
}

func TestAllocationsRejectsBadEntries(t *testing.T) {
	clientStr, _ := testAddress(t, 0x01)

	bad := []*GenesisSpec{
		{Alloc: map[string]string{"not-bech32": "10"}},
		{Alloc: map[string]string{clientStr: "ten"}},
		{Alloc: map[string]string{clientStr: "-5"}},
	}
	for i, spec := range bad {
		if _, err := spec.Allocations(); err == nil {
			t.Fatalf("case %d: expected parse error", i)
		}
	}
}

func TestAdminAddress(t *testing.T) {
	adminStr, adminRaw := testAddress(t, 0xAD)

	spec := &GenesisSpec{Admin: adminStr}
	admin, err := spec.AdminAddress()
	if err != nil {
		t.Fatalf("admin address: %v", err)
	}
	if admin != adminRaw {
		t.Fatalf("unexpected admin address")
	}

	if _, err := (&GenesisSpec{}).AdminAddress(); err == nil {
		t.Fatalf("expected missing admin rejection")
	}
}

func TestApplySeedsBalancesOnce(t *testing.T) {
	clientStr, clientRaw := testAddress(t, 0x01)
	adminStr, _ := testAddress(t, 0xAD)

	spec := &GenesisSpec{
		Alloc: map[string]string{clientStr: "1000"},
		Admin: adminStr,
	}
	mgr := state.NewManager(storage.NewMemDB())

	if err := Apply(spec, mgr); err != nil {
		t.Fatalf("apply genesis: %v", err)
	}
	acc, err := mgr.GetAccount(clientRaw[:])
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if acc.Balance.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("expected seeded balance 1000, got %s", acc.Balance)
	}

	if err := Apply(spec, mgr); err == nil {
		t.Fatalf("expected second apply to fail")
	}
}
