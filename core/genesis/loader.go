package genesis

import (
	"fmt"

	"gigchain/core/state"
	"gigchain/core/types"
)

var appliedKey = []byte("genesis/applied")

// Applied reports whether the ledger was already seeded from a genesis spec.
func Applied(mgr *state.Manager) (bool, error) {
	return mgr.KVHas(appliedKey)
}

// Apply seeds the ledger with the genesis balance alloc and records the
// applied marker. Applying twice is an error; the balance table is the
// conserved quantity and must be minted exactly once.
func Apply(spec *GenesisSpec, mgr *state.Manager) error {
	if spec == nil {
		return fmt.Errorf("genesis: spec must not be nil")
	}
	if mgr == nil {
		return fmt.Errorf("genesis: state manager must not be nil")
	}
	applied, err := Applied(mgr)
	if err != nil {
		return err
	}
	if applied {
		return fmt.Errorf("genesis: already applied")
	}
	allocs, err := spec.Allocations()
	if err != nil {
		return err
	}
	if _, err := spec.AdminAddress(); err != nil {
		return err
	}
	for _, alloc := range allocs {
		if err := mgr.PutAccount(alloc.Address[:], &types.Account{Balance: alloc.Amount}); err != nil {
			return err
		}
	}
	return mgr.KVPut(appliedKey, true)
}
