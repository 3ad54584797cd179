package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"gigchain/crypto"
)

// GenesisSpec seeds a fresh ledger: initial balances per principal and the
// admin principal authorised to verify skills. Principals are bech32 strings
// with the "gig" prefix.
type GenesisSpec struct {
	Alloc map[string]string `json:"alloc"` // addr -> amount (smallest unit)
	Admin string            `json:"admin"`
}

// Allocation is a parsed genesis balance entry.
type Allocation struct {
	Address [20]byte
	Amount  *big.Int
}

// LoadGenesisFile reads and decodes the genesis spec at path.
func LoadGenesisFile(path string) (*GenesisSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis file: %w", err)
	}
	spec := &GenesisSpec{}
	if err := json.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("decode genesis file: %w", err)
	}
	return spec, nil
}

// AdminAddress parses the admin principal from the spec.
func (s *GenesisSpec) AdminAddress() ([20]byte, error) {
	var out [20]byte
	trimmed := strings.TrimSpace(s.Admin)
	if trimmed == "" {
		return out, fmt.Errorf("genesis: admin principal required")
	}
	addr, err := crypto.DecodeAddress(trimmed)
	if err != nil {
		return out, fmt.Errorf("genesis: invalid admin principal: %w", err)
	}
	copy(out[:], addr.Bytes())
	return out, nil
}

// Allocations parses the balance alloc into a deterministic, address-sorted
// slice. Amounts must be non-negative base-10 integers.
func (s *GenesisSpec) Allocations() ([]Allocation, error) {
	addrs := make([]string, 0, len(s.Alloc))
	for addr := range s.Alloc {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	out := make([]Allocation, 0, len(addrs))
	for _, raw := range addrs {
		addr, err := crypto.DecodeAddress(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("genesis: invalid alloc principal %q: %w", raw, err)
		}
		amount, ok := new(big.Int).SetString(strings.TrimSpace(s.Alloc[raw]), 10)
		if !ok {
			return nil, fmt.Errorf("genesis: invalid alloc amount %q for %q", s.Alloc[raw], raw)
		}
		if amount.Sign() < 0 {
			return nil, fmt.Errorf("genesis: negative alloc amount for %q", raw)
		}
		var fixed [20]byte
		copy(fixed[:], addr.Bytes())
		out = append(out, Allocation{Address: fixed, Amount: amount})
	}
	return out, nil
}
