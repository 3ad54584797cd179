package types

import "math/big"

// Account holds the spendable balance for a principal. Balances are tracked in
// the smallest currency unit and must never go negative; every transfer debits
// one account and credits another so the ledger-wide sum is conserved.
type Account struct {
	Nonce   uint64   `json:"nonce"`
	Balance *big.Int `json:"balance"`
}
