// Package commit computes deterministic commitments over ledger
// snapshots. Root produces a MiMC hash over the BN254 scalar field,
// suitable for consumption by proof systems and on-chain verifiers;
// Digest is a plain SHA-256 for cheap equality checks.
package commit

import (
	"crypto/sha256"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/pflow-xyz/go-ledger/ledger"
)

// Root computes the MiMC state root of a snapshot: the total supply
// followed by every non-zero (account, balance) pair in sorted account
// order. Each 256-bit balance is absorbed as two 128-bit field
// elements; account identifiers are absorbed as a truncated SHA-256
// hash so they always fit in the field.
func Root(snap *ledger.Snapshot) ([32]byte, error) {
	var root [32]byte

	h := mimc.NewMiMC()
	hi, lo := split(snap.TotalSupply.Bytes32())
	if _, err := h.Write(hi[:]); err != nil {
		return root, fmt.Errorf("absorbing supply: %w", err)
	}
	if _, err := h.Write(lo[:]); err != nil {
		return root, fmt.Errorf("absorbing supply: %w", err)
	}

	for _, account := range snap.Accounts() {
		field := accountField(account)
		if _, err := h.Write(field[:]); err != nil {
			return root, fmt.Errorf("absorbing account %s: %w", account, err)
		}
		hi, lo := split(snap.Balances[account].Bytes32())
		if _, err := h.Write(hi[:]); err != nil {
			return root, fmt.Errorf("absorbing balance of %s: %w", account, err)
		}
		if _, err := h.Write(lo[:]); err != nil {
			return root, fmt.Errorf("absorbing balance of %s: %w", account, err)
		}
	}

	copy(root[:], h.Sum(nil))
	return root, nil
}

// Digest computes a SHA-256 digest of a snapshot over the same sorted
// account order as Root. Two snapshots with equal balances and supply
// have equal digests regardless of map iteration order.
func Digest(snap *ledger.Snapshot) [32]byte {
	h := sha256.New()
	supply := snap.TotalSupply.Bytes32()
	h.Write(supply[:])
	for _, account := range snap.Accounts() {
		h.Write([]byte(account))
		bal := snap.Balances[account].Bytes32()
		h.Write(bal[:])
	}

	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// accountField maps an address to a 32-byte value strictly below the
// BN254 scalar modulus: SHA-256 truncated to 31 bytes, left-padded.
func accountField(account ledger.Address) [32]byte {
	sum := sha256.Sum256([]byte(account))
	var field [32]byte
	copy(field[1:], sum[:31])
	return field
}

// split separates a 256-bit big-endian value into two left-padded
// 128-bit field elements, each below the modulus by construction.
func split(b [32]byte) (hi, lo [32]byte) {
	copy(hi[16:], b[:16])
	copy(lo[16:], b[16:])
	return hi, lo
}
