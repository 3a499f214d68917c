package access

import (
	"errors"
	"testing"
)

func TestNewOwnable(t *testing.T) {
	if _, err := NewOwnable(""); !errors.Is(err, ErrInvalidOwner) {
		t.Errorf("NewOwnable(zero) = %v, want ErrInvalidOwner", err)
	}

	o, err := NewOwnable("0xalice")
	if err != nil {
		t.Fatalf("NewOwnable failed: %v", err)
	}
	if o.Owner() != "0xalice" {
		t.Errorf("Owner = %q", o.Owner())
	}
	if err := o.Require("0xalice"); err != nil {
		t.Errorf("Require(owner) = %v", err)
	}
	if err := o.Require("0xbob"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Require(stranger) = %v, want ErrNotOwner", err)
	}
}

func TestTwoStepTransfer(t *testing.T) {
	o, _ := NewOwnable("0xalice")

	// Only the owner may nominate.
	if err := o.TransferOwnership("0xbob", "0xbob"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("nominate by stranger = %v, want ErrNotOwner", err)
	}
	if err := o.TransferOwnership("0xalice", ""); !errors.Is(err, ErrInvalidOwner) {
		t.Errorf("nominate zero = %v, want ErrInvalidOwner", err)
	}

	if err := o.TransferOwnership("0xalice", "0xbob"); err != nil {
		t.Fatalf("nominate failed: %v", err)
	}
	if o.PendingOwner() != "0xbob" {
		t.Errorf("PendingOwner = %q", o.PendingOwner())
	}
	// Ownership has not moved yet.
	if o.Owner() != "0xalice" {
		t.Errorf("Owner moved before accept: %q", o.Owner())
	}

	// Only the nominee may accept.
	if err := o.AcceptOwnership("0xcarol"); !errors.Is(err, ErrNotPendingOwner) {
		t.Errorf("accept by stranger = %v, want ErrNotPendingOwner", err)
	}
	if err := o.AcceptOwnership("0xbob"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if o.Owner() != "0xbob" {
		t.Errorf("Owner = %q after accept", o.Owner())
	}
	if o.PendingOwner() != "" {
		t.Errorf("pending not cleared: %q", o.PendingOwner())
	}
}

func TestRenominateReplaces(t *testing.T) {
	o, _ := NewOwnable("0xalice")
	if err := o.TransferOwnership("0xalice", "0xbob"); err != nil {
		t.Fatalf("nominate failed: %v", err)
	}
	if err := o.TransferOwnership("0xalice", "0xcarol"); err != nil {
		t.Fatalf("renominate failed: %v", err)
	}
	if err := o.AcceptOwnership("0xbob"); !errors.Is(err, ErrNotPendingOwner) {
		t.Errorf("stale nominee accepted: %v", err)
	}
	if err := o.AcceptOwnership("0xcarol"); err != nil {
		t.Errorf("accept failed: %v", err)
	}
}

func TestRenounce(t *testing.T) {
	o, _ := NewOwnable("0xalice")
	if err := o.TransferOwnership("0xalice", "0xbob"); err != nil {
		t.Fatalf("nominate failed: %v", err)
	}

	if err := o.Renounce("0xbob"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("renounce by stranger = %v, want ErrNotOwner", err)
	}
	if err := o.Renounce("0xalice"); err != nil {
		t.Fatalf("renounce failed: %v", err)
	}

	if o.Owner() != "" {
		t.Errorf("Owner = %q after renounce", o.Owner())
	}
	// Nobody is the owner any more, including the zero address, and the
	// pending nomination is dead.
	if err := o.Require(""); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Require(zero) = %v, want ErrNotOwner", err)
	}
	if err := o.AcceptOwnership("0xbob"); !errors.Is(err, ErrNotPendingOwner) {
		t.Errorf("accept after renounce = %v, want ErrNotPendingOwner", err)
	}
	if err := o.Renounce(""); !errors.Is(err, ErrNotOwner) {
		t.Errorf("renounce by zero = %v, want ErrNotOwner", err)
	}
}
