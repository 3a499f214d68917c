package commit

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/ledger"
)

func mustLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(ledger.Config{
		InitialHolder: "0xalice",
		TotalSupply:   uint256.MustFromDecimal("1000000000000000000000000000"),
		Name:          "Test",
		Symbol:        "TST",
		Decimals:      ledger.DefaultDecimals,
	}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l
}

func TestRootDeterministic(t *testing.T) {
	l := mustLedger(t)
	for _, to := range []ledger.Address{"0xbob", "0xcarol", "0xdave"} {
		if err := l.Transfer("0xalice", to, uint256.NewInt(1000)); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
	}

	r1, err := Root(l.Snapshot())
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	r2, err := Root(l.Snapshot())
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if r1 != r2 {
		t.Error("root not deterministic across snapshots of the same state")
	}
}

func TestRootSensitivity(t *testing.T) {
	l := mustLedger(t)
	before, err := Root(l.Snapshot())
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}

	if err := l.Transfer("0xalice", "0xbob", uint256.NewInt(1)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	after, err := Root(l.Snapshot())
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if before == after {
		t.Error("root unchanged by a balance movement")
	}
}

func TestRootIgnoresHistory(t *testing.T) {
	// Two ledgers that arrive at the same balances by different
	// operation sequences commit to the same root.
	l1 := mustLedger(t)
	if err := l1.Transfer("0xalice", "0xbob", uint256.NewInt(100)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	l2 := mustLedger(t)
	if err := l2.Transfer("0xalice", "0xbob", uint256.NewInt(40)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if err := l2.Transfer("0xalice", "0xbob", uint256.NewInt(60)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	r1, err := Root(l1.Snapshot())
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	r2, err := Root(l2.Snapshot())
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if r1 != r2 {
		t.Error("equal states committed to different roots")
	}
}

func TestDigest(t *testing.T) {
	l := mustLedger(t)
	d1 := Digest(l.Snapshot())
	d2 := Digest(l.Snapshot())
	if d1 != d2 {
		t.Error("digest not deterministic")
	}

	if err := l.Transfer("0xalice", "0xbob", uint256.NewInt(1)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if Digest(l.Snapshot()) == d1 {
		t.Error("digest unchanged by a balance movement")
	}
}

func TestAccountFieldBelowModulus(t *testing.T) {
	// The top byte is always zero, so the value is below 2^248 and thus
	// below the BN254 scalar modulus.
	field := accountField("0xalice")
	if field[0] != 0 {
		t.Errorf("top byte = %d, want 0", field[0])
	}
}
