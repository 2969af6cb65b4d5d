package integrity

import (
	"strings"
	"testing"
)

func TestHashString_Deterministic(t *testing.T) {
	a := HashString("desk-review output")
	b := HashString("desk-review output")
	if a != b {
		t.Errorf("same input produced different digests: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashString("different output") {
		t.Error("different inputs produced the same digest")
	}
}

func TestHashString_KnownVector(t *testing.T) {
	// SHA-256 of the empty string.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := HashString(""); got != want {
		t.Errorf("HashString(\"\") = %s, want %s", got, want)
	}
}

func TestMerkleRoot_Empty(t *testing.T) {
	if got := MerkleRoot(nil); got != "" {
		t.Errorf("expected empty root for no leaves, got %s", got)
	}
}

func TestMerkleRoot_SingleLeaf(t *testing.T) {
	if got := MerkleRoot([]string{"out"}); got != HashString("out") {
		t.Errorf("single-leaf root should equal the leaf hash, got %s", got)
	}
}

func TestMerkleRoot_PairStructure(t *testing.T) {
	leaves := []string{"a", "b"}
	want := HashString(HashString("a") + HashString("b"))
	if got := MerkleRoot(leaves); got != want {
		t.Errorf("MerkleRoot = %s, want %s", got, want)
	}
}

func TestMerkleRoot_OrderSensitive(t *testing.T) {
	ab := MerkleRoot([]string{"a", "b", "c"})
	ba := MerkleRoot([]string{"b", "a", "c"})
	if ab == ba {
		t.Error("reordering leaves should change the root")
	}
}

func TestMerkleRoot_OddLeafPromoted(t *testing.T) {
	// With three leaves the third is promoted to the second level.
	leaves := []string{"a", "b", "c"}
	pair := HashString(HashString("a") + HashString("b"))
	want := HashString(pair + HashString("c"))
	if got := MerkleRoot(leaves); got != want {
		t.Errorf("MerkleRoot = %s, want %s", got, want)
	}
}

func TestVerify(t *testing.T) {
	data := []byte("receipt payload")
	digest := Hash(data)
	if !Verify(data, digest) {
		t.Error("Verify should accept the matching digest")
	}
	if Verify(data, strings.Repeat("0", 64)) {
		t.Error("Verify should reject a non-matching digest")
	}
}
