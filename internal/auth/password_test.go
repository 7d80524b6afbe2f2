package auth

import (
	"strings"
	"testing"
)

// newTestPasswordService returns a PasswordService with bcrypt cost 4,
// the minimum the library allows. Tests run in milliseconds instead of
// ~60ms per hash.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

func TestHash_ReturnsNonEmptyHash(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("longpass1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Error("Hash() returned empty string")
	}
	// bcrypt hashes always start with $2a$ or $2b$
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
}

func TestHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	// bcrypt salts every hash, so two hashes for the same password differ.
	hash1, _ := ps.Hash("same-password")
	hash2, _ := ps.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password (salt must be random)")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := newTestPasswordService()

	if _, err := ps.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() accepted a password longer than 72 bytes")
	}
}

func TestVerify_MatchingPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("longpass1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "longpass1"); err != nil {
		t.Errorf("Verify() error = %v for matching password", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, _ := ps.Hash("longpass1")

	if err := ps.Verify(hash, "wrongpass"); err == nil {
		t.Error("Verify() accepted the wrong password")
	}
}

func TestVerify_EmptyHashNeverMatches(t *testing.T) {
	ps := newTestPasswordService()

	// OAuth-only accounts store an empty hash; no password may match it.
	if err := ps.Verify("", "anything"); err == nil {
		t.Error("Verify() accepted a password against an empty hash")
	}
}
