package service

import (
	"strings"
	"testing"
)

func TestCredentialService_RoundTrip(t *testing.T) {
	creds := NewCredentialService()

	digest, err := creds.Hash("Azerty12")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "Azerty12" {
		t.Fatalf("digest equals plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("unexpected digest format: %s", digest)
	}
	if !creds.Verify("Azerty12", digest) {
		t.Fatalf("verify rejected the correct password")
	}
	if creds.Verify("azerty12", digest) {
		t.Fatalf("verify accepted a wrong password")
	}
}

func TestCredentialService_DistinctDigests(t *testing.T) {
	creds := NewCredentialService()

	first, err := creds.Hash("Azerty12")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := creds.Hash("Azerty12")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected salted digests to differ")
	}
}

func TestCredentialService_MalformedDigest(t *testing.T) {
	creds := NewCredentialService()

	if creds.Verify("Azerty12", "not-a-bcrypt-digest") {
		t.Fatalf("verify accepted a malformed digest")
	}
	if creds.Verify("Azerty12", "") {
		t.Fatalf("verify accepted an empty digest")
	}
}
