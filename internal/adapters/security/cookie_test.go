package security

import (
	"strings"
	"testing"
	"time"
)

func TestCookieSignerRoundTrip(t *testing.T) {
	t.Parallel()

	for _, algorithm := range []string{"sha256", "sha384", "sha512"} {
		signer, err := NewCookieSigner("topsecret", algorithm, 5*time.Minute)
		if err != nil {
			t.Fatalf("%s: new signer failed: %v", algorithm, err)
		}
		value, err := signer.Sign("session-123")
		if err != nil {
			t.Fatalf("%s: sign failed: %v", algorithm, err)
		}
		got, err := signer.Parse(value)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", algorithm, err)
		}
		if got != "session-123" {
			t.Fatalf("%s: parsed %q, want session-123", algorithm, got)
		}
	}
}

func TestCookieSignerRejectsTampering(t *testing.T) {
	t.Parallel()

	signer, err := NewCookieSigner("topsecret", "sha256", 5*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}
	value, err := signer.Sign("session-123")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape %q", value)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)
	if _, err := signer.Parse(tampered); err == nil {
		t.Fatalf("tampered cookie value parsed")
	}

	other, err := NewCookieSigner("othersecret", "sha256", 5*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}
	if _, err := other.Parse(value); err == nil {
		t.Fatalf("cookie signed with a different secret parsed")
	}
}

func TestCookieSignerRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := NewCookieSigner("topsecret", "sha256", -time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}
	value, err := signer.Sign("session-123")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := signer.Parse(value); err == nil {
		t.Fatalf("expired cookie value parsed")
	}
}

func TestCookieSignerRejectsUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	if _, err := NewCookieSigner("topsecret", "md5", 5*time.Minute); err == nil {
		t.Fatalf("expected error for unsupported algorithm")
	}
	if _, err := NewCookieSigner("", "sha256", 5*time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
