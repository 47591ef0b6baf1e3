package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-signing-secret-0123456789")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec
}

func TestNewTokenCodec_EmptySecret(t *testing.T) {
	if _, err := NewTokenCodec(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	signed, expiresAt, err := codec.Issue("42", RolePatient, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute {
		t.Fatalf("expiry too soon: %v remaining", remaining)
	}

	ident, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ident.SubjectID != "42" {
		t.Fatalf("subject = %q, want %q", ident.SubjectID, "42")
	}
	if ident.Role != RolePatient {
		t.Fatalf("role = %q, want %q", ident.Role, RolePatient)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := newTestCodec(t)

	signed, _, err := codec.Issue("42", RoleDoctor, -time.Second)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = codec.Verify(signed)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewTokenCodec("a-completely-different-secret-key")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	signed, _, err := other.Issue("42", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = codec.Verify(signed)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := newTestCodec(t)

	for _, credential := range []string{
		"",
		"not-a-token",
		"a.b",
		"aaaa.bbbb.cccc",
	} {
		if _, err := codec.Verify(credential); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) err = %v, want ErrMalformed", credential, err)
		}
	}
}

func TestTokenCodec_UnknownRole(t *testing.T) {
	codec := newTestCodec(t)

	signed, _, err := codec.Issue("42", Role("superuser"), time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = codec.Verify(signed)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestTokenCodec_MixedCaseRole(t *testing.T) {
	codec := newTestCodec(t)

	signed, _, err := codec.Issue("7", Role("Admin"), time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	ident, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ident.Role != RoleAdmin {
		t.Fatalf("role = %q, want %q", ident.Role, RoleAdmin)
	}
}
