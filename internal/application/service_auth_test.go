package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mobigesture/jobboard/internal/application"
	"github.com/mobigesture/jobboard/internal/domain"
)

func TestSignupHashesPassword(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	user, err := f.service.Signup(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
		"name":     "Jane",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Key == "" {
		t.Fatalf("signup returned empty key")
	}

	stored, ok := user.Fields["password"].(string)
	if !ok || stored == "" {
		t.Fatalf("stored record has no password hash")
	}
	if stored == "hunter2secret" {
		t.Fatalf("password stored in plaintext")
	}
	if !f.hasher.Verify(stored, "hunter2secret") {
		t.Fatalf("stored hash does not verify against the original password")
	}
	if f.hasher.Verify(stored, "hunter2secreT") {
		t.Fatalf("stored hash verified against a different password")
	}
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	cases := []map[string]any{
		{"password": "hunter2secret"},
		{"email": "jane@example.com"},
		{"email": "not-an-email", "password": "hunter2secret"},
		{"email": "jane@example.com", "password": ""},
	}
	for _, body := range cases {
		if _, err := f.service.Signup(ctx, body); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("signup %v: expected invalid input, got %v", body, err)
		}
	}
}

func TestSignupDuplicateKey(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	body := map[string]any{
		"_key":     "fixed-key",
		"email":    "jane@example.com",
		"password": "hunter2secret",
	}
	if _, err := f.service.Signup(ctx, body); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := f.service.Signup(ctx, body); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestLoginIssuesAuthKeyAndSession(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	user, err := f.service.Signup(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
		"name":     "Jane",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	result, err := f.service.Login(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
		"token":    "device-42",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.Authenticated || result.AuthKey == "" {
		t.Fatalf("expected authenticated result with auth key, got %+v", result)
	}
	if _, present := result.User["password"]; present {
		t.Fatalf("login response echoes a password field")
	}
	if result.User["auth_key"] != result.AuthKey {
		t.Fatalf("auth_key not merged into user record")
	}

	session, err := f.sessions.Get(ctx, result.SessionID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if session.UID != user.Key {
		t.Fatalf("session uid = %q, want %q", session.UID, user.Key)
	}

	verify, err := f.service.VerifyAuth(ctx, result.AuthKey)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !verify.Authorized {
		t.Fatalf("freshly issued auth key did not verify")
	}
	if verify.Record["token"] != "device-42" {
		t.Fatalf("opaque token field not carried into auth record: %+v", verify.Record)
	}
	if _, present := verify.Record["password"]; present {
		t.Fatalf("auth record contains a password field")
	}
	if _, present := verify.Record["created"]; !present {
		t.Fatalf("auth record missing creation timestamp")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.Signup(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	wrongPassword, err := f.service.Login(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "not-the-password",
	})
	if err != nil {
		t.Fatalf("wrong-password login errored: %v", err)
	}
	unknownEmail, err := f.service.Login(ctx, map[string]any{
		"email":    "nobody@example.com",
		"password": "hunter2secret",
	})
	if err != nil {
		t.Fatalf("unknown-email login errored: %v", err)
	}

	if wrongPassword.Authenticated || unknownEmail.Authenticated {
		t.Fatalf("failed login reported as authenticated")
	}
	if wrongPassword.Message != unknownEmail.Message {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword.Message, unknownEmail.Message)
	}
	if wrongPassword.Message != application.MessageLoginFailed {
		t.Fatalf("unexpected failure message %q", wrongPassword.Message)
	}
	if wrongPassword.AuthKey != "" || unknownEmail.AuthKey != "" {
		t.Fatalf("failed login issued an auth key")
	}
	if wrongPassword.SessionID != "" || unknownEmail.SessionID != "" {
		t.Fatalf("failed login created a session")
	}
}

func TestVerifyUnknownKeyIsNegativeResult(t *testing.T) {
	t.Parallel()

	f := newFixture()

	result, err := f.service.VerifyAuth(context.Background(), "never-issued")
	if err != nil {
		t.Fatalf("verify on unknown key errored: %v", err)
	}
	if result.Authorized {
		t.Fatalf("unknown key verified as authorized")
	}
	if result.Message != application.MessageUnauthorized {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestLogoutRevokesAuthKey(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.Signup(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	login, err := f.service.Login(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
	})
	if err != nil || !login.Authenticated {
		t.Fatalf("login failed: %v %+v", err, login)
	}

	if err := f.service.Logout(ctx, login.AuthKey); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	verify, err := f.service.VerifyAuth(ctx, login.AuthKey)
	if err != nil {
		t.Fatalf("verify after logout errored: %v", err)
	}
	if verify.Authorized {
		t.Fatalf("auth key still valid after logout")
	}

	if err := f.service.Logout(ctx, login.AuthKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second logout: expected not found, got %v", err)
	}
}

func TestRepeatedLoginsIssueIndependentKeys(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.Signup(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	first, err := f.service.Login(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
	})
	if err != nil || !first.Authenticated {
		t.Fatalf("first login failed: %v %+v", err, first)
	}
	second, err := f.service.Login(ctx, map[string]any{
		"email":    "jane@example.com",
		"password": "hunter2secret",
	})
	if err != nil || !second.Authenticated {
		t.Fatalf("second login failed: %v %+v", err, second)
	}

	if first.AuthKey == second.AuthKey {
		t.Fatalf("repeated logins reused the same auth key")
	}
	for _, key := range []string{first.AuthKey, second.AuthKey} {
		verify, err := f.service.VerifyAuth(ctx, key)
		if err != nil || !verify.Authorized {
			t.Fatalf("auth key %s not valid: %v", key, err)
		}
	}

	if err := f.service.Logout(ctx, first.AuthKey); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	verify, err := f.service.VerifyAuth(ctx, second.AuthKey)
	if err != nil || !verify.Authorized {
		t.Fatalf("second auth key invalidated by logging out the first")
	}
}

func TestDuplicateEmailsLoginPicksFirstMatch(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	older, err := f.service.Signup(ctx, map[string]any{
		"email":    "shared@example.com",
		"password": "older-password",
	})
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := f.service.Signup(ctx, map[string]any{
		"email":    "shared@example.com",
		"password": "newer-password",
	}); err != nil {
		t.Fatalf("second signup failed: %v", err)
	}

	// The oldest record wins, so only its password authenticates.
	result, err := f.service.Login(ctx, map[string]any{
		"email":    "shared@example.com",
		"password": "older-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.Authenticated {
		t.Fatalf("login with first-match password rejected")
	}
	if result.User[domain.FieldKey] != older.Key {
		t.Fatalf("login resolved to %v, want first-created %s", result.User[domain.FieldKey], older.Key)
	}

	newer, err := f.service.Login(ctx, map[string]any{
		"email":    "shared@example.com",
		"password": "newer-password",
	})
	if err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if newer.Authenticated {
		t.Fatalf("login authenticated against a shadowed duplicate record")
	}
}
