package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/mobigesture/jobboard/internal/domain"
)

// Signup hashes the supplied password and persists the remaining fields as a
// new user document. The plaintext never reaches the store.
func (s *Service) Signup(ctx context.Context, fields map[string]any) (domain.Document, error) {
	email, err := requireEmail(fields)
	if err != nil {
		return domain.Document{}, err
	}
	password, err := requireString(fields, "password")
	if err != nil {
		return domain.Document{}, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Document{}, fmt.Errorf("hash password: %w", err)
	}

	rec := cloneFields(fields)
	delete(rec, "password")
	rec["password"] = hashed
	rec["email"] = email

	user, err := s.documents.Save(ctx, domain.CollectionUsers, rec)
	if err != nil {
		return domain.Document{}, err
	}

	slog.Default().InfoContext(ctx, "user signed up",
		"module", "application",
		"operation", "signup",
		"outcome", "success",
		"user_key", user.Key,
	)
	return user, nil
}

// Login verifies credentials and, on success, issues a session and an auth
// token document. A wrong password and an unknown email share one code path
// and one response shape, so neither outcome leaks which half was wrong.
func (s *Service) Login(ctx context.Context, body map[string]any) (LoginResult, error) {
	email, err := requireEmail(body)
	if err != nil {
		return LoginResult{}, err
	}
	password, err := requireString(body, "password")
	if err != nil {
		return LoginResult{}, err
	}

	var storedHash string
	user, err := s.documents.FirstByField(ctx, domain.CollectionUsers, "email", email)
	switch {
	case err == nil:
		storedHash, _ = user.Fields["password"].(string)
	case errors.Is(err, domain.ErrNotFound):
		// Fall through with an empty hash: verification fails the same way
		// it does for a wrong password.
	default:
		return LoginResult{}, err
	}

	if !s.hasher.Verify(storedHash, password) {
		slog.Default().InfoContext(ctx, "login rejected",
			"module", "application",
			"operation", "login",
			"outcome", "rejected",
		)
		return LoginResult{Message: MessageLoginFailed}, nil
	}

	// Neither the plaintext nor the stored hash may travel any further.
	receipt := cloneFields(body)
	delete(receipt, "password")
	delete(user.Fields, "password")
	receipt["created"] = s.nowFn()

	auth, err := s.documents.Save(ctx, domain.CollectionAuths, receipt)
	if err != nil {
		return LoginResult{}, fmt.Errorf("save auth token: %w", err)
	}

	session, err := s.sessions.Create(ctx, user.Key)
	if err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	result := user.WithMeta()
	result["auth_key"] = auth.Key

	slog.Default().InfoContext(ctx, "login succeeded",
		"module", "application",
		"operation", "login",
		"outcome", "success",
		"user_key", user.Key,
		"session_id", session.ID,
	)
	return LoginResult{
		Authenticated: true,
		User:          result,
		AuthKey:       auth.Key,
		SessionID:     session.ID,
	}, nil
}

// VerifyAuth answers "is this caller authenticated" for a previously issued
// auth key. An unknown key is a negative result, not an error.
func (s *Service) VerifyAuth(ctx context.Context, authKey string) (VerifyResult, error) {
	authKey = strings.TrimSpace(authKey)
	if authKey == "" {
		return VerifyResult{}, fmt.Errorf("%w: auth key is required", domain.ErrInvalidInput)
	}

	auth, err := s.documents.Get(ctx, domain.CollectionAuths, authKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return VerifyResult{Message: MessageUnauthorized}, nil
		}
		return VerifyResult{}, err
	}
	return VerifyResult{Authorized: true, Record: auth.WithMeta()}, nil
}

// Logout revokes an auth token by key. Unlike VerifyAuth, removing an absent
// token is a not-found error rather than a silent no-op.
func (s *Service) Logout(ctx context.Context, authKey string) error {
	authKey = strings.TrimSpace(authKey)
	if authKey == "" {
		return fmt.Errorf("%w: auth_key is required", domain.ErrInvalidInput)
	}
	if err := s.documents.Remove(ctx, domain.CollectionAuths, authKey); err != nil {
		return err
	}
	slog.Default().InfoContext(ctx, "auth token revoked",
		"module", "application",
		"operation", "logout",
		"outcome", "success",
		"auth_key", authKey,
	)
	return nil
}

func requireString(fields map[string]any, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s must be a non-empty string", domain.ErrInvalidInput, name)
	}
	return value, nil
}

func requireEmail(fields map[string]any) (string, error) {
	email, err := requireString(fields, "email")
	if err != nil {
		return "", err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	return email, nil
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
