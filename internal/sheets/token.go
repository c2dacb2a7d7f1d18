package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// CredentialSelector names one of the two credential slots.
type CredentialSelector int

// The two slots: the primary club spreadsheet and the secondary roster
// spreadsheet. This is a static two-way branch, not a multi-tenant router.
const (
	CredentialPrimary CredentialSelector = iota
	CredentialUser
)

// tokenExpiryMargin is how long before a token's real expiry it stops being
// reused. Service-account tokens live 3600s; refreshing 100s early keeps a
// request from going out with a token that dies in flight.
const tokenExpiryMargin = 100 * time.Second

// TokenManager mints and caches short-lived bearer tokens for up to two
// service-account credentials. A slot without a configured credential is not
// an error; callers fall back to API-key or unauthenticated access.
type TokenManager struct {
	sources [2]oauth2.TokenSource
}

// NewTokenManager loads the configured service-account key files. Either path
// may be empty, leaving that slot absent.
func NewTokenManager(ctx context.Context, primaryKeyPath, userKeyPath string) (*TokenManager, error) {
	tm := &TokenManager{}

	if primaryKeyPath != "" {
		src, err := jwtTokenSource(ctx, primaryKeyPath)
		if err != nil {
			return nil, fmt.Errorf("primary service account: %w", err)
		}
		tm.sources[CredentialPrimary] = src
	}
	if userKeyPath != "" {
		src, err := jwtTokenSource(ctx, userKeyPath)
		if err != nil {
			return nil, fmt.Errorf("user service account: %w", err)
		}
		tm.sources[CredentialUser] = src
	}

	return tm, nil
}

// jwtTokenSource builds a caching token source from a service-account key
// file. ReuseTokenSourceWithExpiry serializes concurrent refreshes, so two
// callers hitting an expired slot trigger a single exchange.
func jwtTokenSource(ctx context.Context, keyPath string) (oauth2.TokenSource, error) {
	jsonKey, err := os.ReadFile(keyPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	return oauth2.ReuseTokenSourceWithExpiry(nil, jwtConfig.TokenSource(ctx), tokenExpiryMargin), nil
}

// Configured reports whether the slot holds a credential.
func (tm *TokenManager) Configured(sel CredentialSelector) bool {
	return tm.sources[sel] != nil
}

// TokenSource returns the slot's caching token source, or false when the
// slot has no credential.
func (tm *TokenManager) TokenSource(sel CredentialSelector) (oauth2.TokenSource, bool) {
	src := tm.sources[sel]
	return src, src != nil
}

// Token returns a valid bearer token for the slot. The second return is false
// when no credential is configured; an error means the exchange itself
// failed and is surfaced to the caller without retry.
func (tm *TokenManager) Token(sel CredentialSelector) (string, bool, error) {
	src := tm.sources[sel]
	if src == nil {
		return "", false, nil
	}
	tok, err := src.Token()
	if err != nil {
		return "", true, fmt.Errorf("token exchange failed: %w", err)
	}
	return tok.AccessToken, true, nil
}
