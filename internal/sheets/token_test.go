package sheets

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeServiceAccountKey writes a syntactically valid service-account key
// file whose token endpoint points at the given URL.
func writeServiceAccountKey(t *testing.T, tokenURL string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	sa := map[string]string{
		"type":           "service_account",
		"project_id":     "joy-test",
		"private_key_id": "key-1",
		"private_key":    string(pemKey),
		"client_email":   "joy@test.iam.gserviceaccount.com",
		"token_uri":      tokenURL,
	}
	data, err := json.Marshal(sa)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// newTokenEndpoint serves bearer tokens and counts exchanges.
func newTokenEndpoint(t *testing.T, accessToken string, exchanges *int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(exchanges, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, accessToken)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTokenManager_AbsentSlots(t *testing.T) {
	tm, err := NewTokenManager(context.Background(), "", "")
	require.NoError(t, err)

	assert.False(t, tm.Configured(CredentialPrimary))
	assert.False(t, tm.Configured(CredentialUser))

	token, configured, err := tm.Token(CredentialPrimary)
	require.NoError(t, err)
	assert.False(t, configured)
	assert.Empty(t, token)
}

func TestTokenManager_MintsAndReusesToken(t *testing.T) {
	var exchanges int32
	srv := newTokenEndpoint(t, "bearer-abc", &exchanges)
	keyPath := writeServiceAccountKey(t, srv.URL)

	tm, err := NewTokenManager(context.Background(), keyPath, "")
	require.NoError(t, err)
	assert.True(t, tm.Configured(CredentialPrimary))
	assert.False(t, tm.Configured(CredentialUser))

	token, configured, err := tm.Token(CredentialPrimary)
	require.NoError(t, err)
	assert.True(t, configured)
	assert.Equal(t, "bearer-abc", token)

	// A second request within the validity window reuses the cached token.
	token, _, err = tm.Token(CredentialPrimary)
	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(&exchanges))
}

func TestTokenManager_SeparateSlotCredentials(t *testing.T) {
	var primaryExchanges, userExchanges int32
	primarySrv := newTokenEndpoint(t, "bearer-primary", &primaryExchanges)
	userSrv := newTokenEndpoint(t, "bearer-user", &userExchanges)

	tm, err := NewTokenManager(context.Background(),
		writeServiceAccountKey(t, primarySrv.URL),
		writeServiceAccountKey(t, userSrv.URL))
	require.NoError(t, err)

	primary, _, err := tm.Token(CredentialPrimary)
	require.NoError(t, err)
	user, _, err := tm.Token(CredentialUser)
	require.NoError(t, err)

	assert.Equal(t, "bearer-primary", primary)
	assert.Equal(t, "bearer-user", user)
	assert.Equal(t, int32(1), atomic.LoadInt32(&primaryExchanges))
	assert.Equal(t, int32(1), atomic.LoadInt32(&userExchanges))
}

func TestTokenManager_KeyFileErrors(t *testing.T) {
	_, err := NewTokenManager(context.Background(), "/nonexistent/key.json", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read service account key file")

	badPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("not json"), 0o600))
	_, err = NewTokenManager(context.Background(), badPath, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse service account key")
}

func TestTokenManager_ExchangeFailureSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	tm, err := NewTokenManager(context.Background(), writeServiceAccountKey(t, srv.URL), "")
	require.NoError(t, err)

	_, configured, err := tm.Token(CredentialPrimary)
	assert.True(t, configured)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token exchange failed")
}
