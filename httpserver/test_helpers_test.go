//nolint:unused
package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviecatalog/httpserver"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/jwt"
	"moviecatalog/user"

	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.AccessTokenSecret = testAccessSecret
	cfg.Auth.RefreshTokenSecret = testRefreshSecret
	cfg.Auth.AccessTTL = 300
	cfg.Auth.RefreshTTL = 86400
	return cfg
}

func testTokens() *jwt.JWTProvider {
	return jwt.NewJWTProvider(testAccessSecret, testRefreshSecret, 5*time.Minute, 24*time.Hour)
}

// signTestToken returns an access token for user 1 with role.
func signTestToken(t testing.TB, role user.Role) string {
	t.Helper()
	token, err := testTokens().GenerateAccessToken(user.User{ID: 1, Email: "admin@mail.com", Role: role})
	require.NoError(t, err)
	return token
}

func signRefreshToken(t testing.TB, id int64) string {
	t.Helper()
	token, err := testTokens().GenerateRefreshToken(user.User{ID: id, Email: "user@mail.com", Role: user.RoleUser})
	require.NoError(t, err)
	return token
}

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func decodeAPIResult(t testing.TB, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

// newRequest builds a request with an optional JSON body and bearer token.
func newRequest(t testing.TB, method, path string, body interface{}, token string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(server *httpserver.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}
