package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisvieira/aris-api/internal/api/auth"
	"github.com/arisvieira/aris-api/internal/api/user"
	"github.com/arisvieira/aris-api/internal/config"
	"github.com/arisvieira/aris-api/internal/logging"
)

const testSecret = "test-jwt-secret"

func newTestRouter() (http.Handler, *user.MemoryRepository) {
	cfg := &config.Config{
		JWTSecret: testSecret,
		TokenTTL:  30 * time.Minute,
	}
	repo := user.NewMemoryRepository()
	return SetupRoutes(cfg, repo, logging.New("error")), repo
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, router http.Handler, username, email, password string) user.UserPublic {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/users/", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created user.UserPublic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func login(t *testing.T, router http.Handler, identifier, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", identifier)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response auth.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "bearer", response.TokenType)
	require.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

func TestCreateUser_NeverEchoesPassword(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()
	rec := doJSON(t, router, http.MethodPost, "/users/", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret123")
}

func TestCreateUser_Conflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		username    string
		email       string
		wantMessage string
	}{
		{name: "duplicate username", username: "alice", email: "other@example.com", wantMessage: "username already exists"},
		{name: "duplicate email", username: "someoneelse", email: "alice@example.com", wantMessage: "email already exists"},
		{name: "both collide", username: "alice", email: "alice@example.com", wantMessage: "username already exists"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, _ := newTestRouter()
			register(t, router, "alice", "alice@example.com", "secret123")

			rec := doJSON(t, router, http.MethodPost, "/users/", map[string]string{
				"username": tt.username,
				"email":    tt.email,
				"password": "secret123",
			}, "")

			require.Equal(t, http.StatusConflict, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()
	register(t, router, "alice", "alice@example.com", "secret123")

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "wrong-password")

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect email or password")

	// the unknown-identifier message is identical so logins cannot probe
	// which accounts exist
	form.Set("username", "nobody")
	req = httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recUnknown := httptest.NewRecorder()
	router.ServeHTTP(recUnknown, req)

	require.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, rec.Body.String(), recUnknown.Body.String())
}

func TestListUsers_RequiresToken(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()
	register(t, router, "alice", "alice@example.com", "secret123")

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doJSON(t, router, http.MethodGet, "/users/", nil, tt.token)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "could not validate credentials")
		})
	}
}

func TestListUsers_ExpiredToken(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter()
	register(t, router, "alice", "alice@example.com", "secret123")

	expired, err := auth.NewAuthService(repo, testSecret, -time.Minute).GenerateToken("alice@example.com")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/users/", nil, expired)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not validate credentials")
}

func TestAccountFlow(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()

	alice := register(t, router, "alice", "alice@example.com", "secret123")
	token := login(t, router, "alice", "secret123")

	// the token lists users
	rec := doJSON(t, router, http.MethodGet, "/users/", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed user.UserListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Users, 1)
	assert.Equal(t, alice.ID, listed.Users[0].ID)
	assert.Equal(t, "alice", listed.Users[0].Username)

	// a different identity may not update alice
	register(t, router, "bob", "bob@example.com", "secret123")
	bobToken := login(t, router, "bob@example.com", "secret123")

	rec = doJSON(t, router, http.MethodPut, "/users/"+strconv.FormatInt(alice.ID, 10), map[string]string{
		"username": "hijacked",
		"email":    "hijacked@example.com",
		"password": "secret123",
	}, bobToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not allowed to update this user")

	// a nonexistent id reads as missing even for a non-owner
	rec = doJSON(t, router, http.MethodPut, "/users/99999", map[string]string{
		"username": "ghost",
		"email":    "ghost@example.com",
		"password": "secret123",
	}, bobToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")

	// the owner may update, and the new password logs in
	rec = doJSON(t, router, http.MethodPut, "/users/"+strconv.FormatInt(alice.ID, 10), map[string]string{
		"username": "alice2",
		"email":    "alice2@example.com",
		"password": "newsecret",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated user.UserPublic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, alice.ID, updated.ID)
	assert.Equal(t, "alice2", updated.Username)
	login(t, router, "alice2", "newsecret")
}

func TestUpdateUser_Conflict(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()
	register(t, router, "alice", "alice@example.com", "secret123")
	bob := register(t, router, "bob", "bob@example.com", "secret123")
	bobToken := login(t, router, "bob", "secret123")

	rec := doJSON(t, router, http.MethodPut, "/users/"+strconv.FormatInt(bob.ID, 10), map[string]string{
		"username": "alice",
		"email":    "bob@example.com",
		"password": "secret123",
	}, bobToken)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "username or email already exists")
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()
	alice := register(t, router, "alice", "alice@example.com", "secret123")

	rec := doJSON(t, router, http.MethodDelete, "/users/"+strconv.FormatInt(alice.ID, 10), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user deleted successfully")

	rec = doJSON(t, router, http.MethodDelete, "/users/"+strconv.FormatInt(alice.ID, 10), nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
}

func TestDeletedUserTokenRejected(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()
	alice := register(t, router, "alice", "alice@example.com", "secret123")
	token := login(t, router, "alice", "secret123")

	rec := doJSON(t, router, http.MethodDelete, "/users/"+strconv.FormatInt(alice.ID, 10), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// the token still verifies but no longer resolves to a record
	rec = doJSON(t, router, http.MethodGet, "/users/", nil, token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter()
	rec := doJSON(t, router, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "online")
}
