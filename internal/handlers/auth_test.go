package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hinagiku/taskboard-api/internal/dto"
	"github.com/stretchr/testify/require"
)

func registerPayload(email, username, password string) []byte {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	return body
}

func (env *testEnv) login(email, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "a@x.com", response.Email)
	require.Equal(t, "a", response.Username)
	require.True(t, response.IsActive)
	require.False(t, response.IsAdmin)
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "other", "p"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "email already registered")
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/auth/register", "", registerPayload("b@x.com", "a", "p"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "username already taken")
}

func TestAuthHandler_Register_EmailConflictTakesPriority(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	// Both email and username are taken; the email conflict is reported
	w = env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "email already registered")
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.login("a@x.com", "p")
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	require.Equal(t, "bearer", response.TokenType)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.login("a@x.com", "wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	w := env.login("nobody@x.com", "p")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_DeactivatedAccount(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, env.db.Table("users").
		Where("email = ?", "a@x.com").
		Update("is_active", false).Error)

	w = env.login("a@x.com", "p")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", registerPayload("a@x.com", "a", "p"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.login("a@x.com", "p")
	require.Equal(t, http.StatusOK, w.Code)

	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))

	w = env.do(http.MethodGet, "/auth/me", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "a@x.com", response.Email)
}

func TestAuthHandler_Me_NoToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestAuthHandler_Me_TamperedToken(t *testing.T) {
	env := setupTestEnv(t)

	user := env.createUser(t, "a@x.com", "a")
	token := env.tokenFor(t, user)

	tampered := token[:len(token)-4] + "XXXX"
	w := env.do(http.MethodGet, "/auth/me", tampered, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_DeletedSubject(t *testing.T) {
	env := setupTestEnv(t)

	user := env.createUser(t, "a@x.com", "a")
	token := env.tokenFor(t, user)

	require.NoError(t, env.db.Delete(user).Error)

	w := env.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_TokenNeverResolvesToAnotherUser(t *testing.T) {
	env := setupTestEnv(t)

	userA := env.createUser(t, "a@x.com", "a")
	env.createUser(t, "b@x.com", "b")

	w := env.do(http.MethodGet, "/auth/me", env.tokenFor(t, userA), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, userA.ID, response.ID)
	require.Equal(t, "a@x.com", response.Email)
}

func TestPing(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/ping", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
