package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mentorlink/internal/config"
	"mentorlink/internal/domain"
	"mentorlink/internal/pkg/jwt"
	"mentorlink/internal/repository/memory"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type userItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type followItem struct {
	MentorID string    `json:"mentor_id"`
	MenteeID string    `json:"mentee_id"`
	Status   string    `json:"status"`
	Mentee   *userItem `json:"mentee"`
}

type recommendedItem struct {
	Mentor         userItem `json:"mentor"`
	MatchedSignals []string `json:"matched_signals"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithStore(t, memory.NewStore())
}

func newTestAppWithStore(t *testing.T, store *memory.Store) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{AppName: "mentorlink-test", Environment: "test"},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}

	a := New(&Container{
		Config:         cfg,
		Logger:         zerolog.Nop(),
		JWT:            jwt.NewHMACServiceFromConfig(cfg.JWT),
		Users:          store.Users(),
		FollowRequests: store.FollowRequests(),
	})
	return a.Fiber
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) semanticResponse {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	require.Equal(t, resp.StatusCode, sr.Status, "envelope status mismatch for %s %s", method, path)
	return sr
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func register(t *testing.T, app *fiber.App, body map[string]any) authData {
	t.Helper()
	if _, ok := body["password"]; !ok {
		body["password"] = "password123"
	}
	sr := call(t, app, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, sr.Status, sr.Message)
	return decode[authData](t, sr.Data)
}

func TestHealth_DatabaseMissingIsUnavailable(t *testing.T) {
	app := newTestApp(t)

	sr := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, sr.Status)
	data := decode[map[string]string](t, sr.Data)
	assert.Equal(t, "down", data["database"])
}

func TestFollowFlow_EndToEnd(t *testing.T) {
	app := newTestApp(t)

	mentor := register(t, app, map[string]any{
		"name": "Asha Rao", "email": "asha@example.com", "role": "MENTOR",
		"domain": "SOFTWARE", "branch": "CSE", "companies": []string{"Google"},
	})
	other := register(t, app, map[string]any{
		"name": "Karan Shah", "email": "karan@example.com", "role": "MENTOR",
		"domain": "MARKETING", "branch": "EEE",
	})
	mentee := register(t, app, map[string]any{
		"name": "Riya Sen", "email": "riya@example.com", "role": "MENTEE",
		"domain": "SOFTWARE", "branch": "ECE", "companies_interested": []string{"Google"},
	})

	sr := call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "riya@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, sr.Status)
	login := decode[authData](t, sr.Data)
	require.NotEmpty(t, login.AccessToken)

	sr = call(t, app, http.MethodGet, "/api/v1/mentors/recommended", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, sr.Status)
	recs := decode[[]recommendedItem](t, sr.Data)
	require.Len(t, recs, 1)
	assert.Equal(t, mentor.User.ID, recs[0].Mentor.ID)
	assert.ElementsMatch(t, []string{"domain", "companies"}, recs[0].MatchedSignals)

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests", login.AccessToken, map[string]string{"mentor_id": mentor.User.ID})
	require.Equal(t, http.StatusOK, sr.Status, sr.Message)
	assert.Equal(t, "PENDING", decode[followItem](t, sr.Data).Status)

	sr = call(t, app, http.MethodGet, "/api/v1/mentors/me/requests/pending", mentor.AccessToken, nil)
	require.Equal(t, http.StatusOK, sr.Status)
	pending := decode[[]followItem](t, sr.Data)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Mentee)
	assert.Equal(t, "riya@example.com", pending[0].Mentee.Email)

	sr = call(t, app, http.MethodGet, "/api/v1/mentors/me/requests/pending", other.AccessToken, nil)
	assert.Empty(t, decode[[]followItem](t, sr.Data))

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests/respond", mentor.AccessToken, map[string]string{"mentee_id": mentee.User.ID, "action": "ACCEPT"})
	require.Equal(t, http.StatusOK, sr.Status, sr.Message)
	assert.Equal(t, "ACCEPTED", decode[followItem](t, sr.Data).Status)

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests/respond", mentor.AccessToken, map[string]string{"mentee_id": mentee.User.ID, "action": "REJECT"})
	assert.Equal(t, http.StatusUnprocessableEntity, sr.Status)

	sr = call(t, app, http.MethodGet, "/api/v1/mentors/me/mentees", mentor.AccessToken, nil)
	require.Equal(t, http.StatusOK, sr.Status)
	mentees := decode[[]userItem](t, sr.Data)
	require.Len(t, mentees, 1)
	assert.Equal(t, mentee.User.ID, mentees[0].ID)

	sr = call(t, app, http.MethodGet, "/api/v1/mentors/recommended", login.AccessToken, nil)
	assert.Empty(t, decode[[]recommendedItem](t, sr.Data))
}

func TestFollowRequests_ErrorMapping(t *testing.T) {
	app := newTestApp(t)

	mentor := register(t, app, map[string]any{"name": "M", "email": "m@example.com", "role": "MENTOR"})
	mentee := register(t, app, map[string]any{"name": "E", "email": "e@example.com", "role": "MENTEE"})
	peer := register(t, app, map[string]any{"name": "P", "email": "p@example.com", "role": "MENTEE"})

	sr := call(t, app, http.MethodPost, "/api/v1/follow-requests", "", map[string]string{"mentor_id": mentor.User.ID})
	assert.Equal(t, http.StatusUnauthorized, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests", mentor.AccessToken, map[string]string{"mentor_id": mentor.User.ID})
	assert.Equal(t, http.StatusForbidden, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests", mentee.AccessToken, map[string]string{"mentor_id": peer.User.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests", mentee.AccessToken, map[string]string{"mentor_id": "00000000-0000-0000-0000-000000000001"})
	assert.Equal(t, http.StatusNotFound, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests/respond", mentor.AccessToken, map[string]string{"mentee_id": mentee.User.ID, "action": "ACCEPT"})
	assert.Equal(t, http.StatusNotFound, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/follow-requests/respond", mentor.AccessToken, map[string]string{"mentee_id": mentee.User.ID, "action": "MAYBE"})
	assert.Equal(t, http.StatusBadRequest, sr.Status)
	assert.Contains(t, decode[map[string]string](t, sr.Data), "action")
}

func TestAuth_RegisterValidationAndConflict(t *testing.T) {
	app := newTestApp(t)

	sr := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "X", "email": "x@example.com", "password": "password123", "role": "ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, sr.Status)
	assert.Contains(t, decode[map[string]string](t, sr.Data), "role")

	register(t, app, map[string]any{"name": "X", "email": "x@example.com", "role": "MENTEE"})
	sr = call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "X", "email": "X@example.com", "password": "password123", "role": "MENTEE",
	})
	assert.Equal(t, http.StatusConflict, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "x@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, sr.Status)
}

func TestAuth_StoreOutageIsServiceUnavailable(t *testing.T) {
	store := memory.NewStore()
	app := newTestAppWithStore(t, store)
	reg := register(t, app, map[string]any{"name": "D", "email": "d@example.com", "role": "MENTEE"})

	store.Fail = fmt.Errorf("users: %w", domain.ErrUnavailable)

	sr := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "E", "email": "e@example.com", "password": "password123", "role": "MENTEE",
	})
	assert.Equal(t, http.StatusServiceUnavailable, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "d@example.com", "password": "password123"})
	assert.Equal(t, http.StatusServiceUnavailable, sr.Status)

	sr = call(t, app, http.MethodPost, "/api/v1/auth/refresh", reg.RefreshToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, sr.Status)
}

func TestAuth_RefreshRotatesTokens(t *testing.T) {
	app := newTestApp(t)
	reg := register(t, app, map[string]any{"name": "R", "email": "r@example.com", "role": "MENTEE"})

	sr := call(t, app, http.MethodPost, "/api/v1/auth/refresh", reg.RefreshToken, nil)
	require.Equal(t, http.StatusOK, sr.Status, sr.Message)
	assert.NotEmpty(t, decode[authData](t, sr.Data).AccessToken)

	sr = call(t, app, http.MethodGet, "/api/v1/users/me", reg.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, sr.Status)
}

func TestUsers_SearchAndProfile(t *testing.T) {
	app := newTestApp(t)

	register(t, app, map[string]any{"name": "Asha Rao", "email": "asha@example.com", "role": "MENTOR", "companies": []string{"Stripe"}})
	register(t, app, map[string]any{"name": "Ashok Kumar", "email": "ashok@example.com", "role": "MENTEE"})
	me := register(t, app, map[string]any{"name": "Vikram", "email": "vikram@example.com", "role": "MENTOR"})

	sr := call(t, app, http.MethodGet, "/api/v1/users/search?name=ash", "", nil)
	require.Equal(t, http.StatusOK, sr.Status)
	assert.Len(t, decode[[]userItem](t, sr.Data), 2)

	sr = call(t, app, http.MethodGet, "/api/v1/users/search?name=ash&role=MENTOR", "", nil)
	found := decode[[]userItem](t, sr.Data)
	require.Len(t, found, 1)
	assert.Equal(t, "Asha Rao", found[0].Name)

	sr = call(t, app, http.MethodGet, "/api/v1/users/search?company=Stripe", "", nil)
	assert.Len(t, decode[[]userItem](t, sr.Data), 1)

	sr = call(t, app, http.MethodGet, "/api/v1/users/search?role=ADMIN", "", nil)
	assert.Equal(t, http.StatusBadRequest, sr.Status)

	sr = call(t, app, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, sr.Status)

	sr = call(t, app, http.MethodGet, "/api/v1/users/me", me.AccessToken, nil)
	require.Equal(t, http.StatusOK, sr.Status)
	assert.Equal(t, "vikram@example.com", decode[userItem](t, sr.Data).Email)

	sr = call(t, app, http.MethodPut, "/api/v1/users/me/image", me.AccessToken, map[string]string{"image_url": "javascript:alert(1)"})
	assert.Equal(t, http.StatusBadRequest, sr.Status)

	sr = call(t, app, http.MethodPut, "/api/v1/users/me/image", me.AccessToken, map[string]string{"image_url": "https://cdn.example.com/v.png"})
	assert.Equal(t, http.StatusOK, sr.Status)
}
