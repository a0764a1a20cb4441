package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"carnet/internal/app/server/config"
	"carnet/internal/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Env: config.EnvLocal,
		DB: config.DB{
			Driver:      config.DriverSQLite,
			DatabaseURI: filepath.Join(t.TempDir(), "carnet.db"),
		},
		Server: config.Server{
			PathPrefix:  "/api",
			CORSOrigins: []string{"https://app.example"},
		},
		Auth: config.Auth{Secret: "test-secret", TokenTTL: time.Hour},
	}

	store, err := storage.Open(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &testServer{t: t, handler: New(store, cfg, slog.Default())}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	resp := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, resp.Code, resp.Body.String())

	resp = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, resp.Code, resp.Body.String())

	var out struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.NotEmpty(s.t, out.Token)
	assert.Equal(s.t, email, out.User.Email)
	assert.NotEmpty(s.t, out.User.ID)
	return out.Token
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var out []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestAPI_PunitionScenario(t *testing.T) {
	s := newTestServer(t)
	token := s.login("a@x.com", "pw1")

	resp := s.do(http.MethodPost, "/api/punitions", token,
		map[string]string{"date": "2024-01-01", "nature": "retard", "raison": "oubli"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)

	list := decodeList(t, s.do(http.MethodGet, "/api/punitions", token, nil))
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
	assert.Equal(t, "retard", list[0]["nature"])

	resp = s.do(http.MethodDelete, "/api/punitions/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Deleted"}`, resp.Body.String())

	assert.Empty(t, decodeList(t, s.do(http.MethodGet, "/api/punitions", token, nil)))
}

func TestAPI_SignupConflict(t *testing.T) {
	s := newTestServer(t)
	s.login("a@x.com", "pw1")

	resp := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "a@x.com", "password": "other"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAPI_LoginDoesNotRevealAccounts(t *testing.T) {
	s := newTestServer(t)
	s.login("a@x.com", "pw1")

	unknown := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "b@x.com", "password": "pw1"})
	wrong := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "pw2"})
	malformed := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email", "password": "pw1"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.Equal(t, unknown.Code, malformed.Code)
	assert.Equal(t, unknown.Body.String(), malformed.Body.String())
}

func TestAPI_OwnerScoping(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@x.com", "pw")
	bob := s.login("bob@x.com", "pw")

	resp := s.do(http.MethodPost, "/api/histoires", alice,
		map[string]string{"title": "t", "date": "2024-01-01", "content": "c"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	id := created["_id"].(string)

	assert.Empty(t, decodeList(t, s.do(http.MethodGet, "/api/histoires", bob, nil)))

	foreign := s.do(http.MethodPut, "/api/histoires/"+id, bob,
		map[string]string{"title": "x", "date": "x", "content": "x"})
	missing := s.do(http.MethodPut, "/api/histoires/does-not-exist", bob,
		map[string]string{"title": "x", "date": "x", "content": "x"})
	assert.Equal(t, http.StatusOK, foreign.Code)
	assert.Equal(t, missing.Code, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())

	foreign = s.do(http.MethodDelete, "/api/histoires/"+id, bob, nil)
	missing = s.do(http.MethodDelete, "/api/histoires/does-not-exist", bob, nil)
	assert.Equal(t, http.StatusOK, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())

	list := decodeList(t, s.do(http.MethodGet, "/api/histoires", alice, nil))
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestAPI_UpdateReplacesAllFields(t *testing.T) {
	s := newTestServer(t)
	token := s.login("a@x.com", "pw1")

	resp := s.do(http.MethodPost, "/api/punitions", token,
		map[string]string{"date": "2024-01-01", "nature": "x", "raison": "y"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	id := created["_id"].(string)

	resp = s.do(http.MethodPut, "/api/punitions/"+id, token,
		map[string]string{"date": "2024-02-02", "nature": "z", "raison": "w"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Updated"}`, resp.Body.String())

	list := decodeList(t, s.do(http.MethodGet, "/api/punitions", token, nil))
	require.Len(t, list, 1)
	assert.Equal(t, map[string]any{
		"_id": id, "user_id": created["user_id"],
		"date": "2024-02-02", "nature": "z", "raison": "w",
	}, list[0])
}

func TestAPI_InventaireQuantity(t *testing.T) {
	s := newTestServer(t)
	token := s.login("a@x.com", "pw1")

	resp := s.do(http.MethodPost, "/api/inventaire", token, map[string]string{"name": "rope"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, float64(1), created["quantity"])
	assert.Equal(t, "", created["category"])
	assert.Equal(t, "", created["description"])

	resp = s.do(http.MethodPost, "/api/inventaire", token, map[string]any{"name": "chain", "quantity": 0})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	list := decodeList(t, s.do(http.MethodGet, "/api/inventaire", token, nil))
	require.Len(t, list, 2)
	assert.Equal(t, "chain", list[1]["name"])
	assert.Equal(t, float64(0), list[1]["quantity"])
}

func TestAPI_EmptyStringsRoundTrip(t *testing.T) {
	s := newTestServer(t)
	token := s.login("a@x.com", "pw1")

	resp := s.do(http.MethodPost, "/api/punitions", token,
		map[string]string{"date": "", "nature": "x", "raison": "y"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	id := created["_id"].(string)

	resp = s.do(http.MethodPut, "/api/punitions/"+id, token,
		map[string]string{"date": "2024-01-01", "nature": "", "raison": "y"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	list := decodeList(t, s.do(http.MethodGet, "/api/punitions", token, nil))
	require.Len(t, list, 1)
	assert.Equal(t, "2024-01-01", list[0]["date"])
	assert.Equal(t, "", list[0]["nature"])
	assert.Equal(t, "y", list[0]["raison"])
}

func TestAPI_MissingFieldIsRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.login("a@x.com", "pw1")

	resp := s.do(http.MethodPost, "/api/punitions", token, map[string]string{"date": "2024-01-01", "nature": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	list := decodeList(t, s.do(http.MethodGet, "/api/punitions", token, nil))
	assert.Empty(t, list)
}

func TestAPI_DocumentsCannotBeUpdated(t *testing.T) {
	s := newTestServer(t)
	token := s.login("a@x.com", "pw1")

	resp := s.do(http.MethodPut, "/api/documents/any", token, map[string]string{"title": "t", "url": "u"})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestAPI_GatedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/punitions", "/api/de10", "/api/auth/me"} {
		resp := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, path)

		resp = s.do(http.MethodGet, path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, path)
	}
}

func TestAPI_Me(t *testing.T) {
	s := newTestServer(t)
	token := s.login("a@x.com", "pw1")

	resp := s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var me map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &me))
	assert.Equal(t, "a@x.com", me["email"])
}

func TestAPI_Infrastructure(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "http_requests_total")

	resp = s.do(http.MethodGet, "/openapi.json", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "/api/punitions")
}

func TestAPI_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/punitions", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
