package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/config"
	"github.com/upb/equipment-portal/repositories/postgres"
	"github.com/upb/equipment-portal/token"
	"github.com/upb/equipment-portal/utils"
	"go.uber.org/zap"
)

const testSecret = "routes-test-secret"

var principalQuery = regexp.QuoteMeta(`SELECT id, name, role FROM users WHERE id = $1`)

type testServer struct {
	handler http.Handler
	mock    sqlmock.Sqlmock
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	cfg := &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			RequestTimeout:     5 * time.Second,
			MaxBodyBytes:       1 << 20,
			CORSAllowedOrigins: []string{"http://localhost:*"},
		},
		Auth: config.AuthConfig{TokenSecret: testSecret, CookieName: "token"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := zap.NewNop()
	deps, err := app.NewDependenciesFromDB(cfg, postgres.Wrap(sqlDB, logger), logger)
	require.NoError(t, err)

	return &testServer{handler: SetupRoutes(deps), mock: mock}
}

func (s *testServer) expectPrincipal(id uuid.UUID, name, role string) {
	s.mock.ExpectQuery(principalQuery).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).AddRow(id.String(), name, role))
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func signFor(t *testing.T, id uuid.UUID) string {
	t.Helper()
	signed, err := token.Sign([]byte(testSecret), id, time.Hour)
	require.NoError(t, err)
	return signed
}

func withBearer(req *http.Request, signed string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+signed)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := srv.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("readiness pings the database", func(t *testing.T) {
		srv := newTestServer(t, nil)
		srv.mock.ExpectPing()
		srv.mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		rec := srv.do(httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready when the ping fails", func(t *testing.T) {
		srv := newTestServer(t, nil)
		srv.mock.ExpectPing().WillReturnError(assert.AnError)

		rec := srv.do(httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestIndex(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := srv.do(httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, app.Name, data["name"])
		assert.NotContains(t, data, "identity")
	})

	t.Run("includes the resolved identity", func(t *testing.T) {
		srv := newTestServer(t, nil)
		id := uuid.New()
		srv.expectPrincipal(id, "Ada", "user")

		rec := srv.do(withBearer(httptest.NewRequest(http.MethodGet, "/", nil), signFor(t, id)))

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		identity := data["identity"].(map[string]interface{})
		assert.Equal(t, id.String(), identity["userId"])
		assert.Equal(t, "Ada", identity["name"])
	})
}

func TestAuthorizationBoundary(t *testing.T) {
	t.Run("no credential is unauthenticated", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, utils.CodeUnauthenticated, decodeBody(t, rec)["error"])
	})

	t.Run("invalid credential never reaches the store", func(t *testing.T) {
		srv := newTestServer(t, nil)
		signed, err := token.Sign([]byte("another-secret"), uuid.New(), time.Hour)
		require.NoError(t, err)

		rec := srv.do(withBearer(httptest.NewRequest(http.MethodGet, "/users", nil), signed))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown principal is unauthenticated", func(t *testing.T) {
		srv := newTestServer(t, nil)
		id := uuid.New()
		srv.mock.ExpectQuery(principalQuery).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))

		rec := srv.do(withBearer(httptest.NewRequest(http.MethodGet, "/api/me", nil), signFor(t, id)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user role is forbidden from the admin listing", func(t *testing.T) {
		srv := newTestServer(t, nil)
		id := uuid.New()
		srv.expectPrincipal(id, "Ada", "user")

		rec := srv.do(withBearer(httptest.NewRequest(http.MethodGet, "/api/users", nil), signFor(t, id)))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, utils.CodeForbidden, decodeBody(t, rec)["error"])
	})

	t.Run("cookie credential resolves the identity", func(t *testing.T) {
		srv := newTestServer(t, nil)
		id := uuid.New()
		srv.expectPrincipal(id, "Grace", "admin")

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signFor(t, id)})
		rec := srv.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, id.String(), data["userId"])
		assert.Equal(t, "admin", data["role"])
		assert.Equal(t, "Grace", data["name"])
	})

	t.Run("admin reaches the equipment listing", func(t *testing.T) {
		srv := newTestServer(t, nil)
		id := uuid.New()
		srv.expectPrincipal(id, "Grace", "admin")
		srv.mock.ExpectQuery("SELECT (.+) FROM equipments").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "category", "serial_number", "status", "assigned_to", "notes", "created_at", "updated_at",
			}))

		rec := srv.do(withBearer(httptest.NewRequest(http.MethodGet, "/api/equipments", nil), signFor(t, id)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.CookieName = "portal_token"
	})

	rec := srv.do(httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_token", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestBodyLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 32
	})
	id := uuid.New()
	srv.expectPrincipal(id, "Grace", "admin")

	body := `{"name":"` + strings.Repeat("x", 64) + `","category":"laptop"}`
	req := withBearer(httptest.NewRequest(http.MethodPost, "/api/equipments", strings.NewReader(body)), signFor(t, id))
	req.Header.Set("Content-Type", "application/json")
	rec := srv.do(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNotFoundAndStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello"), 0o600))

	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.StaticDir = dir
	})

	t.Run("serves an existing file", func(t *testing.T) {
		rec := srv.do(httptest.NewRequest(http.MethodGet, "/hello.txt", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello", rec.Body.String())
	})

	t.Run("unknown path is a JSON 404", func(t *testing.T) {
		rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, utils.CodeNotFound, decodeBody(t, rec)["error"])
	})
}
