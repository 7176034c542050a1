package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/config"
	"github.com/upb/equipment-portal/middleware"
	"github.com/upb/equipment-portal/models"
	"github.com/upb/equipment-portal/repositories/mocks"
	"github.com/upb/equipment-portal/services/equipment"
	"github.com/upb/equipment-portal/services/users"
	"go.uber.org/zap"
)

type testEnv struct {
	deps      *app.Dependencies
	users     *mocks.UserRepository
	equipment *mocks.EquipmentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	userRepo := new(mocks.UserRepository)
	equipmentRepo := new(mocks.EquipmentRepository)

	t.Cleanup(func() {
		userRepo.AssertExpectations(t)
		equipmentRepo.AssertExpectations(t)
	})

	return &testEnv{
		deps: &app.Dependencies{
			Config: &config.Config{
				Auth: config.AuthConfig{TokenSecret: "test-secret", CookieName: "token"},
			},
			Logger:           logger,
			Users:            userRepo,
			Equipment:        equipmentRepo,
			UserService:      users.NewService(userRepo, logger),
			EquipmentService: equipment.NewService(equipmentRepo, userRepo, logger),
		},
		users:     userRepo,
		equipment: equipmentRepo,
	}
}

// newRequest builds a request with an optional identity and {id} URL parameter
func newRequest(method, target, body string, identity *middleware.Identity, id string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if identity != nil {
		ctx = middleware.WithIdentity(ctx, identity)
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func identityOf(u *models.User) *middleware.Identity {
	return &middleware.Identity{UserID: u.ID, Role: u.Role, Name: u.Name}
}

func adminIdentity() *middleware.Identity {
	return &middleware.Identity{UserID: uuid.New(), Role: models.RoleAdmin, Name: "admin"}
}

// decodeData unmarshals the "data" envelope of a success response into dst
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}
