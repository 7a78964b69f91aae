package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"estatehub/config"
	"estatehub/internal/app"
	"estatehub/internal/controllers"
	"estatehub/internal/database"
	"estatehub/internal/handlers/middleware"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	fiber   *fiber.App
	svc     services.Service
	db      database.DB
	storage *memoryStorage
}

type memoryStorage struct {
	uploaded []string
}

func (s *memoryStorage) Upload(ctx context.Context, files []services.Upload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		urls = append(urls, "http://storage.local/properties/"+file.Name)
	}
	s.uploaded = append(s.uploaded, urls...)
	return urls, nil
}

func (s *memoryStorage) Remove(ctx context.Context, urls []string) error {
	return nil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := database.NewWithSQL(testdb.New(t))
	repos := repositories.New(db)
	cfg := config.Config{
		GeneralVersion: "test",
		JWTSecret:      "router-test-secret",
		JWTExpiry:      time.Hour,
	}

	metrics := services.NewMetricsService()
	storage := &memoryStorage{}
	svc := services.Service{
		Storage:     storage,
		Transaction: services.NewTransactionService(db),
		Notifier:    services.NewNotifierService(repos, db, services.NotifierDeps{Metrics: metrics, MaxAttempts: 3}),
		Auth:        services.NewAuthService(cfg),
		Metrics:     metrics,
	}

	application := &app.App{
		Database:    db,
		Config:      cfg,
		Middleware:  middleware.New(db, cfg, repos, svc),
		Services:    svc,
		Repos:       repos,
		Controllers: controllers.New(svc, repos, cfg, db),
	}

	server := fiber.New()
	require.NoError(t, Router(server, application))

	return &testServer{fiber: server, svc: svc, db: db, storage: storage}
}

func (s *testServer) token(t *testing.T, user *User) string {
	t.Helper()

	token, err := s.svc.Auth.IssueToken(context.Background(), user)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	}
	return resp.StatusCode, payload
}

func TestRouter_ListingLifecycle(t *testing.T) {
	server := newTestServer(t)
	admin := testdb.User(t, server.db.SQL, "Ada", "Admin", RoleAdmin)
	adminToken := server.token(t, admin)

	status, body := server.do(t, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"first_name": "Lina",
		"last_name":  "Landlord",
		"email":      "Lina@Example.com",
		"password":   "secret-pass",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	landlordToken := body["access_token"].(string)
	assert.Equal(t, "Bearer", body["token_type"])
	assert.Equal(t, "landlord", body["user"].(map[string]any)["role"])

	status, body = server.do(t, fiber.MethodPost, "/api/properties", landlordToken, fiber.Map{
		"title":        "Sea View Flat",
		"price":        "1200",
		"listing_type": "rent",
		"num_of_rooms": 2,
		"city":         "Tunis",
		"state":        "Tunis",
		"street":       "Rue 1",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	property := body["property"].(map[string]any)
	assert.Equal(t, "sea-view-flat", property["slug"])
	assert.Equal(t, "pending", property["status"])
	propertyPath := fmt.Sprintf("/api/properties/%d", int(property["id"].(float64)))

	status, body = server.do(t, fiber.MethodGet, "/api/properties/sea-view-flat", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Tunis", body["property"].(map[string]any)["location"].(map[string]any)["city"])

	status, _ = server.do(t, fiber.MethodPatch, propertyPath+"/status", landlordToken, fiber.Map{"status": "accepted"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = server.do(t, fiber.MethodPatch, propertyPath+"/status", adminToken, fiber.Map{"status": "accepted"})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "accepted", body["property"].(map[string]any)["status"])

	status, _ = server.do(t, fiber.MethodPatch, propertyPath+"/status", adminToken, fiber.Map{"status": "rejected"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body = server.do(t, fiber.MethodGet, "/api/notifications", landlordToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	notifications := body["notifications"].([]any)
	require.Len(t, notifications, 1)
	notification := notifications[0].(map[string]any)
	assert.Equal(t, "status_change", notification["type"])
	assert.Equal(t, "Hello Lina Landlord, your property 'Sea View Flat' has been accepted.", notification["message"])
	assert.Equal(t, "Ada", notification["landlord"].(map[string]any)["first_name"])

	status, body = server.do(t, fiber.MethodGet, "/api/properties/status/pending", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "properties")
	assert.Nil(t, body["properties"])

	status, body = server.do(t, fiber.MethodGet, "/api/properties/search?city=Tunis&num_of_rooms=2", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["properties"], 1)

	// An unencoded plus arrives as a space and still means "more than".
	status, body = server.do(t, fiber.MethodGet, "/api/properties/search?city=Tunis&num_of_rooms=+2", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["properties"])

	status, body = server.do(t, fiber.MethodGet, "/api/properties/search?city=Tunis&num_of_rooms=%2B1", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["properties"], 1)
}

func TestRouter_Errors(t *testing.T) {
	server := newTestServer(t)

	status, _ := server.do(t, fiber.MethodPost, "/api/properties", "", fiber.Map{"title": "x"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = server.do(t, fiber.MethodGet, "/api/notifications", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := server.do(t, fiber.MethodGet, "/api/properties/search?num_of_rooms=many&listing_type=lease", "", nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "num_of_rooms")
	assert.Contains(t, errs, "listing_type")

	status, _ = server.do(t, fiber.MethodGet, "/api/properties/missing-slug", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = server.do(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, ErrInvalidCredentials.Error(), body["error"])
}

func TestRouter_TraceIDAndHealth(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.TraceIDHeader, "trace-123")

	resp, err := server.fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "trace-123", resp.Header.Get(middleware.TraceIDHeader))

	resp, err = server.fiber.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))

	resp, err = server.fiber.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "estatehub_http_requests_total")
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, fiber.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrNotFound), fiber.StatusNotFound},
		{ValidationErrors{"title": "is required"}, fiber.StatusUnprocessableEntity},
		{ErrForbidden, fiber.StatusForbidden},
		{ErrInvalidCredentials, fiber.StatusUnauthorized},
		{ErrInvalidStatus, fiber.StatusUnprocessableEntity},
		{ErrInvalidTransition, fiber.StatusUnprocessableEntity},
		{ErrEmptyUpdate, fiber.StatusUnprocessableEntity},
		{ErrUnknownAmenity, fiber.StatusUnprocessableEntity},
		{ErrNoAdmin, fiber.StatusUnprocessableEntity},
		{ErrAlreadyApproved, fiber.StatusConflict},
		{ErrReviewExists, fiber.StatusConflict},
		{ErrEmailTaken, fiber.StatusConflict},
		{ErrStorageDisabled, fiber.StatusServiceUnavailable},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}
