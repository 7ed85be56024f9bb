package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"productapi/internal/service"
	"productapi/pkg/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

// trackingService records whether any service method was reached.
type trackingService struct {
	called bool
}

func (s *trackingService) FindByID(context.Context, string) (*service.ProductDto, error) {
	s.called = true
	return &service.ProductDto{}, nil
}
func (s *trackingService) List(context.Context, service.ListQuery) (*service.ProductListDto, error) {
	s.called = true
	return &service.ProductListDto{Data: []service.ProductDto{}}, nil
}
func (s *trackingService) Create(context.Context, service.ProductPayload) (*service.ProductDto, error) {
	s.called = true
	return &service.ProductDto{}, nil
}
func (s *trackingService) Update(context.Context, string, service.ProductPayload) (*service.ProductDto, error) {
	s.called = true
	return &service.ProductDto{}, nil
}
func (s *trackingService) DeleteByID(context.Context, string) (*service.ProductDto, error) {
	s.called = true
	return &service.ProductDto{}, nil
}
func (s *trackingService) CategoryStats(context.Context) (*service.CategoryStatsDto, error) {
	s.called = true
	return &service.CategoryStatsDto{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededHandler(t *testing.T) http.Handler {
	t.Helper()
	deps := SetupDependencies(testLogger())
	return SetupHttpHandler(deps, testAPIKey)
}

func doRequest(handler http.Handler, method, target, body string, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authed {
		req.Header.Set(web.HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func Test_App_RootAndHealthAreOpen(t *testing.T) {
	handler := seededHandler(t)

	rec := doRequest(handler, http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	rec = doRequest(handler, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_App_UnauthenticatedRequestNeverReachesService(t *testing.T) {
	tracking := &trackingService{}
	handler := SetupHttpHandler(&Dependencies{ProductService: tracking, Logger: testLogger()}, testAPIKey)

	for _, target := range []string{
		"/api/products",
		"/api/products/p1",
		"/api/products/stats/category",
	} {
		rec := doRequest(handler, http.MethodGet, target, "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.JSONEq(t, `{"error":"Unauthorized: invalid or missing API key"}`, rec.Body.String())
	}
	assert.False(t, tracking.called)
}

func Test_App_QueryParameterCredentialIsAccepted(t *testing.T) {
	handler := seededHandler(t)

	rec := doRequest(handler, http.MethodGet, "/api/products?api_key="+testAPIKey, "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_App_ListSeededProducts(t *testing.T) {
	handler := seededHandler(t)

	rec := doRequest(handler, http.MethodGet, "/api/products", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var list service.ProductListDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 10, list.Limit)
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Data, 3)
	assert.Equal(t, "Laptop", list.Data[0].Name)
}

func Test_App_CreateGetUpdateDeleteRoundTrip(t *testing.T) {
	handler := seededHandler(t)

	body := `{"name":"Desk Lamp","description":"LED lamp","price":25,"category":"home","inStock":true}`
	rec := doRequest(handler, http.MethodPost, "/api/products", body, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created service.ProductDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doRequest(handler, http.MethodGet, "/api/products/"+created.ID, "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	update := `{"name":"Desk Lamp Pro","description":"","price":40,"category":"home","inStock":false}`
	rec = doRequest(handler, http.MethodPut, "/api/products/"+created.ID, update, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated service.ProductDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Desk Lamp Pro", updated.Name)
	assert.Empty(t, updated.Description, "update is a full replacement, not a merge")

	rec = doRequest(handler, http.MethodDelete, "/api/products/"+created.ID, "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/api/products/"+created.ID, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_App_CreateWithInvalidPayloadReportsEveryViolation(t *testing.T) {
	handler := seededHandler(t)

	rec := doRequest(handler, http.MethodPost, "/api/products", `{"name":"","price":-1,"inStock":"yes"}`, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "name is required and must be a non-empty string")
	assert.Contains(t, body.Error, "price is required and must be a non-negative number")
	assert.Contains(t, body.Error, "inStock is required and must be a boolean")

	// Nothing was stored.
	rec = doRequest(handler, http.MethodGet, "/api/products", "", true)
	var list service.ProductListDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Total)
}

func Test_App_CategoryStatsOnSeed(t *testing.T) {
	handler := seededHandler(t)

	rec := doRequest(handler, http.MethodGet, "/api/products/stats/category", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":3,"counts":{"electronics":1,"home":1,"stationery":1}}`, rec.Body.String())
}

func Test_App_CategoryFilterIsCaseInsensitive(t *testing.T) {
	handler := seededHandler(t)

	rec := doRequest(handler, http.MethodGet, "/api/products?category=Electronics", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var list service.ProductListDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Laptop", list.Data[0].Name)
}

func Test_App_SearchFiltersByName(t *testing.T) {
	handler := seededHandler(t)

	rec := doRequest(handler, http.MethodGet, "/api/products?search=lap", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var list service.ProductListDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Laptop", list.Data[0].Name)
}
