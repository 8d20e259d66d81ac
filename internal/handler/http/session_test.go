package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdk788-art/ec-agent/internal/session"
)

func doJSON(env *testEnv, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// POST /api/v1/session/login
// ============================================================================

func TestLogin_Success(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(env, http.MethodPost, "/api/v1/session/login", `{"customer_id": 1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var state session.State
	decodeData(t, rec, &state)
	assert.Equal(t, int64(1), state.Customer.ID)
	assert.Empty(t, state.Cart)

	current, ok := env.sessions.Current()
	require.True(t, ok)
	assert.Equal(t, int64(1), current.Customer.ID)
}

func TestLogin_ReplacesActiveSession(t *testing.T) {
	env := newTestEnv()
	env.login(t, 1)
	require.NoError(t, env.sessions.AddToCart(10))

	rec := doJSON(env, http.MethodPost, "/api/v1/session/login", `{"customer_id": 2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	state, ok := env.sessions.Current()
	require.True(t, ok)
	assert.Equal(t, int64(2), state.Customer.ID)
	assert.Empty(t, state.Cart)
}

func TestLogin_UnknownCustomer(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(env, http.MethodPost, "/api/v1/session/login", `{"customer_id": 99}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestLogin_MissingCustomerID(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(env, http.MethodPost, "/api/v1/session/login", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestLogin_InvalidJSON(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(env, http.MethodPost, "/api/v1/session/login", `{invalid`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// POST /api/v1/session/logout
// ============================================================================

func TestLogout_Success(t *testing.T) {
	env := newTestEnv()
	env.login(t, 1)

	rec := doJSON(env, http.MethodPost, "/api/v1/session/logout", ``)

	require.Equal(t, http.StatusOK, rec.Code)
	_, ok := env.sessions.Current()
	assert.False(t, ok)
}

func TestLogout_NoActiveSession(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(env, http.MethodPost, "/api/v1/session/logout", ``)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// GET /api/v1/session
// ============================================================================

func TestCurrentSession_Active(t *testing.T) {
	env := newTestEnv()
	env.login(t, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state session.State
	decodeData(t, rec, &state)
	assert.Equal(t, int64(2), state.Customer.ID)
}

func TestCurrentSession_None(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Cart
// ============================================================================

func TestAddToCart_Success(t *testing.T) {
	env := newTestEnv()
	env.login(t, 1)

	rec := doJSON(env, http.MethodPost, "/api/v1/session/cart/12", ``)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(env, http.MethodPost, "/api/v1/session/cart/10", ``)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Cart []int64 `json:"cart"`
	}
	decodeData(t, rec, &data)
	assert.Equal(t, []int64{10, 12}, data.Cart)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	env := newTestEnv()
	env.login(t, 1)

	rec := doJSON(env, http.MethodPost, "/api/v1/session/cart/999", ``)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddToCart_NoSession(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(env, http.MethodPost, "/api/v1/session/cart/10", ``)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCart(t *testing.T) {
	env := newTestEnv()
	env.login(t, 1)
	require.NoError(t, env.sessions.AddToCart(11))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/cart", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Cart []int64 `json:"cart"`
	}
	decodeData(t, rec, &data)
	assert.Equal(t, []int64{11}, data.Cart)
}
