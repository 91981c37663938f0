package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/cadefab1n/cardapio-backend/pkg/auth"
	"github.com/cadefab1n/cardapio-backend/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSessionMintsAndEchoes(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(config.CartConfig{SessionCookie: "cart_session", SnapshotTTL: time.Hour}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = CartSessionFromContext(r.Context())
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get("X-Cart-Session"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart_session", cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
}

func TestCartSessionReusesHeader(t *testing.T) {
	t.Parallel()

	sessionID := uuid.NewString()
	var seen string
	handler := CartSession(config.CartConfig{SessionCookie: "cart_session"}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = CartSessionFromContext(r.Context())
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Cart-Session", sessionID)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, sessionID, seen)
}

func TestCartSessionRejectsMalformedID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(config.CartConfig{SessionCookie: "cart_session"}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = CartSessionFromContext(r.Context())
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Cart-Session", "../../etc/passwd")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotEmpty(t, seen)
	assert.NotEqual(t, "../../etc/passwd", seen)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	t.Parallel()

	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "cardapio", ExpirationMinutes: 60}
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	t.Parallel()

	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "cardapio", ExpirationMinutes: 60}
	adminID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		AdminID: adminID,
		Email:   "admin@example.com",
	})
	require.NoError(t, err)

	var seenID, seenEmail string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = AdminIDFromContext(r.Context())
		seenEmail = AdminEmailFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, adminID.String(), seenID)
	assert.Equal(t, "admin@example.com", seenEmail)
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	t.Parallel()

	handler := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
