package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-housing/internal/config"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	err := mw(func(c echo.Context) error {
		seen = UserID(c)
		return c.NoContent(http.StatusNoContent)
	})(c)
	require.NoError(t, err)
	return rec, seen
}

func TestJWTAuth(t *testing.T) {
	valid := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "5b7c1a52-1f0e-4d7e-9b0c-2d7f1e0a9c11",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "u", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "u"})
	noSub := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	hs512 := sign(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"sub": "u"})

	cases := []struct {
		name   string
		header string
		status int
		user   string
	}{
		{"valid", "Bearer " + valid, http.StatusNoContent, "5b7c1a52-1f0e-4d7e-9b0c-2d7f1e0a9c11"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, ""},
		{"no subject", "Bearer " + noSub, http.StatusUnauthorized, ""},
		{"wrong alg", "Bearer " + hs512, http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, user := runAuth(t, JWTAuth(testSecret), tc.header)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.user, user)
		})
	}
}

func TestDisabledMiddlewaresPassThrough(t *testing.T) {
	rec, _ := runAuth(t, NewRedisCache(config.CacheConfig{Enabled: false}, nil), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = runAuth(t, NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`[1,2]`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `[1,2]`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
}

func TestCacheKeyIncludesParams(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "c"}
	key := func(id string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/listings/"+id, nil), httptest.NewRecorder())
		c.SetPath("/listings/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return cacheKeyFrom(cfg, c)
	}
	assert.NotEqual(t, key("a"), key("b"))
	assert.Equal(t, key("a"), key("a"))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reviews", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/reviews")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}
	assert.Equal(t, "rl:user:anon:route:POST /reviews", buildRateKey(cfg, c))

	c.Set(ContextUserID, "u1")
	cfg.KeyStrategy = ""
	assert.Equal(t, "rl:user:u1:route:POST /reviews", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.1", buildRateKey(cfg, c))
}

func TestCacheableSkipsDegradedResponses(t *testing.T) {
	full := &captureWriter{status: http.StatusOK, size: 10}
	assert.True(t, cacheable(full, http.Header{}, 100))

	noStore := http.Header{}
	noStore.Set(echo.HeaderCacheControl, "no-store")
	assert.False(t, cacheable(full, noStore, 100))

	assert.False(t, cacheable(&captureWriter{status: http.StatusNotFound}, http.Header{}, 100))
	assert.False(t, cacheable(&captureWriter{status: http.StatusOK, size: 101}, http.Header{}, 100))
}
