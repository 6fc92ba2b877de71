package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/so-ota-biz/fridge-chef/pkg/authsdk"
	"github.com/so-ota-biz/fridge-chef/pkg/csrf"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		JWTSecret:            testSecret,
		JWTIssuer:            "fridge-chef",
		AccessTokenMaxAge:    DefaultAccessTokenMaxAge,
		RefreshTokenMaxAge:   DefaultRefreshTokenMaxAge,
		CSRFTokenMaxAge:      DefaultCSRFTokenMaxAge,
		CookieSameSite:       "lax",
		ConfirmationTokenTTL: time.Hour,
		DatabaseFile:         filepath.Join(dir, "api.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = ""

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrJWTSecretMissing)
}

func TestApplicationServesAndShutsDown(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)

	srv := httptest.NewServer(application.server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health authsdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, BuildVersion, health.Version)

	application.housekeepingService.Start()
	require.NoError(t, application.Shutdown())
}

func TestSecureCookiesInProduction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		application.housekeepingService.Start()
		_ = application.Shutdown()
	})

	srv := httptest.NewServer(application.server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + authsdk.PathCSRF)
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	require.True(t, cookies[0].Secure)
	require.False(t, cookies[0].HttpOnly)
}

func TestDefaultCSRFCookieLivesOneDay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_FILE", filepath.Join(dir, "api.db"))
	t.Setenv("PEPPER_FILE", filepath.Join(dir, "pepper"))
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		application.housekeepingService.Start()
		_ = application.Shutdown()
	})

	srv := httptest.NewServer(application.server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + authsdk.PathCSRF)
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, csrf.CookieName, cookies[0].Name)
	require.Equal(t, 86400, cookies[0].MaxAge)
}
