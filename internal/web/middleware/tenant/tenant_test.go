package tenant_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerdesk/brokerdesk/internal/web/middleware/tenant"
)

const secret = "test-secret"

func newApp(cfg tenant.Config) *fiber.App {
	app := fiber.New()
	app.Use(tenant.New(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(tenant.ID(c) + "/" + tenant.UserID(c))
	})

	return app
}

func TestMiddleware(t *testing.T) {
	cfg := tenant.Config{Secret: secret, Issuer: "identity"}

	valid, err := tenant.Sign(cfg, "t1", "u1", time.Hour)
	require.NoError(t, err)

	expired, err := tenant.Sign(cfg, "t1", "u1", -time.Hour)
	require.NoError(t, err)

	wrongSecret, err := tenant.Sign(tenant.Config{Secret: "other", Issuer: "identity"}, "t1", "u1", time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := tenant.Sign(tenant.Config{Secret: secret, Issuer: "elsewhere"}, "t1", "u1", time.Hour)
	require.NoError(t, err)

	noTenant, err := tenant.Sign(cfg, "", "u1", time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		cfg            tenant.Config
		headers        map[string]string
		expectedStatus int
		expectedBody   string
	}{
		{name: "valid token", cfg: cfg, headers: map[string]string{"Authorization": "Bearer " + valid}, expectedStatus: fiber.StatusOK, expectedBody: "t1/u1"},
		{name: "missing token", cfg: cfg, expectedStatus: fiber.StatusUnauthorized},
		{name: "not a bearer", cfg: cfg, headers: map[string]string{"Authorization": "Basic abc"}, expectedStatus: fiber.StatusUnauthorized},
		{name: "expired", cfg: cfg, headers: map[string]string{"Authorization": "Bearer " + expired}, expectedStatus: fiber.StatusUnauthorized},
		{name: "wrong secret", cfg: cfg, headers: map[string]string{"Authorization": "Bearer " + wrongSecret}, expectedStatus: fiber.StatusUnauthorized},
		{name: "wrong issuer", cfg: cfg, headers: map[string]string{"Authorization": "Bearer " + wrongIssuer}, expectedStatus: fiber.StatusUnauthorized},
		{name: "no tenant claim", cfg: cfg, headers: map[string]string{"Authorization": "Bearer " + noTenant}, expectedStatus: fiber.StatusUnauthorized},
		{
			name:           "headers ignored outside dev mode",
			cfg:            cfg,
			headers:        map[string]string{tenant.HeaderTenantID: "t1", tenant.HeaderUserID: "u1"},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "headers in dev mode",
			cfg:            tenant.Config{DevMode: true},
			headers:        map[string]string{tenant.HeaderTenantID: "t2", tenant.HeaderUserID: "u2"},
			expectedStatus: fiber.StatusOK,
			expectedBody:   "t2/u2",
		},
		{
			name:           "dev mode needs both headers",
			cfg:            tenant.Config{DevMode: true},
			headers:        map[string]string{tenant.HeaderTenantID: "t2"},
			expectedStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			resp, err := newApp(tc.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			if tc.expectedBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tc.expectedBody, string(body))
			}
		})
	}
}
