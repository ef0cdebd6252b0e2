package jwtware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperstack/blogd/auth"
	"github.com/paperstack/blogd/auth/jwtware"
)

type gateIdentity struct {
	id   string
	role string
}

func (g gateIdentity) ID() string       { return g.id }
func (g gateIdentity) Username() string { return "" }
func (g gateIdentity) Email() string    { return "" }
func (g gateIdentity) Role() string     { return g.role }

func newGateApp(requiredRole string) (*fiber.App, auth.TokenService) {
	ts := auth.NewTokenService([]byte("gate-secret"), time.Hour, "test-issuer", nil, nil)

	app := fiber.New()
	app.Use(jwtware.New(jwtware.Config{
		TokenValidator: auth.GateValidator(ts),
		ContextKey:     "user",
		RequiredRole:   requiredRole,
	}))
	app.Get("/protected", func(c *fiber.Ctx) error {
		claims := jwtware.ClaimsFromCtx(c, "user")
		if claims == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{
			"user_id": claims.UserID(),
			"role":    claims.Role(),
		})
	})

	return app, ts
}

func errBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	out := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out["error"]
}

func TestGateRejectsMissingCredential(t *testing.T) {
	app, _ := newGateApp("")

	t.Run("no header at all", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "No token provided", errBody(t, resp))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGateRejectsInvalidCredential(t *testing.T) {
	app, _ := newGateApp("")

	t.Run("garbage token returns 403, not 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Invalid token", errBody(t, resp))
	})

	t.Run("expired token returns 403", func(t *testing.T) {
		expired := auth.NewTokenService([]byte("gate-secret"), -time.Minute, "test-issuer", nil, nil)
		token, err := expired.Generate(gateIdentity{id: "abc", role: "user"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("token signed under another secret returns 403", func(t *testing.T) {
		other := auth.NewTokenService([]byte("other-secret"), time.Hour, "test-issuer", nil, nil)
		token, err := other.Generate(gateIdentity{id: "abc", role: "user"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestGateAttachesClaims(t *testing.T) {
	app, ts := newGateApp("")

	token, err := ts.Generate(gateIdentity{id: "user-1", role: "admin"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "user-1", out["user_id"])
	assert.Equal(t, "admin", out["role"])
}

func TestGateRequiredRole(t *testing.T) {
	app, ts := newGateApp("admin")

	t.Run("holder of the role passes", func(t *testing.T) {
		token, err := ts.Generate(gateIdentity{id: "user-1", role: "admin"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("other roles are rejected with 403", func(t *testing.T) {
		token, err := ts.Generate(gateIdentity{id: "user-2", role: "user"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
