package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filings/middleware"
	"filings/models"
	"filings/testutil"
)

func whoami(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"id": middleware.UserID(c), "role": c.Locals("role")})
}

func TestJWTMiddleware(t *testing.T) {
	db := testutil.Setup(t)
	u := testutil.CreateUser(t, db, "asha@example.com", models.RoleUser)

	app := fiber.New()
	app.Get("/me", middleware.JWTMiddleware, whoami)

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"not bearer", "Token abc", fiber.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"valid", testutil.Bearer(t, u), fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.code, resp.StatusCode)
		})
	}
}

func TestRequireRole(t *testing.T) {
	db := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "user@example.com", models.RoleUser)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)

	app := fiber.New()
	app.Get("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), whoami)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", testutil.Bearer(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", testutil.Bearer(t, admin))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
