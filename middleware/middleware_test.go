package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/internal/testdb"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestOptionalAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	app := fiber.New()
	app.Get("/", OptionalAdmin(), func(c *fiber.Ctx) error {
		if IsAdmin(c) {
			return c.SendString("admin")
		}
		return c.SendString("guest")
	})

	cases := map[string]string{
		"":                                          "guest",
		"Bearer " + signed(t, "mw-secret", "admin"): "admin",
		"Bearer " + signed(t, "mw-secret", "buyer"): "guest",
		"Bearer " + signed(t, "other", "admin"):     "guest",
		"Basic abc":                                 "guest",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(body), header)
	}
}

func TestAdminRequiredRejectsOtherRoles(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	app := fiber.New()
	app.Get("/admin", Protected(), AdminRequired(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed(t, "mw-secret", "buyer"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed(t, "mw-secret", "admin"))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestSessionCreatesAndReuses(t *testing.T) {
	database.DB = testdb.New(t)

	app := fiber.New()
	app.Get("/", Session(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentSession(c).ID)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	id := resp.Header.Get(SessionHeader)
	require.NotEmpty(t, id)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, id, cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, id, resp.Header.Get(SessionHeader))

	var count int64
	require.NoError(t, database.DB.Model(&models.Session{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
