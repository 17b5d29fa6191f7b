package common_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dinero-app/dinero/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type lookup struct {
	Token string `query:"token" json:"token" validate:"required"`
	Limit int    `query:"limit" json:"limit"`
}

func decodeProblem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

func TestValidate(t *testing.T) {
	err := common.Validate(signup{Email: "nope", Password: "pw"})
	require.Error(t, err)

	var verrs common.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	assert.Equal(t, common.FieldError{Field: "email", Message: "must be a valid email address"}, verrs[0])
	assert.Equal(t, common.FieldError{Field: "password", Message: "must be at least 6 characters"}, verrs[1])
	assert.Contains(t, err.Error(), "email: must be a valid email address")

	assert.NoError(t, common.Validate(signup{Email: "a@b.com", Password: "pw1234"}))
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[signup](c)
		if input == nil {
			return err
		}
		return c.SendString(input.Email)
	})

	post := func(body string) *http.Response {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := post(`{"email":"a@b.com","password":"secret1"}`)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = post(`{"email":`)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", decodeProblem(t, resp).Title)

	resp = post(`{"email":"a@b.com"}`)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	pd := decodeProblem(t, resp)
	assert.Equal(t, "Validation failed", pd.Title)
	assert.NotNil(t, pd.Errors)
}

func TestBindQueryAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[lookup](c)
		if input == nil {
			return err
		}
		return c.JSON(input)
	})

	testCases := []struct {
		desc       string
		target     string
		body       string
		wantStatus int
		wantToken  string
	}{
		{desc: "query only", target: "/?token=q&limit=5", wantStatus: fiber.StatusOK, wantToken: "q"},
		{desc: "body only", target: "/", body: `{"token":"b"}`, wantStatus: fiber.StatusOK, wantToken: "b"},
		{desc: "body wins", target: "/?token=q", body: `{"token":"b"}`, wantStatus: fiber.StatusOK, wantToken: "b"},
		{desc: "missing", target: "/", wantStatus: fiber.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest("POST", tc.target, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest("POST", tc.target, nil)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close() //nolint: errcheck
			require.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantStatus != fiber.StatusOK {
				return
			}
			var got lookup
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tc.wantToken, got.Token)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := common.ParseDate("date", "2024-02-29")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))

	got, err = common.ParseDate("date", "2024-02-29T10:30:00-05:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 29, 15, 30, 0, 0, time.UTC)))

	got, err = common.ParseDate("date", "  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = common.ParseDate("start_date", "2024-02-30")
	var verrs common.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "start_date", verrs[0].Field)
}

func TestParseUUIDQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		id, err := common.ParseUUIDQuery(c, "user_id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		return c.SendString(id.String())
	})

	for target, want := range map[string]int{
		"/?user_id=6f1f3e9a-2c4b-4a7d-9a57-0c1d2e3f4a5b": fiber.StatusOK,
		"/?user_id=6F1F3E9A-2C4B-4A7D-9A57-0C1D2E3F4A5B": fiber.StatusOK,
		"/?user_id=abc": fiber.StatusBadRequest,
		"/":             fiber.StatusBadRequest,
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, target)
		resp.Body.Close() //nolint: errcheck
	}
}
