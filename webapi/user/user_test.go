package user_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/dto"
	"github.com/dinero-app/dinero/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	suite.Suite
	app *testutils.MockApp
}

func (s *UserTestSuite) SetupTest() {
	s.app = testutils.NewMockApp(s.T())
}

func (s *UserTestSuite) TestRegister_Success() {
	s.app.Users.EXPECT().ExistsByEmail(mock.Anything, "a@b.com").Return(false, nil).Once()
	s.app.Users.EXPECT().Create(mock.Anything, mock.MatchedBy(func(c *dto.UserCreate) bool {
		return c.Email == "a@b.com" && c.Password != "pw123456" && c.Currency == "CAD"
	})).Return(nil).Once()

	resp := s.app.MakeRequest("POST", "/users/register", `{"email":"a@b.com","password":"pw123456"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	_, err = uuid.Parse(envelope.Data["id"].(string))
	s.NoError(err)
	s.NotEmpty(envelope.Data["created_at"])
	s.NotContains(envelope.Data, "password")
	s.NotContains(string(body), "HashedPassword")
	s.NotContains(string(body), "$2a$")
}

func (s *UserTestSuite) TestRegister_Duplicate() {
	s.app.Users.EXPECT().ExistsByEmail(mock.Anything, "a@b.com").Return(true, nil).Once()

	resp := s.app.MakeRequest("POST", "/users/register", `{"email":"a@b.com","password":"pw123456"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("Email already registered", testutils.DecodeProblem(s.T(), resp).Detail)
	s.app.Users.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *UserTestSuite) TestRegister_DuplicateRace() {
	s.app.Users.EXPECT().ExistsByEmail(mock.Anything, "a@b.com").Return(false, nil).Once()
	s.app.Users.EXPECT().Create(mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists).Once()

	resp := s.app.MakeRequest("POST", "/users/register", `{"email":"a@b.com","password":"pw123456"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("Email already registered", testutils.DecodeProblem(s.T(), resp).Detail)
}

func (s *UserTestSuite) TestRegister_Validation() {
	testCases := []struct {
		desc string
		body string
	}{
		{desc: "invalid body", body: `{"email":123}`},
		{desc: "invalid email", body: `{"email":"nope","password":"pw123456"}`},
		{desc: "short password", body: `{"email":"a@b.com","password":"pw"}`},
		{desc: "bad currency", body: `{"email":"a@b.com","password":"pw123456","currency":"DOLLARS"}`},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			resp := s.app.MakeRequest("POST", "/users/register", tc.body, "")
			defer resp.Body.Close() //nolint: errcheck
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
			s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
		})
	}
}

func (s *UserTestSuite) TestRegister_MultibytePasswordTooLong() {
	s.app.Users.EXPECT().ExistsByEmail(mock.Anything, "a@b.com").Return(false, nil).Once()

	// 40 runes pass the rune-counting max=72 tag but are 80 bytes.
	password := strings.Repeat("é", 40)
	resp := s.app.MakeRequest("POST", "/users/register",
		fmt.Sprintf(`{"email":"a@b.com","password":"%s"}`, password), "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(testutils.DecodeProblem(s.T(), resp).Detail, "at most 72 bytes")
	s.app.Users.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *UserTestSuite) TestRegister_StoreFailure() {
	s.app.Users.EXPECT().ExistsByEmail(mock.Anything, "a@b.com").Return(false, errors.New("connection reset")).Once()

	resp := s.app.MakeRequest("POST", "/users/register", `{"email":"a@b.com","password":"pw123456"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusInternalServerError, resp.StatusCode)
	s.NotContains(testutils.DecodeProblem(s.T(), resp).Detail, "connection reset")
}

func (s *UserTestSuite) TestMe() {
	userID := uuid.New()
	s.app.Users.EXPECT().Get(mock.Anything, userID).Return(&dto.UserRead{ID: userID, Email: "a@b.com"}, nil).Once()

	resp := s.app.MakeRequest("GET", "/users/me", "", s.app.Token(userID))
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var got dto.UserRead
	testutils.DecodeResponse(s.T(), resp, &got)
	s.Equal(userID, got.ID)
}

func (s *UserTestSuite) TestMe_Unauthorized() {
	resp := s.app.MakeRequest("GET", "/users/me", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.app.MakeRequest("GET", "/users/me", "", "not-a-token")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("Invalid token", testutils.DecodeProblem(s.T(), resp).Detail)
}

func (s *UserTestSuite) TestMe_DeletedUser() {
	userID := uuid.New()
	s.app.Users.EXPECT().Get(mock.Anything, userID).Return(nil, nil).Once()

	resp := s.app.MakeRequest("GET", "/users/me", "", s.app.Token(userID))
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}
