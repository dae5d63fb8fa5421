package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gameverse/backend/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func TestRespondErrorMapsKinds(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	tests := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.Validation("title is required"), http.StatusBadRequest, `{"error":"title is required"}`},
		{apperr.Unauthorized("invalid credentials"), http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{apperr.Forbidden("not yours"), http.StatusForbidden, `{"error":"not yours"}`},
		{apperr.NotFound("game not found"), http.StatusNotFound, `{"error":"game not found"}`},
		{apperr.Conflict("taken"), http.StatusConflict, `{"error":"taken"}`},
		{errors.New("connection reset"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, tt := range tests {
		c, rec := testContext("/")
		respondError(c, log, tt.err)
		assert.Equal(t, tt.status, rec.Code)
		assert.JSONEq(t, tt.body, rec.Body.String())
	}
}

func TestBindingMessages(t *testing.T) {
	require.NoError(t, RegisterValidators())
	gin.SetMode(gin.TestMode)

	tests := []struct {
		body string
		want string
	}{
		{`{"fullName":"Ana","username":"ana","email":"ana@x.com"}`, "password is required"},
		{`{"fullName":" ","username":"ana","email":"ana@x.com","password":"p"}`, "fullName is required"},
		{`{"fullName":"Ana","username":"ana","email":"nope","password":"p"}`, "email must be a valid email address"},
		{`{not json`, "invalid request body"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		c.Request.Header.Set("Content-Type", "application/json")

		var input RegisterInput
		err := c.ShouldBindJSON(&input)
		require.Error(t, err)
		assert.Equal(t, tt.want, bindingMessage(err), tt.body)
	}
}

func TestPageParams(t *testing.T) {
	c, _ := testContext("/?page=3&limit=5")
	page, limit := pageParams(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 5, limit)

	c, _ = testContext("/?page=-1&limit=abc")
	page, limit = pageParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	c, _ = testContext("/?limit=1000")
	_, limit = pageParams(c)
	assert.Equal(t, 100, limit)
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b"}, 5, 1, 2)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, int64(5), resp.Meta.TotalItems)

	empty := NewPaginatedResponse[string](nil, 0, 1, 20)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}

func TestPathIDRejectsMalformedIDs(t *testing.T) {
	c, rec := testContext("/games/42")
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	_, ok := pathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
