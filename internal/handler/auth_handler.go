package handler

import (
	"net/http"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/auth"
	"gameverse/backend/internal/metrics"
	"gameverse/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	FullName string `json:"fullName" binding:"required,notblank,max=100" example:"Ana Silva"`
	Username string `json:"username" binding:"required,notblank,max=30" example:"ana"`
	Email    string `json:"email" binding:"required,email,max=255" example:"ana@example.com"`
	Password string `json:"password" binding:"required,notblank,max=72" example:"secret123"`
}

// LoginInput defines the structure for user login. Identifier is a username or an email.
type LoginInput struct {
	Identifier string `json:"identifier" binding:"required,notblank" example:"ana"`
	Password   string `json:"password" binding:"required" example:"secret123"`
}

// RegisterResponse is returned after a successful registration. It never includes the password hash.
type RegisterResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username" example:"ana"`
	Email    string    `json:"email" example:"ana@example.com"`
}

type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token"`
}

// MeResponse describes the authenticated user.
type MeResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email" example:"ana@example.com"`
	Username string    `json:"username" example:"ana"`
}

// endregion

type AuthHandler struct {
	auth *service.AuthService
	log  *logrus.Logger
}

func NewAuthHandler(authService *service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, log: log}
}

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new user account. Username and email are unique regardless of case.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  RegisterResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username or email already exists"
// @Failure      429  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), input.FullName, input.Username, input.Email, input.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	metrics.RecordRegistration()

	c.JSON(http.StatusCreated, RegisterResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates with a username or email and a password, and returns a signed token valid for 8 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      429  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), input.Identifier, input.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthorized {
			metrics.RecordLogin("failure")
		}
		respondError(c, h.log, err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	metrics.RecordLogin("success")

	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
}

// Me godoc
// @Summary      Get current user
// @Description  Returns the identity behind the bearer token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MeResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{ID: user.ID, Email: user.Email, Username: user.Username})
}

// endregion

// actor returns the authenticated caller, writing a 401 when the route was reached without one.
func actor(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return uuid.Nil, false
	}
	return userID, true
}
