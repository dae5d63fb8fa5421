package handler

import (
	"net/http"
	"time"

	"gameverse/backend/internal/models"
	"gameverse/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// region --- DTOs ---

type GameInput struct {
	Title       string `json:"title" binding:"required,notblank,max=100" example:"Nebula Run"`
	Description string `json:"description" example:"A roguelike runner through collapsing stars."`
	Genre       string `json:"genre" binding:"max=50" example:"roguelike"`
	Status      string `json:"status" binding:"omitempty,oneof=in-development released beta cancelled" example:"in-development"`
}

func (in GameInput) toService() service.GameInput {
	return service.GameInput{
		Title:       in.Title,
		Description: in.Description,
		Genre:       in.Genre,
		Status:      models.GameStatus(in.Status),
	}
}

type GameResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title" example:"Nebula Run"`
	Description string    `json:"description"`
	Genre       string    `json:"genre" example:"roguelike"`
	Status      string    `json:"status" example:"in-development"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:          game.ID,
		OwnerID:     game.OwnerID,
		Title:       game.Title,
		Description: game.Description,
		Genre:       game.Genre,
		Status:      string(game.Status),
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
}

// endregion

type GameHandler struct {
	games *service.GameService
	log   *logrus.Logger
}

func NewGameHandler(games *service.GameService, log *logrus.Logger) *GameHandler {
	return &GameHandler{games: games, log: log}
}

// region --- Game Handlers ---

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a game owned by the authenticated user.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	game, err := h.games.Create(c.Request.Context(), input.toService(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newGameResponse(*game))
}

// GetGameByID godoc
// @Summary      Get a game by ID
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	game, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game))
}

// GetGames godoc
// @Summary      List games
// @Description  Returns every game, newest first.
// @Tags         games
// @Produce      json
// @Success      200  {array}  GameResponse
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	games, err := h.games.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Overwrites title, description, genre and status. Only the owner may update a game.
// @Tags         games
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      string    true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      204
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Not the owner"
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		// A caller who may not edit the game is told so before hearing about the payload.
		if authErr := h.games.Authorize(c.Request.Context(), id, userID); authErr != nil {
			respondError(c, h.log, authErr)
			return
		}
		respondBindError(c, err)
		return
	}

	if err := h.games.Update(c.Request.Context(), id, input.toService(), userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game. Posts about it are kept with their game reference cleared.
// @Tags         games
// @Security     BearerAuth
// @Param        id   path      string  true  "Game ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.games.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion
