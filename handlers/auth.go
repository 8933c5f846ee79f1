package handlers

import (
	"time"

	"github.com/biosecret/go-todo/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// HandleCreateUser godoc
// @Summary Register a user
// @Tags    Users
// @Param   user body models.CreateUserRequest true "User"
// @Success 201 {object} models.User
// @Failure 409 {object} models.ErrorResponse
// @Router  /users/ [post]
func (h *Handler) HandleCreateUser(c *fiber.Ctx) error {
	req := new(models.CreateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, err)
	}

	user, err := h.Users.Create(c.UserContext(), *req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGetUser godoc
// @Summary Get a user
// @Tags    Users
// @Param   id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router  /users/{id} [get]
func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return unprocessable(c, "id must be an integer")
	}

	user, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// LoginHandler godoc
// @Summary Issue an access token
// @Tags    Auth
// @Param   credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} models.TokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Router  /login [post]
func (h *Handler) LoginHandler(c *fiber.Ctx) error {
	var input models.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, err)
	}

	user, err := h.Users.Authenticate(c.UserContext(), input.Identity(), input.Password)
	if err != nil {
		return respondError(c, err)
	}

	accessToken, err := generateJWT(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(models.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// Tạo JWT token
func generateJWT(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
