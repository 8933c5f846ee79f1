package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// JWTMiddleware xác thực access token và lưu user ID vào context
func JWTMiddleware(secret string) fiber.Handler {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}

	return func(c *fiber.Ctx) error {
		// Lấy token từ header Authorization
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "missing token")
		}

		// Tách từ "Bearer <token>"
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			return unauthorized(c, "invalid token format")
		}

		// Parse và kiểm tra token
		token, err := jwt.Parse(tokenString, keyFunc,
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			return unauthorized(c, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c, "invalid token claims")
		}
		userID, err := claimUserID(claims)
		if err != nil {
			return unauthorized(c, "invalid token claims")
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID trả về user ID đã được JWTMiddleware xác thực
func UserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(userIDKey).(int64)
	return id, ok
}

func claimUserID(claims jwt.MapClaims) (int64, error) {
	switch v := claims[userIDKey].(type) {
	case float64:
		if v <= 0 || v != float64(int64(v)) {
			return 0, fmt.Errorf("invalid user_id %v", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("missing user_id claim")
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
