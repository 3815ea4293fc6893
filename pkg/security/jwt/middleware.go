package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT
// (HS256). On success sets user id (subject) into c.Locals("userId").
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		userID, ok := parseBearer(c.Get("Authorization"), secretBytes, expectedIssuer)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		c.Locals("userId", userID)
		return c.Next()
	}
}

// NewOptionalAuthMiddleware sets c.Locals("userId") when a valid token is
// present but lets anonymous requests through. Used on analysis routes so
// history can be captured for signed-in users without requiring auth.
func NewOptionalAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		if userID, ok := parseBearer(c.Get("Authorization"), secretBytes, expectedIssuer); ok {
			c.Locals("userId", userID)
		}
		return c.Next()
	}
}

// parseBearer validates the Authorization header and returns the token
// subject. Supports both "Bearer <token>" and bare "<token>" formats.
func parseBearer(authHeader string, secret []byte, expectedIssuer string) (string, bool) {
	tokenStr := strings.TrimSpace(authHeader)
	if tokenStr == "" {
		return "", false
	}
	if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		tokenStr = strings.TrimSpace(parts[1])
	}
	if tokenStr == "" {
		return "", false
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", false
	}
	if expectedIssuer != "" && claims.Issuer != expectedIssuer {
		return "", false
	}
	return claims.Subject, true
}
