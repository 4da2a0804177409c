package middleware

import (
	"strings"

	"kyarte_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth validates HS256 bearer tokens. With an empty secret the
// middleware is a no-op, which keeps local development friction-free.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return apperr.Unauthorized("missing bearer token")
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return apperr.InvalidToken("invalid or expired token")
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, err := claims.GetSubject(); err == nil && sub != "" {
				c.Locals("subject", sub)
			}
		}
		return c.Next()
	}
}
