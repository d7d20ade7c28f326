package utils

import (
	"strings"
	"time"

	"marketplace/backend/config"
	"marketplace/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Session is the authenticated caller carried by the token.
type Session struct {
	UserID uuid.UUID
	Role   models.Role
}

const sessionKey = "session"

func GenerateJWTToken(userID uuid.UUID, role models.Role, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour * time.Duration(cfg.JWTTTLHours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ParseJWTToken(tokenString string, cfg *config.Config) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	role, _ := claims["role"].(string)
	if !models.Role(role).Valid() {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid role in token")
	}

	return &Session{UserID: userID, Role: models.Role(role)}, nil
}

// ExtractSessionFromToken reads the Authorization header; both "Bearer <jwt>" and a bare
// token are accepted.
func ExtractSessionFromToken(c *fiber.Ctx, cfg *config.Config) (*Session, error) {
	tokenString := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if tokenString == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}
	if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "bearer ") {
		tokenString = strings.TrimSpace(tokenString[7:])
	}
	return ParseJWTToken(tokenString, cfg)
}

func SetSession(c *fiber.Ctx, s *Session) {
	c.Locals(sessionKey, s)
}

func CurrentSession(c *fiber.Ctx) (*Session, bool) {
	s, ok := c.Locals(sessionKey).(*Session)
	return s, ok && s != nil
}
