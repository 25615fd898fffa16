// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"safetrack_backend/internals/configs"
	studentModel "safetrack_backend/internals/features/students/model"
	helper "safetrack_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token and loads the caller's identity
// into Locals: user_id, student_id, user_name, is_admin.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Missing token")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		// The token maps back to exactly one live account; role comes from
		// the row, not the claim, so demotions take effect immediately.
		var student studentModel.StudentModel
		if err := db.Select("id", "student_id", "name", "is_admin", "is_active").
			First(&student, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !student.IsActive {
			return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
		}

		helper.SetRawAccessToken(c, tokenString)
		c.Locals("user_id", student.ID.String())
		c.Locals("student_id", student.StudentID)
		c.Locals("user_name", student.Name)
		c.Locals("is_admin", student.IsAdmin)

		return c.Next()
	}
}

// validateTokenExpiry checks exp with a small leeway.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("missing exp claim")
	}
	if time.Now().Add(-leeway).After(time.Unix(int64(exp), 0)) {
		return errors.New("token expired")
	}
	return nil
}

// extractUserID reads the account UUID from sub (or legacy id) claim.
func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		sub, _ = claims["id"].(string)
	}
	if sub == "" {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}
