package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"safetrack_backend/internals/configs"
	studentModel "safetrack_backend/internals/features/students/model"
	authHelper "safetrack_backend/internals/features/users/auth/helper"
	helper "safetrack_backend/internals/helpers"
	"safetrack_backend/internals/locale"
)

const accessTTLDefault = 24 * time.Hour

var validate = validator.New()

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}

/* ==========================
   REGISTER
========================== */

type RegisterRequest struct {
	Name              string                          `json:"name" validate:"required,min=1,max=100"`
	StudentID         string                          `json:"student_id" validate:"required,min=1,max=50"`
	Email             string                          `json:"email" validate:"required,email"`
	Password          string                          `json:"password" validate:"required"`
	BloodGroup        string                          `json:"blood_group" validate:"required,max=10"`
	Location          *string                         `json:"location,omitempty" validate:"omitempty,max=255"`
	EmergencyContacts []studentModel.EmergencyContact `json:"emergency_contacts" validate:"omitempty,dive"`
}

func Register(db *gorm.DB, c *fiber.Ctx) error {
	lang := locale.FromCtx(c)

	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.StudentID = strings.TrimSpace(input.StudentID)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	passwordHash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	contacts, err := studentModel.ContactsJSON(input.EmergencyContacts)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid contact list")
	}

	// New accounts are never admin.
	student := studentModel.StudentModel{
		StudentID:         input.StudentID,
		Name:              input.Name,
		Email:             input.Email,
		Password:          passwordHash,
		BloodGroup:        input.BloodGroup,
		Location:          input.Location,
		EmergencyContacts: contacts,
		IsAdmin:           false,
		IsActive:          true,
	}

	if err := db.Create(&student).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, locale.T(lang, locale.KeyUserExists))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, locale.T(lang, locale.KeyUserRegistered), fiber.Map{
		"student_id": student.StudentID,
	})
}

/* ==========================
   LOGIN (student_id + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	lang := locale.FromCtx(c)

	var input struct {
		StudentID string `json:"student_id"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.StudentID = strings.TrimSpace(input.StudentID)
	if input.StudentID == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id and password are required")
	}

	var student studentModel.StudentModel
	if err := db.First(&student, "student_id = ?", input.StudentID).Error; err != nil {
		// Same message for unknown id and bad password.
		return helper.JsonError(c, fiber.StatusUnauthorized, locale.T(lang, locale.KeyInvalidCredentials))
	}
	if !student.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if err := authHelper.CheckPasswordHash(student.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, locale.T(lang, locale.KeyInvalidCredentials))
	}

	return issueToken(c, &student)
}

/* ==========================
   ISSUE TOKEN + Response
========================== */

// BuildAccessClaims binds account identity and role into the token.
func BuildAccessClaims(student *studentModel.StudentModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":        "access",
		"sub":        student.ID.String(),
		"id":         student.ID.String(),
		"student_id": student.StudentID,
		"user_name":  student.Name,
		"is_admin":   student.IsAdmin,
		"iat":        now.Unix(),
		"exp":        now.Add(accessTTLDefault).Unix(),
	}
}

func SignAccessToken(student *studentModel.StudentModel, now time.Time) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, BuildAccessClaims(student, now)).
		SignedString([]byte(secret))
}

func issueToken(c *fiber.Ctx, student *studentModel.StudentModel) error {
	now := nowUTC()

	accessToken, err := SignAccessToken(student, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}

	setAuthCookie(c, accessToken, now)

	view, err := buildAccountView(student)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
	}

	return helper.JsonOK(c, locale.T(locale.FromCtx(c), locale.KeyWelcome), fiber.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
		"user":         view,
	})
}

func buildAccountView(student *studentModel.StudentModel) (fiber.Map, error) {
	contacts, err := student.Contacts()
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"id":                 student.ID,
		"student_id":         student.StudentID,
		"name":               student.Name,
		"email":              student.Email,
		"blood_group":        student.BloodGroup,
		"location":           student.Location,
		"emergency_contacts": contacts,
		"is_admin":           student.IsAdmin,
	}, nil
}

func setAuthCookie(c *fiber.Ctx, accessToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
}

/* ==========================
   LOGOUT
========================== */

// Logout clears the auth cookie. Tokens are stateless; bearer clients just
// discard theirs.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   ADMIN BOOTSTRAP
========================== */

// EnsureAdminAccount creates the triage admin account on first start.
func EnsureAdminAccount(db *gorm.DB) error {
	var count int64
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := authHelper.HashPassword(configs.AdminPassword)
	if err != nil {
		return err
	}
	contacts, _ := studentModel.ContactsJSON(nil)

	location := "Admin Office"
	admin := studentModel.StudentModel{
		StudentID:         "admin",
		Name:              "System Administrator",
		Email:             "admin@safetrack.com",
		Password:          passwordHash,
		BloodGroup:        "Unknown",
		Location:          &location,
		EmergencyContacts: contacts,
		IsAdmin:           true,
		IsActive:          true,
	}
	if err := db.Create(&admin).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	log.Println("✅ Admin account created (student_id: admin)")
	return nil
}
