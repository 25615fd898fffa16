package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"safetrack_backend/internals/features/students/dto"
	"safetrack_backend/internals/features/students/model"
	helper "safetrack_backend/internals/helpers"
	"safetrack_backend/internals/locale"
)

var validate = validator.New()

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

func (sc *StudentController) currentStudent(c *fiber.Ctx) (*model.StudentModel, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userUUID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid UUID format")
	}
	var student model.StudentModel
	if err := sc.DB.First(&student, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	return &student, nil
}

// Me returns the caller's own account view including contacts.
func (sc *StudentController) Me(c *fiber.Ctx) error {
	student, err := sc.currentStudent(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	view, err := dto.FromModel(student)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
	}
	return helper.JsonOK(c, "", view)
}

// UpdateMe applies a partial profile update. A contact list in the body
// replaces the stored list as a whole.
func (sc *StudentController) UpdateMe(c *fiber.Ctx) error {
	student, err := sc.currentStudent(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates, err := req.Updates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid contact list")
	}
	if len(updates) > 0 {
		if err := sc.DB.Model(student).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
		}
		if err := sc.DB.First(student, "id = ?", student.ID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload profile")
		}
	}

	view, err := dto.FromModel(student)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
	}
	return helper.JsonUpdated(c, locale.T(locale.FromCtx(c), locale.KeyProfileUpdated), view)
}

// ListStudents returns the roster. Admin only (enforced by route middleware).
func (sc *StudentController) ListStudents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := sc.DB.Model(&model.StudentModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []model.StudentModel
	if err := sc.DB.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}

	views := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		view, err := dto.FromModel(&students[i])
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
		}
		views = append(views, view)
	}

	return helper.JsonList(c, "", views, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
