package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"safetrack_backend/internals/features/alerts/dto"
	"safetrack_backend/internals/features/alerts/model"
	studentModel "safetrack_backend/internals/features/students/model"
	helper "safetrack_backend/internals/helpers"
	"safetrack_backend/internals/locale"
)

var validate = validator.New()

type AlertController struct {
	DB *gorm.DB
}

func NewAlertController(db *gorm.DB) *AlertController {
	return &AlertController{DB: db}
}

// CreateAlert fires a new emergency alert with the caller's profile
// snapshotted in. Every call creates a fresh alert; a panic button never
// dedups.
func (ac *AlertController) CreateAlert(c *fiber.Ctx) error {
	lang := locale.FromCtx(c)

	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userUUID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid UUID format")
	}

	// empty body is fine, the message is optional
	var req dto.CreateAlertRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var student studentModel.StudentModel
	if err := ac.DB.First(&student, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	alert := model.NewFromStudent(&student, req.Message)
	if err := ac.DB.Create(&alert).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create alert")
	}

	view, err := dto.FromModel(&alert)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
	}
	return helper.JsonCreated(c, locale.T(lang, locale.KeyAlertCreated), view)
}

// ListAlerts returns alerts newest first: admins see all, students only
// their own. ?status= narrows by status.
func (ac *AlertController) ListAlerts(c *fiber.Ctx) error {
	isAdmin, _ := c.Locals("is_admin").(bool)
	studentID, _ := c.Locals("student_id").(string)

	paging := helper.ResolvePaging(c, 20, 100)

	query := ac.DB.Model(&model.AlertModel{})
	if !isAdmin {
		query = query.Where("student_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		if status != model.StatusActive && status != model.StatusResolved {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown status filter")
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count alerts")
	}

	var alerts []model.AlertModel
	if err := query.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&alerts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list alerts")
	}

	views, err := dto.FromModels(alerts)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
	}
	return helper.JsonList(c, "", views, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ListActiveAlerts is the admin triage feed: all active alerts, newest
// first. Admin only (enforced by route middleware).
func (ac *AlertController) ListActiveAlerts(c *fiber.Ctx) error {
	var alerts []model.AlertModel
	if err := ac.DB.
		Where("status = ?", model.StatusActive).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list active alerts")
	}

	views, err := dto.FromModels(alerts)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
	}
	return helper.JsonOK(c, "", views)
}

// UpdateAlertStatus transitions an alert. The only defined transition is
// active → resolved; resolved alerts are immutable.
func (ac *AlertController) UpdateAlertStatus(c *fiber.Ctx) error {
	lang := locale.FromCtx(c)

	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid alert id")
	}

	var req dto.UpdateAlertStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var alert model.AlertModel
	if err := ac.DB.First(&alert, "id = ?", alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, locale.T(lang, locale.KeyAlertNotFound))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load alert")
	}

	if alert.Status == model.StatusResolved {
		return helper.JsonError(c, fiber.StatusConflict, "Alert is already resolved")
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == model.StatusResolved {
		now := time.Now().UTC()
		resolvedBy, _ := c.Locals("student_id").(string)
		updates["resolved_at"] = now
		updates["resolved_by"] = resolvedBy
		alert.ResolvedAt = &now
		alert.ResolvedBy = &resolvedBy
	}
	if err := ac.DB.Model(&alert).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update alert")
	}
	alert.Status = req.Status

	view, err := dto.FromModel(&alert)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode contacts")
	}
	return helper.JsonUpdated(c, locale.T(lang, locale.KeyAlertResolved), view)
}
