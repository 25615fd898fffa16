// file: internals/features/alerts/dto/alert_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"safetrack_backend/internals/features/alerts/model"
	studentModel "safetrack_backend/internals/features/students/model"
)

type CreateAlertRequest struct {
	Message *string `json:"message,omitempty" validate:"omitempty,max=1000"`
}

type UpdateAlertStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active resolved"`
}

type AlertResponse struct {
	ID                uuid.UUID                       `json:"id"`
	StudentID         string                          `json:"student_id"`
	StudentName       string                          `json:"student_name"`
	StudentEmail      string                          `json:"student_email"`
	BloodGroup        string                          `json:"blood_group"`
	Location          *string                         `json:"location,omitempty"`
	EmergencyContacts []studentModel.EmergencyContact `json:"emergency_contacts"`
	Message           *string                         `json:"message,omitempty"`
	Status            string                          `json:"status"`
	CreatedAt         time.Time                       `json:"created_at"`
	ResolvedAt        *time.Time                      `json:"resolved_at,omitempty"`
	ResolvedBy        *string                         `json:"resolved_by,omitempty"`
}

func FromModel(a *model.AlertModel) (AlertResponse, error) {
	contacts := []studentModel.EmergencyContact{}
	if len(a.EmergencyContacts) > 0 {
		if err := json.Unmarshal(a.EmergencyContacts, &contacts); err != nil {
			return AlertResponse{}, err
		}
	}
	return AlertResponse{
		ID:                a.ID,
		StudentID:         a.StudentID,
		StudentName:       a.StudentName,
		StudentEmail:      a.StudentEmail,
		BloodGroup:        a.BloodGroup,
		Location:          a.Location,
		EmergencyContacts: contacts,
		Message:           a.Message,
		Status:            a.Status,
		CreatedAt:         a.CreatedAt,
		ResolvedAt:        a.ResolvedAt,
		ResolvedBy:        a.ResolvedBy,
	}, nil
}

func FromModels(alerts []model.AlertModel) ([]AlertResponse, error) {
	out := make([]AlertResponse, 0, len(alerts))
	for i := range alerts {
		view, err := FromModel(&alerts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}
