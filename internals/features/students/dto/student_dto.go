// file: internals/features/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"safetrack_backend/internals/features/students/model"
)

// StudentResponse is the account view returned to clients. The password
// hash never leaves the model layer.
type StudentResponse struct {
	ID                uuid.UUID                `json:"id"`
	StudentID         string                   `json:"student_id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	BloodGroup        string                   `json:"blood_group"`
	Location          *string                  `json:"location,omitempty"`
	EmergencyContacts []model.EmergencyContact `json:"emergency_contacts"`
	IsAdmin           bool                     `json:"is_admin"`
	CreatedAt         time.Time                `json:"created_at"`
}

func FromModel(s *model.StudentModel) (StudentResponse, error) {
	contacts, err := s.Contacts()
	if err != nil {
		return StudentResponse{}, err
	}
	return StudentResponse{
		ID:                s.ID,
		StudentID:         s.StudentID,
		Name:              s.Name,
		Email:             s.Email,
		BloodGroup:        s.BloodGroup,
		Location:          s.Location,
		EmergencyContacts: contacts,
		IsAdmin:           s.IsAdmin,
		CreatedAt:         s.CreatedAt,
	}, nil
}

// UpdateStudentRequest is a partial update; nil means "leave unchanged".
// A non-nil contact list replaces the stored list atomically.
type UpdateStudentRequest struct {
	Name              *string                   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	BloodGroup        *string                   `json:"blood_group,omitempty" validate:"omitempty,min=1,max=10"`
	Location          *string                   `json:"location,omitempty" validate:"omitempty,max=255"`
	EmergencyContacts *[]model.EmergencyContact `json:"emergency_contacts,omitempty" validate:"omitempty,dive"`
}

// Updates assembles the column map for a partial profile update.
func (r *UpdateStudentRequest) Updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.BloodGroup != nil {
		updates["blood_group"] = *r.BloodGroup
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.EmergencyContacts != nil {
		raw, err := model.ContactsJSON(*r.EmergencyContacts)
		if err != nil {
			return nil, err
		}
		updates["emergency_contacts"] = raw
	}
	return updates, nil
}
