package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EmergencyContact lives inside the student's jsonb contact list. The list
// is always replaced as a whole, never merged per entry.
type EmergencyContact struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Relationship string  `json:"relationship" validate:"required,min=1,max=50"`
	Phone        string  `json:"phone" validate:"required,min=5,max=30"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
}

// StudentModel represents the students table
type StudentModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID         string         `gorm:"size:50;unique;not null" json:"student_id"`
	Name              string         `gorm:"size:100;not null" json:"name"`
	Email             string         `gorm:"size:255;not null" json:"email"`
	Password          string         `gorm:"not null" json:"-"`
	BloodGroup        string         `gorm:"size:10;not null" json:"blood_group"`
	Location          *string        `gorm:"size:255" json:"location,omitempty"`
	EmergencyContacts datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"emergency_contacts"`
	IsAdmin           bool           `gorm:"not null;default:false" json:"is_admin"`
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

// Contacts decodes the jsonb contact list.
func (s *StudentModel) Contacts() ([]EmergencyContact, error) {
	if len(s.EmergencyContacts) == 0 {
		return []EmergencyContact{}, nil
	}
	var out []EmergencyContact
	if err := json.Unmarshal(s.EmergencyContacts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ContactsJSON encodes a contact list for the jsonb column.
func ContactsJSON(contacts []EmergencyContact) (datatypes.JSON, error) {
	if contacts == nil {
		contacts = []EmergencyContact{}
	}
	raw, err := json.Marshal(contacts)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
