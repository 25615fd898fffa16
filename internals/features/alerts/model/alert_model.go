package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	studentModel "safetrack_backend/internals/features/students/model"
)

const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// AlertModel represents the alerts table. Profile columns are a
// point-in-time snapshot taken at creation; later profile edits must never
// touch them.
type AlertModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID         string         `gorm:"size:50;not null;index" json:"student_id"`
	StudentName       string         `gorm:"size:100;not null" json:"student_name"`
	StudentEmail      string         `gorm:"size:255;not null" json:"student_email"`
	BloodGroup        string         `gorm:"size:10;not null" json:"blood_group"`
	Location          *string        `gorm:"size:255" json:"location,omitempty"`
	EmergencyContacts datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"emergency_contacts"`
	Message           *string        `json:"message,omitempty"`
	Status            string         `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	ResolvedAt        *time.Time     `json:"resolved_at,omitempty"`
	ResolvedBy        *string        `gorm:"size:50" json:"resolved_by,omitempty"`
}

func (AlertModel) TableName() string {
	return "alerts"
}

// NewFromStudent snapshots the student's current profile into a fresh
// active alert. The contact bytes are copied, not shared.
func NewFromStudent(student *studentModel.StudentModel, message *string) AlertModel {
	contacts := make(datatypes.JSON, len(student.EmergencyContacts))
	copy(contacts, student.EmergencyContacts)
	if len(contacts) == 0 {
		contacts = datatypes.JSON([]byte("[]"))
	}

	return AlertModel{
		StudentID:         student.StudentID,
		StudentName:       student.Name,
		StudentEmail:      student.Email,
		BloodGroup:        student.BloodGroup,
		Location:          student.Location,
		EmergencyContacts: contacts,
		Message:           message,
		Status:            StatusActive,
	}
}
