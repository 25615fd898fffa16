package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"safetrack_backend/internals/features/students/model"
)

var validate = validator.New()

func strptr(s string) *string { return &s }

func TestUpdatesPartialAssembly(t *testing.T) {
	req := UpdateStudentRequest{Name: strptr("New Name")}
	updates, err := req.Updates()
	if err != nil {
		t.Fatalf("updates: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("expected 1 column, got %d: %v", len(updates), updates)
	}
	if updates["name"] != "New Name" {
		t.Fatalf("name = %v", updates["name"])
	}
}

func TestUpdatesReplacesContactListAtomically(t *testing.T) {
	contacts := []model.EmergencyContact{
		{Name: "Dad", Relationship: "father", Phone: "12345"},
	}
	req := UpdateStudentRequest{EmergencyContacts: &contacts}
	updates, err := req.Updates()
	if err != nil {
		t.Fatalf("updates: %v", err)
	}
	raw, ok := updates["emergency_contacts"].(datatypes.JSON)
	if !ok {
		t.Fatalf("emergency_contacts is %T, want datatypes.JSON", updates["emergency_contacts"])
	}
	if string(raw) == "" || string(raw) == "null" {
		t.Fatalf("contact json = %q", raw)
	}
}

func TestUpdatesEmptyRequest(t *testing.T) {
	req := UpdateStudentRequest{}
	updates, err := req.Updates()
	if err != nil {
		t.Fatalf("updates: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("expected no columns, got %v", updates)
	}
}

func TestContactValidation(t *testing.T) {
	bad := []model.EmergencyContact{
		{Name: "", Relationship: "mother", Phone: "12345"},
	}
	req := UpdateStudentRequest{EmergencyContacts: &bad}
	if err := validate.Struct(req); err == nil {
		t.Fatal("contact without name passed validation")
	}

	badEmail := []model.EmergencyContact{
		{Name: "Mom", Relationship: "mother", Phone: "12345", Email: strptr("not-an-email")},
	}
	req = UpdateStudentRequest{EmergencyContacts: &badEmail}
	if err := validate.Struct(req); err == nil {
		t.Fatal("contact with invalid email passed validation")
	}

	good := []model.EmergencyContact{
		{Name: "Mom", Relationship: "mother", Phone: "12345", Email: strptr("mom@x.com")},
	}
	req = UpdateStudentRequest{EmergencyContacts: &good}
	if err := validate.Struct(req); err != nil {
		t.Fatalf("valid contact rejected: %v", err)
	}
}

func TestFromModelHidesPassword(t *testing.T) {
	contacts, _ := model.ContactsJSON(nil)
	s := &model.StudentModel{
		StudentID:         "S1",
		Name:              "A",
		Password:          "hash",
		EmergencyContacts: contacts,
	}
	view, err := FromModel(s)
	if err != nil {
		t.Fatalf("from model: %v", err)
	}
	if view.StudentID != "S1" || view.Name != "A" {
		t.Fatalf("view = %+v", view)
	}
	// StudentResponse has no password field at all; this is a compile-time
	// guarantee, the assertion documents it.
}
