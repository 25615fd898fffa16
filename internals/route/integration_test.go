package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"safetrack_backend/internals/configs"
	alertModel "safetrack_backend/internals/features/alerts/model"
	studentModel "safetrack_backend/internals/features/students/model"
	authHelper "safetrack_backend/internals/features/users/auth/helper"
	authService "safetrack_backend/internals/features/users/auth/service"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and skips
// the test when the variable is unset, so the suite stays runnable without
// a local Postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&studentModel.StudentModel{}, &alertModel.AlertModel{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	configs.JWTSecret = "integration-test-secret"
	app := fiber.New()
	SetupRoutes(app, db)
	BaseRoutes(app)
	return app
}

// seedAdmin inserts an admin account directly and returns a signed token
// for it, so the triage endpoints can be exercised without depending on
// the startup bootstrap.
func seedAdmin(t *testing.T, db *gorm.DB, studentID string) (*studentModel.StudentModel, string) {
	t.Helper()

	hash, err := authHelper.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	contacts, _ := studentModel.ContactsJSON(nil)
	admin := studentModel.StudentModel{
		ID:                uuid.New(),
		StudentID:         studentID,
		Name:              "Triage Admin",
		Email:             studentID + "@safetrack.local",
		Password:          hash,
		BloodGroup:        "N/A",
		EmergencyContacts: contacts,
		IsAdmin:           true,
		IsActive:          true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	token, err := authService.SignAccessToken(&admin, time.Now().UTC())
	if err != nil {
		t.Fatalf("sign admin token: %v", err)
	}
	return &admin, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return data
}

func listOf(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("response has no data list: %v", body)
	}
	return data
}

func TestAlertLifecycle(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(t, db)

	uniq := fmt.Sprintf("%d", time.Now().UnixNano())
	sid := "S" + uniq
	adminID := "admin_" + uniq

	t.Cleanup(func() {
		db.Where("student_id IN ?", []string{sid, adminID}).Delete(&alertModel.AlertModel{})
		db.Where("student_id IN ?", []string{sid, adminID}).Delete(&studentModel.StudentModel{})
	})

	_, adminToken := seedAdmin(t, db, adminID)

	// Unauthenticated access is rejected.
	status, _ := doJSON(t, app, http.MethodGet, "/api/students/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated /me: got %d, want 401", status)
	}

	// Register.
	registerBody := map[string]any{
		"student_id":  sid,
		"password":    "p",
		"name":        "A",
		"email":       "a@x.com",
		"blood_group": "O+",
		"location":    "Dorm 3",
		"emergency_contacts": []map[string]any{
			{"name": "Rahim Uddin", "relationship": "father", "phone": "01700000000"},
		},
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", registerBody)
	if status != http.StatusCreated {
		t.Fatalf("register: got %d, body %v", status, body)
	}
	if got := dataOf(t, body)["student_id"]; got != sid {
		t.Fatalf("register echoed student_id %v, want %s", got, sid)
	}

	// Duplicate registration conflicts.
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", registerBody)
	if status != http.StatusConflict {
		t.Fatalf("duplicate register: got %d, want 409", status)
	}

	// Wrong password and unknown account are both 401.
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]any{"student_id": sid, "password": "wrong"})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password: got %d, want 401", status)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]any{"student_id": sid, "password": "p"})
	if status != http.StatusOK {
		t.Fatalf("login: got %d, body %v", status, body)
	}
	loginData := dataOf(t, body)
	token, _ := loginData["access_token"].(string)
	if token == "" {
		t.Fatal("login returned no access_token")
	}
	user, _ := loginData["user"].(map[string]any)
	if user["name"] != "A" || user["is_admin"] != false {
		t.Fatalf("login user view = %v", user)
	}

	// Token works against the profile endpoint.
	status, body = doJSON(t, app, http.MethodGet, "/api/students/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("/me: got %d, body %v", status, body)
	}
	if dataOf(t, body)["blood_group"] != "O+" {
		t.Fatalf("/me blood_group = %v", dataOf(t, body)["blood_group"])
	}

	// Deactivation revokes access with 403, not 401: the account still
	// exists, it is just switched off.
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", sid).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate student: %v", err)
	}
	status, _ = doJSON(t, app, http.MethodGet, "/api/students/me", token, nil)
	if status != http.StatusForbidden {
		t.Fatalf("deactivated account /me: got %d, want 403", status)
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]any{"student_id": sid, "password": "p"})
	if status != http.StatusForbidden {
		t.Fatalf("deactivated account login: got %d, want 403", status)
	}
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", sid).
		Update("is_active", true).Error; err != nil {
		t.Fatalf("reactivate student: %v", err)
	}

	// Non-admins cannot reach triage endpoints.
	status, _ = doJSON(t, app, http.MethodGet, "/api/alerts/active", token, nil)
	if status != http.StatusForbidden {
		t.Fatalf("student /alerts/active: got %d, want 403", status)
	}
	status, _ = doJSON(t, app, http.MethodPut, "/api/alerts/"+uuid.NewString(), token,
		map[string]any{"status": "resolved"})
	if status != http.StatusForbidden {
		t.Fatalf("student resolve: got %d, want 403", status)
	}

	// Panic button.
	status, body = doJSON(t, app, http.MethodPost, "/api/alerts", token,
		map[string]any{"message": "fire"})
	if status != http.StatusCreated {
		t.Fatalf("create alert: got %d, body %v", status, body)
	}
	alertData := dataOf(t, body)
	alertID, _ := alertData["id"].(string)
	if alertID == "" {
		t.Fatal("alert has no id")
	}
	if alertData["status"] != "active" {
		t.Fatalf("alert status = %v, want active", alertData["status"])
	}

	// The alert snapshots the profile: a later contact change must not
	// show up in the already-raised alert.
	status, _ = doJSON(t, app, http.MethodPut, "/api/students/me", token, map[string]any{
		"emergency_contacts": []map[string]any{
			{"name": "Karim Uddin", "relationship": "uncle", "phone": "01800000000"},
		},
	})
	if status != http.StatusOK {
		t.Fatalf("update profile: got %d", status)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/alerts/active", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin /alerts/active: got %d, body %v", status, body)
	}
	found := findAlert(t, listOf(t, body), alertID)
	if found == nil {
		t.Fatalf("alert %s missing from active list", alertID)
	}
	contacts, _ := found["emergency_contacts"].([]any)
	if len(contacts) != 1 {
		t.Fatalf("alert contacts = %v", found["emergency_contacts"])
	}
	if first, _ := contacts[0].(map[string]any); first["name"] != "Rahim Uddin" {
		t.Fatalf("alert contact mutated after profile update: %v", first)
	}
	if found["student_name"] != "A" || found["blood_group"] != "O+" {
		t.Fatalf("alert snapshot = %v", found)
	}

	// Resolve.
	status, body = doJSON(t, app, http.MethodPut, "/api/alerts/"+alertID, adminToken,
		map[string]any{"status": "resolved"})
	if status != http.StatusOK {
		t.Fatalf("resolve: got %d, body %v", status, body)
	}
	resolved := dataOf(t, body)
	if resolved["status"] != "resolved" {
		t.Fatalf("resolved status = %v", resolved["status"])
	}
	if resolved["resolved_by"] != adminID {
		t.Fatalf("resolved_by = %v, want %s", resolved["resolved_by"], adminID)
	}
	if resolved["resolved_at"] == nil {
		t.Fatal("resolved_at not stamped")
	}

	// Resolved alerts leave the active list and stay resolved.
	status, body = doJSON(t, app, http.MethodGet, "/api/alerts/active", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin /alerts/active after resolve: got %d", status)
	}
	if findAlert(t, listOf(t, body), alertID) != nil {
		t.Fatalf("resolved alert %s still listed as active", alertID)
	}

	status, _ = doJSON(t, app, http.MethodPut, "/api/alerts/"+alertID, adminToken,
		map[string]any{"status": "active"})
	if status != http.StatusConflict {
		t.Fatalf("re-open resolved alert: got %d, want 409", status)
	}

	// Unknown alert id.
	status, _ = doJSON(t, app, http.MethodPut, "/api/alerts/"+uuid.NewString(), adminToken,
		map[string]any{"status": "resolved"})
	if status != http.StatusNotFound {
		t.Fatalf("resolve unknown alert: got %d, want 404", status)
	}

	// The student still sees their own (resolved) alert in history.
	status, body = doJSON(t, app, http.MethodGet, "/api/alerts?status=resolved", token, nil)
	if status != http.StatusOK {
		t.Fatalf("student alert history: got %d", status)
	}
	if findAlert(t, listOf(t, body), alertID) == nil {
		t.Fatalf("alert %s missing from student history", alertID)
	}
}

func findAlert(t *testing.T, list []any, id string) map[string]any {
	t.Helper()
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if entry["id"] == id {
			return entry
		}
	}
	return nil
}
