// file: internals/locale/locale.go
package locale

import (
	"github.com/gofiber/fiber/v2"
)

// Message keys used by handlers. Responses carry the translated message in
// the locale picked by ?lang=; the data payload itself is never translated.
const (
	KeyWelcome            = "welcome"
	KeyEmergencyAlert     = "emergency_alert"
	KeyProfileUpdated     = "profile_updated"
	KeyAlertCreated       = "alert_created"
	KeyAlertResolved      = "alert_resolved"
	KeyAlertNotFound      = "alert_not_found"
	KeyInvalidCredentials = "invalid_credentials"
	KeyUserExists         = "user_exists"
	KeyUserRegistered     = "user_registered"
	KeyAdminRequired      = "admin_required"
)

var translations = map[string]map[string]string{
	"en": {
		KeyWelcome:            "Welcome to SafeTrack",
		KeyEmergencyAlert:     "Emergency Alert",
		KeyProfileUpdated:     "Profile updated successfully",
		KeyAlertCreated:       "Emergency alert created successfully",
		KeyAlertResolved:      "Alert updated successfully",
		KeyAlertNotFound:      "Alert not found",
		KeyInvalidCredentials: "Invalid credentials",
		KeyUserExists:         "User already exists",
		KeyUserRegistered:     "User registered successfully",
		KeyAdminRequired:      "Admin access required",
	},
	"bn": {
		KeyWelcome:            "SafeTrack এ স্বাগতম",
		KeyEmergencyAlert:     "জরুরি সতর্কতা",
		KeyProfileUpdated:     "প্রোফাইল সফলভাবে আপডেট হয়েছে",
		KeyAlertCreated:       "জরুরি সতর্কতা সফলভাবে তৈরি হয়েছে",
		KeyInvalidCredentials: "অবৈধ পরিচয়পত্র",
		KeyUserExists:         "ব্যবহারকারী ইতিমধ্যে বিদ্যমান",
		KeyUserRegistered:     "ব্যবহারকারী সফলভাবে নিবন্ধিত হয়েছে",
	},
}

// T resolves key in lang, falling back to English, then to the key itself.
func T(lang, key string) string {
	if m, ok := translations[lang]; ok {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	if msg, ok := translations["en"][key]; ok {
		return msg
	}
	return key
}

// FromCtx reads the requested locale from ?lang= (default "en").
func FromCtx(c *fiber.Ctx) string {
	lang := c.Query("lang", "en")
	if _, ok := translations[lang]; !ok {
		return "en"
	}
	return lang
}
