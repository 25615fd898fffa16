package locale

import "testing"

func TestTranslationLookup(t *testing.T) {
	if got := T("en", KeyUserExists); got != "User already exists" {
		t.Fatalf("unexpected en message: %q", got)
	}
	if got := T("bn", KeyUserExists); got != "ব্যবহারকারী ইতিমধ্যে বিদ্যমান" {
		t.Fatalf("unexpected bn message: %q", got)
	}
}

func TestFallbackToEnglish(t *testing.T) {
	// bn has no entry for admin_required; must fall back to en.
	if got := T("bn", KeyAdminRequired); got != "Admin access required" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	// unknown locale entirely
	if got := T("fr", KeyWelcome); got != "Welcome to SafeTrack" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestFallbackToKey(t *testing.T) {
	if got := T("en", "no_such_key"); got != "no_such_key" {
		t.Fatalf("expected key itself, got %q", got)
	}
}
