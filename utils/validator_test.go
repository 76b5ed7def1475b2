package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"author@example.com", "a.b+tag@journal.kz", "editor@sub.domain.org"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	invalid := []string{"", "author", "author@", "@example.com", "a b@example.com", "author@example"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, msg := ValidatePassword("longenough"); !ok || msg != "" {
		t.Errorf("expected pass, got (%v, %q)", ok, msg)
	}
	if ok, msg := ValidatePassword("short"); ok || msg == "" {
		t.Errorf("expected a rejection with a message, got (%v, %q)", ok, msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := map[string]string{
		"  padded  ":        "padded",
		"nul\x00byte":       "nulbyte",
		"\x00  mixed \x00 ": "mixed",
		"clean":             "clean",
		"":                  "",
	}
	for in, want := range cases {
		if got := SanitizeInput(in); got != want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", in, got, want)
		}
	}
}
