package validator

import "testing"

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("owner@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Fatalf("expected error for malformed email")
	}
	if err := ValidateEmail("a@b"); err == nil {
		t.Fatalf("expected error for too short email")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Str0ng!pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weak := []string{"sh0rt!A", "nouppercase1!", "NOLOWERCASE1!", "NoDigits!!", "NoSpecial123a"}
	for _, p := range weak {
		if err := ValidatePassword(p); err == nil {
			t.Fatalf("expected error for password %q", p)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("pet_lover.99"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateUsername("ab"); err == nil {
		t.Fatalf("expected error for too short username")
	}
	if err := ValidateUsername("has space"); err == nil {
		t.Fatalf("expected error for username with space")
	}
}
