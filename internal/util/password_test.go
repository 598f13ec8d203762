package util

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	password := "Str0ng!pass"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hashed == password {
		t.Fatalf("hash must not equal the plain password")
	}

	if err = CheckPassword(password, hashed); err != nil {
		t.Fatalf("expected matching password to verify: %v", err)
	}

	if err = CheckPassword("WrongPassword1!", hashed); err == nil {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("Str0ng!pass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	second, err := HashPassword("Str0ng!pass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if first == second {
		t.Fatalf("bcrypt salting must yield distinct hashes")
	}
}
