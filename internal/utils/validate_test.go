package utils

import "testing"

func TestValidateDrinksPerWeek(t *testing.T) {
	cases := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{7, false},
		{8, true},
	}
	for _, tc := range cases {
		err := ValidateDrinksPerWeek(tc.n)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ValidateDrinksPerWeek(%d) err=%v, wantErr=%v", tc.n, err, tc.wantErr)
		}
	}
}

func TestValidateAverageDailySpend(t *testing.T) {
	if err := ValidateAverageDailySpend(0); err != nil {
		t.Fatalf("zero spend should be valid: %v", err)
	}
	if err := ValidateAverageDailySpend(12.50); err != nil {
		t.Fatalf("positive spend should be valid: %v", err)
	}
	if err := ValidateAverageDailySpend(-0.01); err == nil {
		t.Fatal("negative spend should be rejected")
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("person@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	for _, bad := range []string{"", "nope", "no-at-sign.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Fatalf("ValidateEmail(%q) should fail", bad)
		}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Fatal("short password should be rejected")
	}

	hashed, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hashed, "correct horse battery") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hashed, "wrong password") {
		t.Fatal("wrong password accepted")
	}
}
