package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/resethq/reset-backend/internal/apperr"
)

// ValidateDrinksPerWeek enforces the onboarding range before anything is
// written to the store.
func ValidateDrinksPerWeek(n int) error {
	if n < 0 || n > 7 {
		return apperr.NewValidation("drinks_per_week", "must be between 0 and 7")
	}
	return nil
}

func ValidateAverageDailySpend(amount float64) error {
	if amount < 0 {
		return apperr.NewValidation("average_daily_spend", "must not be negative")
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperr.NewValidation("email", "must be a valid address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperr.NewValidation("password", "must be at least 8 characters")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
