// Package validation contains the pure format validators used across the
// application. Each function classifies its input and reports a reason on
// rejection; none of them ever fail on malformed input.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

const (
	maxEmailLength    = 254
	minPasswordLength = 8
	maxPasswordLength = 128
	minUsernameLength = 3
	maxUsernameLength = 50
	minCardLength     = 13
	maxCardLength     = 19
	maxURLLength      = 2048
	maxExpiryYears    = 20

	passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	phonePattern    = regexp.MustCompile(`^\+?\d{10,15}$`)
	urlPattern      = regexp.MustCompile(`^https?://[a-zA-Z0-9\-.]+\.[a-zA-Z]{2,}(/.*)?$`)
	phoneStripper   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

	// Replacement happens in a single pass, so entity ampersands produced
	// by one rule are never re-escaped by another.
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)
)

// Email validates an email address's format and length.
func Email(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return false, "Invalid email format"
	}
	if len(email) > maxEmailLength {
		return false, "Email too long"
	}

	return true, ""
}

// Password validates password strength: 8-128 characters with at least one
// uppercase letter, one lowercase letter, one digit, and one special character.
func Password(password string) (bool, string) {
	if password == "" {
		return false, "Password is required"
	}
	if len(password) < minPasswordLength {
		return false, "Password must be at least 8 characters"
	}
	if len(password) > maxPasswordLength {
		return false, "Password too long"
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return false, "Password must contain at least one uppercase letter"
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return false, "Password must contain at least one lowercase letter"
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return false, "Password must contain at least one digit"
	}
	if !strings.ContainsAny(password, passwordSpecialChars) {
		return false, "Password must contain at least one special character"
	}

	return true, ""
}

// Username validates a username: 3-50 characters, starting with a letter,
// containing only letters, digits, and underscores.
func Username(username string) (bool, string) {
	if username == "" {
		return false, "Username is required"
	}
	if len(username) < minUsernameLength {
		return false, "Username must be at least 3 characters"
	}
	if len(username) > maxUsernameLength {
		return false, "Username must be at most 50 characters"
	}
	if !usernamePattern.MatchString(username) {
		return false, "Username must start with a letter and contain only letters, numbers, and underscores"
	}

	return true, ""
}

// Phone validates a phone number after stripping common punctuation:
// 10-15 digits with an optional leading plus sign.
func Phone(phone string) (bool, string) {
	if phone == "" {
		return false, "Phone number is required"
	}

	cleaned := phoneStripper.Replace(phone)
	if !phonePattern.MatchString(cleaned) {
		return false, "Invalid phone number format"
	}

	return true, ""
}

// URL validates an http(s) URL.
func URL(url string) (bool, string) {
	if url == "" {
		return false, "URL is required"
	}
	if !urlPattern.MatchString(url) {
		return false, "Invalid URL format"
	}
	if len(url) > maxURLLength {
		return false, "URL too long"
	}

	return true, ""
}

// CardNumber validates a card number with the Luhn checksum after stripping
// spaces and dashes.
func CardNumber(cardNumber string) (bool, string) {
	if cardNumber == "" {
		return false, "Card number is required"
	}

	cleaned := strings.ReplaceAll(strings.ReplaceAll(cardNumber, " ", ""), "-", "")
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false, "Card number must contain only digits"
		}
	}
	if len(cleaned) < minCardLength || len(cleaned) > maxCardLength {
		return false, "Invalid card number length"
	}
	if !luhnValid(cleaned) {
		return false, "Invalid card number"
	}

	return true, ""
}

// luhnValid runs the Luhn checksum over a string of digits: every second
// digit from the right is doubled, 9 is subtracted from products over 9, and
// the total must be divisible by 10.
func luhnValid(digits string) bool {
	checksum := 0
	for i := 0; i < len(digits); i++ {
		digit := int(digits[len(digits)-1-i] - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		checksum += digit
	}

	return checksum%10 == 0
}

// CVV validates a CVV/CVC code: 3 or 4 digits.
func CVV(cvv string) (bool, string) {
	if cvv == "" {
		return false, "CVV is required"
	}
	for _, r := range cvv {
		if r < '0' || r > '9' {
			return false, "CVV must contain only digits"
		}
	}
	if len(cvv) != 3 && len(cvv) != 4 {
		return false, "CVV must be 3 or 4 digits"
	}

	return true, ""
}

// Expiry validates a card expiry date against the current month and year.
func Expiry(month, year int) (bool, string) {
	return expiryAt(month, year, time.Now())
}

// expiryAt is the clock-injected form of Expiry, used in tests.
func expiryAt(month, year int, now time.Time) (bool, string) {
	if month < 1 || month > 12 {
		return false, "Invalid expiry month"
	}

	currentYear, currentMonth := now.Year(), int(now.Month())
	if year < currentYear {
		return false, "Card has expired"
	}
	if year == currentYear && month < currentMonth {
		return false, "Card has expired"
	}
	if year > currentYear+maxExpiryYears {
		return false, "Invalid expiry year"
	}

	return true, ""
}

// Sanitize escapes HTML-dangerous characters in user input.
// Empty input returns an empty string.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	return htmlEscaper.Replace(text)
}
