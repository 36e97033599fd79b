package policy

import "strings"

// passwordSymbols is the set of accepted special characters.
const passwordSymbols = "!@#$%^&*"

// IsStrongPassword reports whether the candidate password is acceptable:
// at least 8 characters, at least one digit, one uppercase letter, one
// lowercase letter and one symbol from !@#$%^&*, using only letters,
// digits, underscore and that symbol set. This rule gates registration and
// every password change, self-service or admin-driven.
func IsStrongPassword(candidate string) bool {
	if len(candidate) < 8 {
		return false
	}
	var hasDigit, hasUpper, hasLower, hasSymbol bool
	for _, r := range candidate {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		case r == '_':
			// allowed, counts toward no class
		default:
			return false
		}
	}
	return hasDigit && hasUpper && hasLower && hasSymbol
}
