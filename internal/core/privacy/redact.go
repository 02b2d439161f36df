// Package privacy masks contact details before they reach a response.
package privacy

import (
	"regexp"
	"strings"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

const (
	// Placeholder is shown in place of an absent phone or e-mail.
	Placeholder = "N/A"
	maskChar    = "x"
	emailMask   = "xxxx"

	minSubscriberDigits = 10
)

// countryCodes are matched longest first so "+971" is not read as "+97".
var countryCodes = []string{"971", "91", "86", "81", "61", "55", "52", "49", "44", "34", "33", "1"}

var maskedPhone = regexp.MustCompile(`^\+\d{1,3} ?\d{2}x+\d{2}$`)

// MaskPhone hides the middle digits of a phone number. It never panics and
// returns already-masked input unchanged.
func MaskPhone(phone string) string {
	if phone == "" {
		return Placeholder
	}
	if maskedPhone.MatchString(phone) {
		return phone
	}
	if masked, ok := maskCountryCoded(phone); ok {
		return masked
	}
	return MaskMiddle(phone)
}

// MaskMiddle keeps the first and last two characters of s and replaces the
// rest with the mask character. Strings shorter than four characters pass
// through unchanged.
func MaskMiddle(s string) string {
	r := []rune(s)
	if len(r) < 4 {
		return s
	}
	return string(r[:2]) + strings.Repeat(maskChar, len(r)-4) + string(r[len(r)-2:])
}

func maskCountryCoded(phone string) (string, bool) {
	trimmed := strings.TrimSpace(phone)
	if !strings.HasPrefix(trimmed, "+") {
		return "", false
	}
	digits := onlyDigits(trimmed)
	for _, code := range countryCodes {
		if !strings.HasPrefix(digits, code) {
			continue
		}
		if !strings.HasPrefix(trimmed[1:], code) {
			return "", false
		}
		sub := digits[len(code):]
		if len(sub) < minSubscriberDigits {
			return "", false
		}
		sep := " "
		if rest := trimmed[1+len(code):]; rest != "" && isDigit(rest[0]) {
			sep = ""
		}
		return "+" + code + sep + sub[:2] + strings.Repeat(maskChar, len(sub)-4) + sub[len(sub)-2:], true
	}
	return "", false
}

// MaskEmail keeps the first two characters of the local part and the domain.
func MaskEmail(email string) string {
	if email == "" {
		return Placeholder
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return MaskMiddle(email)
	}
	local := []rune(email[:at])
	if len(local) > 2 {
		local = local[:2]
	}
	return string(local) + emailMask + email[at:]
}

// Redact returns a copy of c with phone and e-mail masked.
func Redact(c domain.Client) domain.Client {
	c.Phone = MaskPhone(c.Phone)
	c.Email = MaskEmail(c.Email)
	return c
}

// RedactAll masks every record in clients without modifying the input slice.
func RedactAll(clients []domain.Client) []domain.Client {
	out := make([]domain.Client, len(clients))
	for i, c := range clients {
		out[i] = Redact(c)
	}
	return out
}

func onlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
