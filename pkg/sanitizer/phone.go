package sanitizer

import (
	"regexp"
	"strings"
)

var (
	rePhoneSeparators = regexp.MustCompile(`[\s().-]+`)
	reValidE164       = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

// NormalizePhone strips common separators and returns the E.164 form, or ""
// when the input cannot be read as a valid international number.
func NormalizePhone(phone string) string {
	phone = rePhoneSeparators.ReplaceAllString(strings.TrimSpace(phone), "")
	if phone == "" {
		return ""
	}
	if strings.HasPrefix(phone, "00") {
		phone = "+" + phone[2:]
	}
	if !reValidE164.MatchString(phone) {
		return ""
	}
	return phone
}
