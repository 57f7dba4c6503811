package masking

import "regexp"

// RedactionToken replaces every detected sensitive span. It contains no
// digits and no "@", so masking an already masked text changes nothing.
const RedactionToken = "******"

const (
	// Minimum digits for a numeric span to count as a phone number.
	// Keeps prices and room counts (e.g. "RM560", "3 bedrooms") untouched.
	minPhoneDigits = 7
	// Minimum length of a bare digit run to count as an account/ID number.
	minAccountDigits = 10
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// Candidate numeric span: digits with optional separators and an
	// optional leading country/trunk prefix. Always starts and ends on a
	// digit so surrounding punctuation stays in place.
	numericSpanRegex = regexp.MustCompile(`\+?\d(?:[\d\-\s.()]*\d)?`)
	digitRegex       = regexp.MustCompile(`\d`)
	accountRunRegex  = regexp.MustCompile(`\d{10,}`)
)

// Detect reports whether text contains a phone number, an email address or
// an account-like digit run. Empty input never matches.
func Detect(text string) bool {
	if text == "" {
		return false
	}
	if emailRegex.MatchString(text) {
		return true
	}
	for _, span := range numericSpanRegex.FindAllString(text, -1) {
		if sensitiveSpan(span) {
			return true
		}
	}
	return false
}

// Mask returns text with every detected sensitive span replaced by
// RedactionToken. Non-sensitive text is preserved and the result is stable
// under repeated application.
func Mask(text string) string {
	if text == "" {
		return text
	}
	masked := emailRegex.ReplaceAllString(text, RedactionToken)
	masked = numericSpanRegex.ReplaceAllStringFunc(masked, func(span string) string {
		if sensitiveSpan(span) {
			return RedactionToken
		}
		return span
	})
	return masked
}

func sensitiveSpan(span string) bool {
	if len(digitRegex.FindAllString(span, -1)) >= minPhoneDigits {
		return true
	}
	return accountRunRegex.MatchString(span)
}
