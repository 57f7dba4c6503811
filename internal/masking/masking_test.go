package masking

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"plain text", "Hi, is the room still available?", false},
		{"price with currency", "The rent is RM560 per month", false},
		{"room count", "It has 3 bedrooms and 2 bathrooms", false},
		{"postcode", "The unit is in 43650 Bandar Baru Bangi", false},
		{"local phone", "call me at 012-3456789", true},
		{"international phone", "reach me on +60 12 345 6789", true},
		{"phone with dots", "my number is 012.345.6789", true},
		{"phone in parentheses", "office line (03) 8921 4567", true},
		{"bare digit run", "transfer to 1234567890 please", true},
		{"email", "email me at tenant@example.com", true},
		{"email no spaces", "contact:landlord.kl@mail.my,thanks", true},
		{"already masked", "call me at ******", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.text); got != tc.want {
				t.Errorf("Detect(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestMask(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"untouched", "Deposit is RM1,120 for 2 months", "Deposit is RM1,120 for 2 months"},
		{"phone replaced", "call me at 012-3456789 tonight", "call me at ****** tonight"},
		{"email replaced", "send it to tenant@example.com please", "send it to ****** please"},
		{"both replaced", "012-3456789 or tenant@example.com", "****** or ******"},
		{"prefix kept", "whatsapp +6012 345 6789!", "whatsapp ******!"},
		{"mixed safe and sensitive", "Room 2 is free, call 0123456789", "Room 2 is free, call ******"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Mask(tc.text); got != tc.want {
				t.Errorf("Mask(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestDetectAndMaskAgree(t *testing.T) {
	inputs := []string{
		"",
		"Hi, is the room still available?",
		"The rent is RM560 per month",
		"call me at 012-3456789",
		"email me at tenant@example.com",
		"transfer to 1234567890 please",
	}
	for _, text := range inputs {
		detected := Detect(text)
		changed := Mask(text) != text
		if detected != changed {
			t.Errorf("Detect(%q) = %v but Mask changed the text: %v", text, detected, changed)
		}
	}
}

func TestMaskIsIdempotent(t *testing.T) {
	inputs := []string{
		"call me at 012-3456789",
		"tenant@example.com and +60 12 345 6789",
		"nothing sensitive here",
	}
	for _, text := range inputs {
		once := Mask(text)
		twice := Mask(once)
		if once != twice {
			t.Errorf("Mask not stable for %q: first %q, second %q", text, once, twice)
		}
	}
}

func TestMaskedOutputNeverDetects(t *testing.T) {
	inputs := []string{
		"012-3456789",
		"a@b.co and 1234567890",
		"+60 (12) 345-6789 is my line",
	}
	for _, text := range inputs {
		masked := Mask(text)
		if Detect(masked) {
			t.Errorf("Detect(Mask(%q)) = true, masked text %q still flagged", text, masked)
		}
	}
}

func TestMaskUnicodeContent(t *testing.T) {
	text := "boleh hubungi saya di 012-3456789 ya 😊"
	masked := Mask(text)
	if !strings.Contains(masked, RedactionToken) {
		t.Fatalf("expected redaction token in %q", masked)
	}
	if !strings.Contains(masked, "😊") {
		t.Errorf("surrounding unicode text lost: %q", masked)
	}
}
