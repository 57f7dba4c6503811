package validators

import (
	"testing"

	"rentChat/internal/enums"
	"rentChat/internal/models"
)

func validTestUser() *models.User {
	return &models.User{
		FirstName: "Aina",
		LastName:  "Rahman",
		Email:     "aina@example.com",
		Password:  "Passw0rd!",
		Role:      enums.ROLE_TENANT,
	}
}

func TestValidateUser(t *testing.T) {
	if errs := ValidateUser(validTestUser()); len(errs) > 0 {
		t.Fatalf("valid user rejected: %v", errs)
	}
	if errs := ValidateUser(nil); len(errs) == 0 {
		t.Error("nil user accepted")
	}

	badEmail := validTestUser()
	badEmail.Email = "not-an-email"
	if errs := ValidateUser(badEmail); len(errs) == 0 {
		t.Error("bad email accepted")
	}

	badRole := validTestUser()
	badRole.Role = "admin"
	if errs := ValidateUser(badRole); len(errs) == 0 {
		t.Error("unknown role accepted")
	}

	shortName := validTestUser()
	shortName.FirstName = "A"
	if errs := ValidateUser(shortName); len(errs) == 0 {
		t.Error("one-letter first name accepted")
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@sub.domain.my"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "plain", "@no.local", "user@", "user@domain", "user@domain.c"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if !ValidatePassword("Passw0rd!") {
		t.Error("valid password rejected")
	}
	if ValidatePassword("short1!") {
		t.Error("seven-character password accepted")
	}
	if ValidatePassword("has spaces here") {
		t.Error("password with spaces accepted")
	}
}

func TestValidateMessageContent(t *testing.T) {
	if errs := ValidateMessageContent("hello there"); len(errs) > 0 {
		t.Errorf("valid content rejected: %v", errs)
	}
	if errs := ValidateMessageContent(""); len(errs) == 0 {
		t.Error("empty content accepted")
	}
	if errs := ValidateMessageContent("   \n\t "); len(errs) == 0 {
		t.Error("whitespace-only content accepted")
	}

	long := make([]byte, maxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if errs := ValidateMessageContent(string(long)); len(errs) == 0 {
		t.Error("oversized content accepted")
	}
}
