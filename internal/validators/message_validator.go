package validators

import (
	"rentChat/internal/errs"
	"strings"
)

const maxMessageLength = 4000

func ValidateMessageContent(content string) []error {
	var errors []error
	if strings.TrimSpace(content) == "" {
		errors = append(errors, errs.ErrEmptyMessageContent)
	}
	if len(content) > maxMessageLength {
		errors = append(errors, errs.ErrMessageContentTooLong)
	}
	return errors
}
