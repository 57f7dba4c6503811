package errs

import "fmt"

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrUserAlreadyExists  = Error("user already exists")
	ErrUserNotFound       = Error("user not found")
	ErrWrongPassword      = Error("wrong password")
	ErrInvalidToken       = Error("invalid token")
	ErrInvalidEmail       = Error("invalid email")
	ErrInvalidPassword    = Error("invalid password")
	ErrInvalidUser        = Error("invalid user")
	ErrInvalidRole        = Error("role must be tenant or landlord")
	ErrInvalidRequest     = Error("invalid request")
	ErrInvalidParams      = Error("invalid params")
	ErrInvalidPageOrSize  = Error("invalid page or size")
	ErrFirstName          = Error("first name is empty or too short")
	ErrLastName           = Error("last name is empty or too short")
	ErrUnauthorized       = Error("unauthorized")
	ErrNotAuthenticated   = Error("not authenticated")

	ErrConversationNotFound  = Error("conversation not found")
	ErrInvalidConversationId = Error("invalid conversation id")
	ErrNotConversationMember = Error("user is not a member of the conversation")
	ErrSelfConversation      = Error("tenant and landlord must be different users")
	ErrOnlyTenantsCanStart   = Error("only tenants can start a conversation")
	ErrEmptyMessageContent   = Error("message content is empty")
	ErrMessageContentTooLong = Error("message content is too long")

	ErrNoFileUploaded             = Error("no file uploaded")
	ErrUnableToOpenUploadedFile   = Error("unable to open uploaded file")
	ErrUnableToUploadFile         = Error("unable to upload file")
	ErrUnableToUpdateProfilePhoto = Error("unable to update profile photo")
)

// PersistenceError wraps a failure coming back from the database layer so
// callers can tell a storage fault apart from a domain error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
