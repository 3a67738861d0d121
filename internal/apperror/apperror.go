// Package apperror defines the application error taxonomy shared by the
// services, the HTTP layer, and the API client.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// Unknown is any error that was not classified.
	Unknown Kind = iota
	// DuplicateUser is returned when registering an email that already exists.
	DuplicateUser
	// InvalidCredentials is returned by login; it never says which half was wrong.
	InvalidCredentials
	// Unauthenticated covers a missing, malformed, or expired token and a token
	// whose user no longer exists.
	Unauthenticated
	// NotFound covers both nonexistent ids and ids owned by another user.
	NotFound
	// ValidationFailure is a malformed or semantically invalid payload.
	ValidationFailure
	// StoreUnavailable wraps failures of the backing database.
	StoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case DuplicateUser:
		return "DuplicateUser"
	case InvalidCredentials:
		return "InvalidCredentials"
	case Unauthenticated:
		return "Unauthenticated"
	case NotFound:
		return "NotFound"
	case ValidationFailure:
		return "ValidationFailure"
	case StoreUnavailable:
		return "StoreUnavailable"
	default:
		return "Unknown"
	}
}

// AppError carries a Kind, a message that is safe to show to API clients,
// and an optional underlying error that is only ever logged.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error kind.
func (e *AppError) StatusCode() int {
	return StatusFor(e.Kind)
}

// StatusFor maps a Kind to its HTTP status.
func StatusFor(k Kind) int {
	switch k {
	case DuplicateUser, ValidationFailure:
		return http.StatusBadRequest
	case InvalidCredentials, Unauthenticated:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// KindForStatus is the inverse used by the API client. 400 is ambiguous
// between DuplicateUser and ValidationFailure; callers that know the route
// refine it.
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return ValidationFailure
	case http.StatusUnauthorized:
		return Unauthenticated
	case http.StatusNotFound:
		return NotFound
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return StoreUnavailable
	default:
		return Unknown
	}
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewDuplicateUser(message string) *AppError {
	return New(DuplicateUser, message, nil)
}

func NewInvalidCredentials() *AppError {
	return New(InvalidCredentials, "invalid email or password", nil)
}

func NewUnauthenticated(message string, err error) *AppError {
	return New(Unauthenticated, message, err)
}

func NewNotFound(message string) *AppError {
	return New(NotFound, message, nil)
}

func NewValidation(message string, err error) *AppError {
	return New(ValidationFailure, message, err)
}

func NewStoreUnavailable(message string, err error) *AppError {
	return New(StoreUnavailable, message, err)
}

// KindOf returns the Kind of the first AppError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unknown
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MsgUserExists is the message of a DuplicateUser response. The API client
// uses it to tell a duplicate apart from other 400s on registration.
const MsgUserExists = "user already exists"

// ErrorResponse is the JSON body of every failed API response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ToResponse exposes only the user-facing message.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}
