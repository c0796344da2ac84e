package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tracklit/internal/logger"
)

// ValidationError reports a caller-supplied value that breaks an input rule.
// It is recoverable and surfaces as a client error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a lookup by id that matched nothing
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// StorageFault wraps a failure of the storage medium. It is never retried.
type StorageFault struct {
	Op  string
	Err error
}

func (e *StorageFault) Error() string {
	return fmt.Sprintf("storage fault in %s: %v", e.Op, e.Err)
}

func (e *StorageFault) Unwrap() error {
	return e.Err
}

// NewValidation returns a ValidationError for the given field
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewNotFound returns a NotFoundError for the given resource and id
func NewNotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// Fault wraps err as a StorageFault unless it is nil or already classified.
func Fault(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) || IsNotFound(err) || IsStorageFault(err) {
		return err
	}
	return &StorageFault{Op: op, Err: err}
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err wraps a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsStorageFault reports whether err wraps a StorageFault
func IsStorageFault(err error) bool {
	var target *StorageFault
	return errors.As(err, &target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
