package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrInvalidYAML     = errors.New("invalid YAML format")
	ErrMultipleValues  = errors.New("multiple values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrUnknownFormat   = errors.New("unknown format")
	ErrUnknownGuard    = errors.New("unknown guard")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput          ErrorType = "input"
	ErrorTypeParsing        ErrorType = "parsing"
	ErrorTypeConfig         ErrorType = "config"
	ErrorTypeClassification ErrorType = "classification"
	ErrorTypeFormat         ErrorType = "format"
	ErrorTypeOutput         ErrorType = "output"
	ErrorTypeUnknown        ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError of the same type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON or YAML decoding
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// NewClassificationError creates a new error related to inspecting a value
func NewClassificationError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeClassification, Message: message, Err: err}
}

// NewFormatError creates a new error related to report rendering
func NewFormatError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeFormat, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeClassification:
			return fmt.Sprintf("Classification error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Report formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide JSON or YAML data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrInvalidYAML) {
		return "Error: The input contains invalid YAML. Please check your YAML syntax."
	}
	if errors.Is(err, ErrMultipleValues) {
		return "Error: Multiple values found. Please provide a single JSON value or YAML document."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrUnknownFormat) {
		return "Error: Unknown format. Input accepts auto, json or yaml; output accepts text, json or yaml."
	}
	if errors.Is(err, ErrUnknownGuard) {
		return "Error: Unknown guard. Run with --help to see the guard names."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
