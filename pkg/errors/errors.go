package errors

import (
	"errors"
	"fmt"
)

type MalformedRequestError struct {
	line string
}

func NewMalformedRequestError(line string) *MalformedRequestError {
	return &MalformedRequestError{line: line}
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed request line %q", e.line)
}

func IsMalformedRequestError(err error) bool {
	var e *MalformedRequestError
	return errors.As(err, &e)
}

type UnsupportedVersionError struct {
	version string
}

func NewUnsupportedVersionError(version string) *UnsupportedVersionError {
	return &UnsupportedVersionError{version: version}
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported protocol version %q: only HTTP/1.1 is supported", e.version)
}

func IsUnsupportedVersionError(err error) bool {
	var e *UnsupportedVersionError
	return errors.As(err, &e)
}

type UnsupportedMethodError struct {
	method string
}

func NewUnsupportedMethodError(method string) *UnsupportedMethodError {
	return &UnsupportedMethodError{method: method}
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported method %q", e.method)
}

func IsUnsupportedMethodError(err error) bool {
	var e *UnsupportedMethodError
	return errors.As(err, &e)
}

// FileNotFoundError is returned when a request target does not resolve to a
// regular file under the web root.
type FileNotFoundError struct {
	path string
}

func NewFileNotFoundError(path string) *FileNotFoundError {
	return &FileNotFoundError{path: path}
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.path)
}

func IsFileNotFoundError(err error) bool {
	var e *FileNotFoundError
	return errors.As(err, &e)
}

type InvalidConfigurationError struct {
	field  string
	reason string
}

func NewInvalidConfigurationError(field, reason string) *InvalidConfigurationError {
	return &InvalidConfigurationError{field: field, reason: reason}
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.field, e.reason)
}

func IsInvalidConfigurationError(err error) bool {
	var e *InvalidConfigurationError
	return errors.As(err, &e)
}
