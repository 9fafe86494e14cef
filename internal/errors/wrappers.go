package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Common error constructors for each failure class of the pipeline

// NewIOError reports a candidate source location that could not be read
func NewIOError(path string, cause error) *BaseError {
	return Wrap(IOErrorCode, fmt.Sprintf("could not read file '%s': %v", path, cause), cause).
		WithContext("path", path)
}

// NewParseError reports source text that is not syntactically valid
func NewParseError(file string, line, column int, detail string, cause error) *BaseError {
	message := fmt.Sprintf("failed to parse %s: %s", file, detail)
	return Wrap(SyntaxErrorCode, message, cause).
		WithContext("file", file).
		WithContext("line", line).
		WithContext("column", column)
}

// NewValidationError reports an anticipated structural problem in a decorator
// declaration. The reason is returned verbatim by Error().
func NewValidationError(reason string) *BaseError {
	return New(ValidationErrorCode, reason)
}

// NewTypeNotFoundError reports a decorated type that no loader could resolve
func NewTypeNotFoundError(qualifiedName string, cause error) *BaseError {
	return Wrap(TypeResolutionErrorCode, fmt.Sprintf("type not found: %s", qualifiedName), cause).
		WithContext("type", qualifiedName).
		WithSuggestions(
			"Add the directory or sources jar declaring the type to the source path",
			"Provide a YAML type descriptor for the type in a descriptor directory",
		)
}

// NewInvariantError reports a broken internal assumption. The cause is an
// assertion failure carrying a stack trace.
func NewInvariantError(format string, args ...interface{}) *BaseError {
	cause := crdb.AssertionFailedf(format, args...)
	return Wrap(InvariantErrorCode, cause.Error(), cause)
}

// IsInvariant reports whether err stems from a broken internal assumption
func IsInvariant(err error) bool {
	return err != nil && (HasCode(err, InvariantErrorCode) || crdb.HasAssertionFailure(err))
}

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to generate %s", item)
	return Wrap(GenerationErrorCode, message, cause).
		WithContext("target", item)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s': %v", operation, path, cause)
	return Wrap(FileSystemErrorCode, message, crdb.WithStack(cause)).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}
