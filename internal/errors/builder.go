package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	retry    RetryStrategy
	message  string
	cause    error
	context  ErrorContext
}

func newError(category ErrorCategory, severity ErrorSeverity, retry RetryStrategy, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: severity,
		retry:    retry,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WithCause records the underlying error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		retry:    b.retry,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// ConfigError creates an error for a manifest or runner config the user must fix.
func ConfigError(message string) *ErrorBuilder {
	return newError(CategoryConfig, SeverityError, RetryUserAction, message)
}

// ValidationError creates an error for invalid command-line input or build reports.
func ValidationError(message string) *ErrorBuilder {
	return newError(CategoryValidation, SeverityError, RetryUserAction, message)
}

// NotFoundError creates an error for a configured path that does not exist.
func NotFoundError(message string) *ErrorBuilder {
	return newError(CategoryNotFound, SeverityError, RetryUserAction, message)
}

// FileSystemError creates an I/O failure error.
func FileSystemError(message string) *ErrorBuilder {
	return newError(CategoryFileSystem, SeverityFatal, RetryNever, message)
}

// PluginError creates an error for a reporter failure without its own classification.
func PluginError(message string) *ErrorBuilder {
	return newError(CategoryPlugin, SeverityFatal, RetryNever, message)
}

// InternalError creates an error for a program defect.
func InternalError(message string) *ErrorBuilder {
	return newError(CategoryInternal, SeverityFatal, RetryNever, message)
}
