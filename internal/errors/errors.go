// Package errors provides enhanced error handling with component and
// category metadata. It wraps the standard library errors package, so
// callers can use it as a drop-in replacement and still get errors.Is /
// errors.As semantics on the wrapped chain.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCategory groups errors for reporting.
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryFileIO        ErrorCategory = "file-io"
	CategoryFileParsing   ErrorCategory = "file-parsing"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryDatabase      ErrorCategory = "database"
	CategoryWorker        ErrorCategory = "worker-pool"
	CategoryNotFound      ErrorCategory = "not-found"
	CategoryGeneric       ErrorCategory = "generic"
)

// ComponentUnknown is used when the component was not set.
const ComponentUnknown = "unknown"

// EnhancedError wraps an error with component, category and context data.
type EnhancedError struct {
	Err       error
	Component string
	Category  ErrorCategory
	Context   map[string]any
	Timestamp time.Time
}

// Error implements the error interface.
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is allows matching either the wrapped chain or another EnhancedError of
// the same category.
func (ee *EnhancedError) Is(target error) bool {
	var other *EnhancedError
	if stderrors.As(target, &other) {
		return ee.Category == other.Category
	}
	return stderrors.Is(ee.Err, target)
}

// ErrorBuilder provides a fluent interface for creating enhanced errors.
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New starts building an enhanced error around err.
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// Newf starts building an enhanced error from a format string.
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name.
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category.
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds one key/value pair of context data.
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Build finalizes the enhanced error.
func (eb *ErrorBuilder) Build() *EnhancedError {
	component := eb.component
	if component == "" {
		component = ComponentUnknown
	}
	category := eb.category
	if category == "" {
		category = CategoryGeneric
	}
	return &EnhancedError{
		Err:       eb.err,
		Component: component,
		Category:  category,
		Context:   eb.context,
		Timestamp: time.Now(),
	}
}

// Standard library passthroughs, so callers need only one errors import.

// NewStd creates a plain standard error without enhancement.
func NewStd(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling Unwrap on err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join wraps a list of errors into one.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// IsCategory reports whether err carries the given category anywhere in
// its chain.
func IsCategory(err error, category ErrorCategory) bool {
	var ee *EnhancedError
	return stderrors.As(err, &ee) && ee.Category == category
}

// IsNotFound reports whether err is categorized as not-found.
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}
