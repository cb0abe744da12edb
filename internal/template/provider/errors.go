package provider

import "fmt"

// ProviderErrorType represents the type of provider error.
type ProviderErrorType int

const (
	// ProviderFetchFailed indicates the archive could not be downloaded.
	ProviderFetchFailed ProviderErrorType = iota
	// ProviderNotFound indicates the repository or ref does not exist.
	ProviderNotFound
	// ProviderAuthFailed indicates the repository is not publicly readable.
	ProviderAuthFailed
	// ProviderInvalidSource indicates the source string is malformed.
	ProviderInvalidSource
	// ProviderInvalidArchive indicates the archive could not be unpacked.
	ProviderInvalidArchive
)

// String returns the string representation of the error type.
func (t ProviderErrorType) String() string {
	switch t {
	case ProviderFetchFailed:
		return "FetchFailed"
	case ProviderNotFound:
		return "NotFound"
	case ProviderAuthFailed:
		return "AuthFailed"
	case ProviderInvalidSource:
		return "InvalidSource"
	case ProviderInvalidArchive:
		return "InvalidArchive"
	default:
		return "Unknown"
	}
}

// ProviderError represents a provider-specific error.
type ProviderError struct {
	Type     ProviderErrorType
	Message  string
	Provider string
	// Source is the template source that caused the error.
	Source string
	Cause  error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s provider error [%s] for '%s': %s (caused by: %v)",
			e.Provider, e.Type.String(), e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s provider error [%s] for '%s': %s",
		e.Provider, e.Type.String(), e.Source, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new ProviderError.
func NewProviderError(typ ProviderErrorType, provider, source, message string, cause error) *ProviderError {
	return &ProviderError{
		Type:     typ,
		Message:  message,
		Provider: provider,
		Source:   source,
		Cause:    cause,
	}
}

// NewFetchError creates a fetch failed error.
func NewFetchError(provider, source string, cause error) *ProviderError {
	return NewProviderError(ProviderFetchFailed, provider, source, "failed to fetch template", cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(provider, source string) *ProviderError {
	return NewProviderError(ProviderNotFound, provider, source, "template not found", nil)
}

// NewAuthError creates an authentication failed error.
func NewAuthError(provider, source string) *ProviderError {
	return NewProviderError(ProviderAuthFailed, provider, source, "access denied (private repository?)", nil)
}

// NewInvalidSourceError creates an invalid source error.
func NewInvalidSourceError(provider, source string, cause error) *ProviderError {
	return NewProviderError(ProviderInvalidSource, provider, source, "invalid template source", cause)
}

// NewInvalidArchiveError creates an invalid archive error.
func NewInvalidArchiveError(provider, source string, cause error) *ProviderError {
	return NewProviderError(ProviderInvalidArchive, provider, source, "failed to extract archive", cause)
}
