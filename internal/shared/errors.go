package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Credential errors, the caller should prompt re-entry
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrCredentialsExpired = fmt.Errorf("credentials expired")

	// Transport and provider errors
	ErrAPIRequest = fmt.Errorf("API request failed")
	ErrProvider   = fmt.Errorf("provider error")
	ErrTimeout    = fmt.Errorf("operation timed out")

	// Not-found errors
	ErrTrackNotFound = fmt.Errorf("track not found")
	ErrAlbumNotFound = fmt.Errorf("album not found")
	ErrVideoNotFound = fmt.Errorf("video not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
