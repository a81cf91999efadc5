package blindnet

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by New and Init when the configuration is
	// unusable, most commonly an application key that isn't Ed25519 key
	// material. Nothing has touched the network when this is returned.
	ErrConfiguration = errors.New("blindnet: invalid configuration")

	// ErrTokenSigning is returned when the signature primitive fails while
	// minting a token.
	ErrTokenSigning = errors.New("blindnet: token signing failed")

	// ErrAuthentication is returned when the service rejects the client
	// credential twice in a row, once before and once after a refresh.
	ErrAuthentication = errors.New(
		"blindnet: authentication failed, make sure you are using the correct application key and application id",
	)

	// ErrInvalidArgument is returned for an empty user, group or data ID.
	ErrInvalidArgument = errors.New("blindnet: invalid argument")
)

// ServiceError is returned when the service answers a lifecycle request with
// anything other than 200 or 401.
type ServiceError struct {
	// Op names the operation, e.g. "forget_data"
	Op string

	// Message is the human readable context, e.g.
	// "Error while forgetting the data with id 42"
	Message string

	// StatusCode is the literal HTTP status code the service returned
	StatusCode int
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s. API response code was %d", e.Message, e.StatusCode)
}

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}

func signingError(err error) error {
	return fmt.Errorf("%w: %w", ErrTokenSigning, err)
}
