package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscriminatorNotFound is returned when a document carries no
	// guideline context parameter at all.
	ErrDiscriminatorNotFound = errors.New("profile discriminator not found")

	// ErrUnknownProfile is matched by *UnknownProfileError.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrUnknownParameter is matched by *UnknownParameterError.
	ErrUnknownParameter = errors.New("unknown profile parameter")
)

// UnknownProfileError reports a discriminator that matches no table entry.
type UnknownProfileError struct {
	Value string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile: %q", e.Value)
}

func (e *UnknownProfileError) Is(target error) bool {
	return target == ErrUnknownProfile
}

// UnknownParameterError reports a parameter key the profile does not define.
type UnknownParameterError struct {
	Profile string
	Key     string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q for profile %s", e.Key, e.Profile)
}

func (e *UnknownParameterError) Is(target error) bool {
	return target == ErrUnknownParameter
}
