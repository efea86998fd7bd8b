package models

import "fmt"

// NotFoundError is returned when a user or a city is absent.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

var (
	// ErrUserNotFound is returned when no user owns the given token.
	ErrUserNotFound = &NotFoundError{Entity: "User"}
	// ErrCityNotFound is returned when the catalog has no city with the given name.
	ErrCityNotFound = &NotFoundError{Entity: "City"}
)

// DuplicateCityError is returned when a user already tracks the city being added.
type DuplicateCityError struct {
	CityName string
	Country  string
}

func (e *DuplicateCityError) Error() string {
	return "City already exists in the database"
}

// MissingParametersError is returned when neither cityName+country nor lat+lon were supplied.
type MissingParametersError struct{}

func (e *MissingParametersError) Error() string {
	return "Missing cityName or lat/lon in request"
}

// UpstreamDataError is returned when the weather API did not answer with a usable payload.
// Message is safe to show to clients.
type UpstreamDataError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream error (code %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream error (code %d): %s", e.StatusCode, e.Message)
}

func (e *UpstreamDataError) Unwrap() error {
	return e.Err
}

// InternalError wraps unexpected failures, database errors included.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error during %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
