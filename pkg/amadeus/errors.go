package amadeus

import "fmt"

// AuthError means token issuance failed after all retry attempts.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("amadeus: token request failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RequestError is a non-2xx response from a data endpoint. It carries the
// status code and raw body so callers can log or surface the provider message.
type RequestError struct {
	Path   string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("amadeus: GET %s failed: %d %s", e.Path, e.Status, e.Body)
}

// ResolutionError means a location keyword matched zero candidates.
type ResolutionError struct {
	Keyword string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("amadeus: no IATA match for %q", e.Keyword)
}
