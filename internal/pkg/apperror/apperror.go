// Package apperror pairs errors with the HTTP status they map to.
//
// Modules declare package-level sentinels with New and attach the
// offending identifiers at the call site with Wrap:
//
//	var ErrNotFound = apperror.New(http.StatusNotFound, "booking not found")
//
//	return apperror.Wrap(ErrNotFound, http.StatusNotFound,
//		fmt.Sprintf("booking id = %d is not found", id))
//
// errors.Is(err, ErrNotFound) matches the wrapped form through Unwrap,
// while the outer message is what the caller sees.
package apperror

// AppError is a user-facing message plus the status code to respond with.
type AppError struct {
	Code    int
	Message string
	Err     error // wrapped cause, kept out of the response body
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New declares an AppError with no cause, typically a sentinel.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap layers a code and message over an existing error, keeping it
// reachable for errors.Is and errors.As.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
