package exceptions

import (
	"errors"
	"fmt"
	"runtime"

	"waterhealth-service/internal/pkg/constvars"
)

// Error kinds callers can match with errors.Is, regardless of the
// CustomError wrapping them.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrRemoteUnavailable  = errors.New("remote health card service unavailable")
	ErrHealthCardNotFound = errors.New("health card not found")
)

type CustomError struct {
	StatusCode         int        `json:"status_code"`
	Success            bool       `json:"success"`
	ClientMessage      string     `json:"message"`
	DevMessage         string     `json:"dev_message,omitempty"`
	Locations          []Location `json:"locations,omitempty"`
	UpstreamStatusCode int        `json:"-"`
	cause              error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(3)},
		cause:         err,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
