package main

import "fmt"

// Process exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 1 // wrong argument count or bad flag
	ExitFileOpen  = 2 // input file cannot be opened
	ExitParse     = 3 // malformed input record
	ExitIOFailure = 4 // read/write failure after startup
)

// ExitError carries the message printed to stderr and the exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(msg string) *ExitError {
	return &ExitError{Code: ExitUsage, Message: msg}
}
