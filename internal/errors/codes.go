package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status the CLI reports for the code.
// Configuration problems exit with 2 so wrappers can tell them apart from
// content problems (3) and everything else (1).
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument, CodeNotFound:
		return 2
	case CodeFailedPrecondition, CodeResourceExhausted, CodeUnimplemented, CodeDataLoss:
		return 3
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}
