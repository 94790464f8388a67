package nftfraction

import "fmt"

type ErrorCode uint32

const (
	ErrCodeAddressMismatch ErrorCode = 6000 + iota
	ErrCodeInvalidState
	ErrCodeCapacityExceeded
	ErrCodeAuthorizationFailure
	ErrCodeInvalidArgument
)

// ProgramError is returned by the fraction program. Two errors match under
// errors.Is when their codes are equal.
type ProgramError struct {
	Code ErrorCode
	Msg  string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("program error %d: %s", e.Code, e.Msg)
}

func (e *ProgramError) Is(target error) bool {
	t, ok := target.(*ProgramError)
	return ok && t.Code == e.Code
}

var (
	ErrAddressMismatch      = &ProgramError{Code: ErrCodeAddressMismatch, Msg: "address mismatch"}
	ErrInvalidState         = &ProgramError{Code: ErrCodeInvalidState, Msg: "invalid state"}
	ErrCapacityExceeded     = &ProgramError{Code: ErrCodeCapacityExceeded, Msg: "capacity exceeded"}
	ErrAuthorizationFailure = &ProgramError{Code: ErrCodeAuthorizationFailure, Msg: "authorization failure"}
	ErrInvalidArgument      = &ProgramError{Code: ErrCodeInvalidArgument, Msg: "invalid argument"}
)

func newError(base *ProgramError, format string, args ...interface{}) error {
	return &ProgramError{Code: base.Code, Msg: base.Msg + ": " + fmt.Sprintf(format, args...)}
}
