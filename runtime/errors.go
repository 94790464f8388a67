package runtime

import (
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrAccountAlreadyExists    = errors.New("account already exists")
	ErrAccountNotSigner        = errors.New("new account must sign")
	ErrMissingAccount          = errors.New("account not passed to instruction")
	ErrMissingSignature        = errors.New("missing required signature")
	ErrReadonlyAccount         = errors.New("account is not writable")
	ErrExternalAccountModified = errors.New("program modified an account it does not own")
	ErrPrivilegeEscalation     = errors.New("cross-program invocation escalated privileges")
	ErrInvalidSeeds            = errors.New("seeds do not derive the account address")
	ErrUnknownProgram          = errors.New("unknown program")
	ErrCallDepth               = errors.New("cross-program invocation depth exceeded")
	ErrNotEnoughAccountKeys    = errors.New("not enough account keys")
	ErrEmptyTransaction        = errors.New("transaction has no instructions")
)

// InstructionError reports which instruction of a transaction failed.
type InstructionError struct {
	Index     int
	ProgramID solanago.PublicKey
	Err       error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction %d (%s): %v", e.Index, e.ProgramID, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}
