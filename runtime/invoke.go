package runtime

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// MaxInvokeDepth bounds nested cross-program invocations.
const MaxInvokeDepth = 4

// Processor executes the instructions addressed to one program.
type Processor interface {
	Process(ic *InvokeContext, data []byte) error
}

type ProcessorFunc func(ic *InvokeContext, data []byte) error

func (f ProcessorFunc) Process(ic *InvokeContext, data []byte) error {
	return f(ic, data)
}

// InvokeContext is what a program sees while processing one instruction. It
// enforces which accounts the program may read, create and modify.
type InvokeContext struct {
	ctx       context.Context
	executor  *Executor
	state     *TState
	programID solanago.PublicKey
	accounts  solanago.AccountMetaSlice
	depth     int
	logger    *zap.Logger
}

func (ic *InvokeContext) Context() context.Context {
	return ic.ctx
}

func (ic *InvokeContext) ProgramID() solanago.PublicKey {
	return ic.programID
}

func (ic *InvokeContext) Logger() *zap.Logger {
	return ic.logger
}

func (ic *InvokeContext) Accounts() solanago.AccountMetaSlice {
	return ic.accounts
}

// AccountAt returns the key at position i of the instruction accounts.
func (ic *InvokeContext) AccountAt(i int) (solanago.PublicKey, error) {
	if i < 0 || i >= len(ic.accounts) {
		return solanago.PublicKey{}, fmt.Errorf("%w: index %d of %d", ErrNotEnoughAccountKeys, i, len(ic.accounts))
	}
	return ic.accounts[i].PublicKey, nil
}

func (ic *InvokeContext) has(key solanago.PublicKey) bool {
	for _, meta := range ic.accounts {
		if meta.PublicKey.Equals(key) {
			return true
		}
	}
	return false
}

func (ic *InvokeContext) IsSigner(key solanago.PublicKey) bool {
	for _, meta := range ic.accounts {
		if meta.IsSigner && meta.PublicKey.Equals(key) {
			return true
		}
	}
	return false
}

func (ic *InvokeContext) IsWritable(key solanago.PublicKey) bool {
	for _, meta := range ic.accounts {
		if meta.IsWritable && meta.PublicKey.Equals(key) {
			return true
		}
	}
	return false
}

// GetAccount reads an account passed to the current instruction.
func (ic *InvokeContext) GetAccount(key solanago.PublicKey) (*Account, error) {
	if !ic.has(key) {
		return nil, fmt.Errorf("%w: %s", ErrMissingAccount, key)
	}
	return ic.state.GetAccount(ic.ctx, key)
}

// Exists reports whether an account passed to the instruction holds state.
func (ic *InvokeContext) Exists(key solanago.PublicKey) (bool, error) {
	if !ic.has(key) {
		return false, fmt.Errorf("%w: %s", ErrMissingAccount, key)
	}
	return ic.state.Exists(ic.ctx, key)
}

// CreateAccount allocates key for the current program. The key must sign the
// instruction, or seeds must derive it from the current program id.
func (ic *InvokeContext) CreateAccount(key solanago.PublicKey, data []byte, seeds [][]byte) error {
	if !ic.IsWritable(key) {
		return fmt.Errorf("%w: %s", ErrReadonlyAccount, key)
	}
	if seeds != nil {
		addr, err := solanago.CreateProgramAddress(seeds, ic.programID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeeds, err)
		}
		if !addr.Equals(key) {
			return fmt.Errorf("%w: derived %s, want %s", ErrInvalidSeeds, addr, key)
		}
	} else if !ic.IsSigner(key) {
		return fmt.Errorf("%w: %s", ErrAccountNotSigner, key)
	}
	exists, err := ic.state.Exists(ic.ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountAlreadyExists, key)
	}
	ic.state.Insert(key, &Account{Owner: ic.programID, Data: data})
	ic.logger.Debug("account created",
		zap.Stringer("account", key),
		zap.Stringer("owner", ic.programID),
		zap.Int("size", len(data)),
	)
	return nil
}

// SetAccountData replaces the data of an account owned by the current program.
func (ic *InvokeContext) SetAccountData(key solanago.PublicKey, data []byte) error {
	if !ic.IsWritable(key) {
		return fmt.Errorf("%w: %s", ErrReadonlyAccount, key)
	}
	acct, err := ic.state.GetAccount(ic.ctx, key)
	if err != nil {
		return err
	}
	if !acct.Owner.Equals(ic.programID) {
		return fmt.Errorf("%w: %s owned by %s", ErrExternalAccountModified, key, acct.Owner)
	}
	acct.Data = data
	ic.state.Insert(key, acct)
	return nil
}

// Invoke runs ix as a cross-program invocation. Each entry of signerSeeds is a
// seed list (bump included) whose derived address signs on behalf of the
// current program.
func (ic *InvokeContext) Invoke(ix solanago.Instruction, signerSeeds ...[][]byte) error {
	if ic.depth+1 > MaxInvokeDepth {
		return ErrCallDepth
	}
	pdaSigners := make(map[solanago.PublicKey]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		addr, err := solanago.CreateProgramAddress(seeds, ic.programID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeeds, err)
		}
		pdaSigners[addr] = true
	}

	metas := ix.Accounts()
	accounts := make(solanago.AccountMetaSlice, 0, len(metas))
	for _, meta := range metas {
		if !ic.has(meta.PublicKey) {
			return fmt.Errorf("%w: %s", ErrMissingAccount, meta.PublicKey)
		}
		if meta.IsWritable && !ic.IsWritable(meta.PublicKey) {
			return fmt.Errorf("%w: %s not writable", ErrPrivilegeEscalation, meta.PublicKey)
		}
		if meta.IsSigner && !ic.IsSigner(meta.PublicKey) && !pdaSigners[meta.PublicKey] {
			return fmt.Errorf("%w: %s not a signer", ErrPrivilegeEscalation, meta.PublicKey)
		}
		accounts = append(accounts, solanago.NewAccountMeta(meta.PublicKey, meta.IsWritable, meta.IsSigner))
	}

	programID := ix.ProgramID()
	processor, ok := ic.executor.processor(programID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProgram, programID)
	}
	data, err := ix.Data()
	if err != nil {
		return err
	}
	callee := &InvokeContext{
		ctx:       ic.ctx,
		executor:  ic.executor,
		state:     ic.state,
		programID: programID,
		accounts:  accounts,
		depth:     ic.depth + 1,
		logger:    ic.executor.logger.With(zap.Stringer("program", programID), zap.Int("depth", ic.depth+1)),
	}
	if err := processor.Process(callee, data); err != nil {
		return fmt.Errorf("invoke %s: %w", programID, err)
	}
	return nil
}

// IsNotFound reports whether err means the account holds no state.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}
