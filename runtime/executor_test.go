package runtime

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const (
	opCreate byte = iota
	opIncrement
	opFail
	opCreatePDA
	opForward
)

var (
	counterProgram = solanago.NewWallet().PublicKey()
	proxyProgram   = solanago.NewWallet().PublicKey()
	errBoom        = errors.New("boom")
)

// counterProcessor keeps a u64 in every account it owns.
func counterProcessor(ic *InvokeContext, data []byte) error {
	target, err := ic.AccountAt(0)
	if err != nil {
		return err
	}
	switch data[0] {
	case opCreate:
		return ic.CreateAccount(target, make([]byte, 8), nil)
	case opCreatePDA:
		seeds := [][]byte{data[1 : len(data)-1], data[len(data)-1:]}
		return ic.CreateAccount(target, make([]byte, 8), seeds)
	case opIncrement:
		acct, err := ic.GetAccount(target)
		if err != nil {
			return err
		}
		v := binary.LittleEndian.Uint64(acct.Data)
		binary.LittleEndian.PutUint64(acct.Data, v+1)
		return ic.SetAccountData(target, acct.Data)
	case opFail:
		return errBoom
	}
	return errors.New("unknown op")
}

// proxyProcessor forwards an increment to the counter program, signing for the
// PDA derived from the seed in data.
func proxyProcessor(ic *InvokeContext, data []byte) error {
	target, err := ic.AccountAt(0)
	if err != nil {
		return err
	}
	seed := data[1:]
	_, bump, err := solanago.FindProgramAddress([][]byte{seed}, ic.ProgramID())
	if err != nil {
		return err
	}
	pda, _ := ic.AccountAt(1)
	ix := solanago.NewInstruction(counterProgram, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(target, true, false),
		solanago.NewAccountMeta(pda, false, true),
	}, []byte{opIncrement})
	return ic.Invoke(ix, [][]byte{seed, {bump}})
}

func newTestExecutor(t *testing.T, opts ...Option) *Executor {
	t.Helper()
	e, err := NewExecutor(NewMemStore(), opts...)
	require.NoError(t, err)
	e.Register(counterProgram, ProcessorFunc(counterProcessor))
	e.Register(proxyProgram, ProcessorFunc(proxyProcessor))
	return e
}

func counterIx(op byte, target solanago.PublicKey, writable, signer bool, extra ...byte) solanago.Instruction {
	return solanago.NewInstruction(counterProgram, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(target, writable, signer),
	}, append([]byte{op}, extra...))
}

func readCounter(t *testing.T, e *Executor, key solanago.PublicKey) uint64 {
	t.Helper()
	acct, err := e.GetAccount(context.Background(), key)
	require.NoError(t, err)
	return binary.LittleEndian.Uint64(acct.Data)
}

func TestExecuteCommitsAndRollsBack(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	e := newTestExecutor(t, WithRegisterer(reg))
	key := solanago.NewWallet().PublicKey()

	require.NoError(e.Execute(ctx, NewTransaction([]solanago.PublicKey{key},
		counterIx(opCreate, key, true, true),
		counterIx(opIncrement, key, true, false),
	)))
	require.Equal(uint64(1), readCounter(t, e, key))

	err := e.Execute(ctx, NewTransaction(nil,
		counterIx(opIncrement, key, true, false),
		counterIx(opFail, key, true, false),
	))
	require.ErrorIs(err, errBoom)
	var ixErr *InstructionError
	require.ErrorAs(err, &ixErr)
	require.Equal(1, ixErr.Index)
	require.Equal(uint64(1), readCounter(t, e, key))

	require.Equal(1.0, testutil.ToFloat64(e.metrics.executed))
	require.Equal(1.0, testutil.ToFloat64(e.metrics.failed))
}

func TestExecuteRequiresSignatures(t *testing.T) {
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()
	err := e.Execute(context.Background(), NewTransaction(nil, counterIx(opCreate, key, true, true)))
	require.ErrorIs(t, err, ErrMissingSignature)
}

// Listing a key in Signers is all the executor asks for; there is no
// signature material to check.
func TestExecuteTrustsDeclaredSigners(t *testing.T) {
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()
	tx := &Transaction{
		Instructions: []solanago.Instruction{counterIx(opCreate, key, true, true)},
		Signers:      []solanago.PublicKey{key},
	}
	require.NoError(t, e.Execute(context.Background(), tx))
	require.Equal(t, uint64(0), readCounter(t, e, key))
}

func TestOwnershipDiscipline(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()

	// creation without a signature
	err := e.Execute(ctx, NewTransaction(nil, counterIx(opCreate, key, true, false)))
	require.ErrorIs(err, ErrAccountNotSigner)

	require.NoError(e.Execute(ctx, NewTransaction([]solanago.PublicKey{key}, counterIx(opCreate, key, true, true))))

	err = e.Execute(ctx, NewTransaction([]solanago.PublicKey{key}, counterIx(opCreate, key, true, true)))
	require.ErrorIs(err, ErrAccountAlreadyExists)

	err = e.Execute(ctx, NewTransaction(nil, counterIx(opIncrement, key, false, false)))
	require.ErrorIs(err, ErrReadonlyAccount)

	// the proxy does not own the counter account
	foreign := solanago.NewInstruction(proxyProgram, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(key, true, false),
	}, []byte{0})
	e.Register(proxyProgram, ProcessorFunc(func(ic *InvokeContext, _ []byte) error {
		return ic.SetAccountData(key, make([]byte, 8))
	}))
	err = e.Execute(ctx, NewTransaction(nil, foreign))
	require.ErrorIs(err, ErrExternalAccountModified)
}

func TestCreateProgramDerivedAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newTestExecutor(t)

	seed := []byte("counter")
	pda, bump, err := solanago.FindProgramAddress([][]byte{seed}, counterProgram)
	require.NoError(err)
	extra := append(append([]byte{}, seed...), bump)

	other := solanago.NewWallet().PublicKey()
	err = e.Execute(ctx, NewTransaction(nil, counterIx(opCreatePDA, other, true, false, extra...)))
	require.ErrorIs(err, ErrInvalidSeeds)

	require.NoError(e.Execute(ctx, NewTransaction(nil, counterIx(opCreatePDA, pda, true, false, extra...))))
	acct, err := e.GetAccount(ctx, pda)
	require.NoError(err)
	require.Equal(counterProgram, acct.Owner)
}

func TestInvokeSignsWithSeeds(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()
	require.NoError(e.Execute(ctx, NewTransaction([]solanago.PublicKey{key}, counterIx(opCreate, key, true, true))))

	seed := []byte("authority")
	pda, _, err := solanago.FindProgramAddress([][]byte{seed}, proxyProgram)
	require.NoError(err)

	forward := func(writable bool) solanago.Instruction {
		return solanago.NewInstruction(proxyProgram, solanago.AccountMetaSlice{
			solanago.NewAccountMeta(key, writable, false),
			solanago.NewAccountMeta(pda, false, false),
		}, append([]byte{opForward}, seed...))
	}

	require.NoError(e.Execute(ctx, NewTransaction(nil, forward(true))))
	require.Equal(uint64(1), readCounter(t, e, key))

	err = e.Execute(ctx, NewTransaction(nil, forward(false)))
	require.ErrorIs(err, ErrPrivilegeEscalation)
	require.Equal(uint64(1), readCounter(t, e, key))
}

func TestInvokeRejectsForeignSigner(t *testing.T) {
	ctx := context.Background()
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()
	require.NoError(t, e.Execute(ctx, NewTransaction([]solanago.PublicKey{key}, counterIx(opCreate, key, true, true))))

	stranger := solanago.NewWallet().PublicKey()
	e.Register(proxyProgram, ProcessorFunc(func(ic *InvokeContext, _ []byte) error {
		return ic.Invoke(solanago.NewInstruction(counterProgram, solanago.AccountMetaSlice{
			solanago.NewAccountMeta(key, true, false),
			solanago.NewAccountMeta(stranger, false, true),
		}, []byte{opIncrement}))
	}))
	err := e.Execute(ctx, NewTransaction(nil, solanago.NewInstruction(proxyProgram, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(key, true, false),
		solanago.NewAccountMeta(stranger, false, false),
	}, []byte{0})))
	require.ErrorIs(t, err, ErrPrivilegeEscalation)
}

func TestInvokeRequiresPassedAccounts(t *testing.T) {
	ctx := context.Background()
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()
	require.NoError(t, e.Execute(ctx, NewTransaction([]solanago.PublicKey{key}, counterIx(opCreate, key, true, true))))

	e.Register(proxyProgram, ProcessorFunc(func(ic *InvokeContext, _ []byte) error {
		return ic.Invoke(solanago.NewInstruction(counterProgram, solanago.AccountMetaSlice{
			solanago.NewAccountMeta(key, false, false),
		}, []byte{opIncrement}))
	}))
	err := e.Execute(ctx, NewTransaction(nil, solanago.NewInstruction(proxyProgram, nil, []byte{0})))
	require.ErrorIs(t, err, ErrMissingAccount)
}

func TestInvokeDepth(t *testing.T) {
	ctx := context.Background()
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()
	loop := solanago.NewInstruction(proxyProgram, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(key, false, false),
	}, []byte{0})
	e.Register(proxyProgram, ProcessorFunc(func(ic *InvokeContext, _ []byte) error {
		return ic.Invoke(loop)
	}))
	err := e.Execute(ctx, NewTransaction(nil, loop))
	require.ErrorIs(t, err, ErrCallDepth)
}

func TestUnknownProgram(t *testing.T) {
	e := newTestExecutor(t)
	ix := solanago.NewInstruction(solanago.NewWallet().PublicKey(), nil, []byte{0})
	err := e.Execute(context.Background(), NewTransaction(nil, ix))
	require.ErrorIs(t, err, ErrUnknownProgram)
	require.ErrorIs(t, e.Execute(context.Background(), NewTransaction(nil)), ErrEmptyTransaction)
}

func TestConcurrentIncrementsSerialize(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newTestExecutor(t)
	key := solanago.NewWallet().PublicKey()
	require.NoError(e.Execute(ctx, NewTransaction([]solanago.PublicKey{key}, counterIx(opCreate, key, true, true))))

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Execute(ctx, NewTransaction(nil, counterIx(opIncrement, key, true, false)))
		}()
	}
	wg.Wait()
	require.Equal(uint64(n), readCounter(t, e, key))
}
