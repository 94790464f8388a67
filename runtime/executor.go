package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Transaction is a list of instructions executed as one atomic unit.
//
// Signers is taken on trust: the executor checks that every signer meta is
// listed there but verifies no signatures. Key custody belongs to whoever
// builds the transaction.
type Transaction struct {
	Instructions []solanago.Instruction
	Signers      []solanago.PublicKey
}

func NewTransaction(signers []solanago.PublicKey, instructions ...solanago.Instruction) *Transaction {
	return &Transaction{Instructions: instructions, Signers: signers}
}

type Option func(*Executor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithRegisterer registers the executor metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(e *Executor) {
		e.registerer = r
	}
}

// Executor runs transactions against a Store. Transactions that declare
// overlapping writable accounts are serialized; the rest run in parallel.
type Executor struct {
	store      Store
	locks      *Lockmap
	logger     *zap.Logger
	registerer prometheus.Registerer
	metrics    *metrics

	mu       sync.RWMutex
	programs map[solanago.PublicKey]Processor
}

func NewExecutor(store Store, opts ...Option) (*Executor, error) {
	e := &Executor{
		store:    store,
		locks:    NewLockmap(64),
		logger:   zap.NewNop(),
		programs: make(map[solanago.PublicKey]Processor),
	}
	for _, opt := range opts {
		opt(e)
	}
	m, err := newMetrics(e.registerer)
	if err != nil {
		return nil, fmt.Errorf("register runtime metrics: %w", err)
	}
	e.metrics = m
	return e, nil
}

func (e *Executor) Register(programID solanago.PublicKey, p Processor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.programs[programID] = p
}

func (e *Executor) processor(programID solanago.PublicKey) (Processor, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.programs[programID]
	return p, ok
}

// GetAccount reads committed state.
func (e *Executor) GetAccount(ctx context.Context, key solanago.PublicKey) (*Account, error) {
	e.locks.RLock(key)
	defer e.locks.RUnlock(key)
	return e.store.GetAccount(ctx, key)
}

func (e *Executor) Store() Store {
	return e.store
}

// Execute runs every instruction of tx and commits the result only when all of
// them succeed.
func (e *Executor) Execute(ctx context.Context, tx *Transaction) (err error) {
	start := time.Now()
	defer func() {
		e.metrics.latency.Observe(time.Since(start).Seconds())
		if err != nil {
			e.metrics.failed.Inc()
			e.logger.Debug("transaction failed", zap.Int("instructions", len(tx.Instructions)), zap.Error(err))
			return
		}
		e.metrics.executed.Inc()
		e.logger.Debug("transaction committed", zap.Int("instructions", len(tx.Instructions)), zap.Duration("took", time.Since(start)))
	}()

	if len(tx.Instructions) == 0 {
		return ErrEmptyTransaction
	}
	signers := make(map[solanago.PublicKey]bool, len(tx.Signers))
	for _, s := range tx.Signers {
		signers[s] = true
	}
	writable := make(map[solanago.PublicKey]bool)
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts() {
			if meta.IsSigner && !signers[meta.PublicKey] {
				return fmt.Errorf("%w: %s", ErrMissingSignature, meta.PublicKey)
			}
			writable[meta.PublicKey] = writable[meta.PublicKey] || meta.IsWritable
		}
	}

	unlock := e.locks.LockAccounts(writable)
	defer unlock()

	state := NewTState(e.store, len(writable))
	for i, ix := range tx.Instructions {
		if err := ctx.Err(); err != nil {
			return err
		}
		programID := ix.ProgramID()
		processor, ok := e.processor(programID)
		if !ok {
			return &InstructionError{Index: i, ProgramID: programID, Err: ErrUnknownProgram}
		}
		data, err := ix.Data()
		if err != nil {
			return &InstructionError{Index: i, ProgramID: programID, Err: err}
		}
		ic := &InvokeContext{
			ctx:       ctx,
			executor:  e,
			state:     state,
			programID: programID,
			accounts:  ix.Accounts(),
			logger:    e.logger.With(zap.Stringer("program", programID), zap.Int("instruction", i)),
		}
		if err := processor.Process(ic, data); err != nil {
			return &InstructionError{Index: i, ProgramID: programID, Err: err}
		}
	}
	return state.Commit(ctx)
}
