package escrow

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"gigchain/core/events"
	"gigchain/core/types"
)

var (
	errNilState = errors.New("escrow engine: state not configured")

	// ErrProjectNotFound marks lookups for project ids never allocated.
	ErrProjectNotFound = errors.New("escrow: project not found")
	// ErrUnauthorized marks callers that do not hold the role a transition
	// requires.
	ErrUnauthorized = errors.New("escrow: unauthorized caller")
	// ErrInvalidState marks transitions attempted outside the linear
	// Created -> Funded -> InProgress -> Completed walk.
	ErrInvalidState = errors.New("escrow: invalid project state")
	// ErrInsufficientFunds marks transfers the paying balance cannot cover.
	ErrInsufficientFunds = errors.New("escrow: insufficient funds")
)

type engineState interface {
	ProjectPut(*Project) error
	ProjectGet(id uint64) (*Project, bool, error)
	ProjectNextID() (uint64, error)
	EscrowVaultAddress() [20]byte
	GetAccount(addr []byte) (*types.Account, error)
	PutAccount(addr []byte, account *types.Account) error
}

type escrowEvent struct {
	evt *types.Event
}

func (e escrowEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e escrowEvent) Event() *types.Event { return e.evt }

// Engine owns the project lifecycle and fund custody. Every operation
// validates existence, then authorization, then state, then funds before the
// first write, so an error result never leaves a partial mutation behind.
type Engine struct {
	state   engineState
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a project escrow engine with a no-op emitter. Callers can
// override the emitter via SetEmitter.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(escrowEvent{evt: event})
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func cloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func ensureAccount(acc *types.Account) *types.Account {
	if acc == nil {
		return &types.Account{Balance: big.NewInt(0)}
	}
	if acc.Balance == nil {
		acc.Balance = big.NewInt(0)
	}
	return acc
}

func (e *Engine) loadProject(id uint64) (*Project, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	project, ok, err := e.state.ProjectGet(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (e *Engine) storeProject(p *Project) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	return e.state.ProjectPut(p)
}

// transfer moves amount from one balance to the other. The debit side is
// checked before either account is written back.
func (e *Engine) transfer(from, to [20]byte, amount *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	amt := cloneBigInt(amount)
	if amt.Sign() < 0 {
		return fmt.Errorf("escrow: negative transfer amount")
	}
	if amt.Sign() == 0 {
		return nil
	}
	fromAcc, err := e.state.GetAccount(from[:])
	if err != nil {
		return err
	}
	toAcc, err := e.state.GetAccount(to[:])
	if err != nil {
		return err
	}
	fromAcc = ensureAccount(fromAcc)
	toAcc = ensureAccount(toAcc)
	if fromAcc.Balance.Cmp(amt) < 0 {
		return ErrInsufficientFunds
	}
	fromAcc.Balance = new(big.Int).Sub(fromAcc.Balance, amt)
	toAcc.Balance = new(big.Int).Add(toAcc.Balance, amt)
	if err := e.state.PutAccount(from[:], fromAcc); err != nil {
		return err
	}
	return e.state.PutAccount(to[:], toAcc)
}

func (e *Engine) balanceOf(addr [20]byte) (*big.Int, error) {
	acc, err := e.state.GetAccount(addr[:])
	if err != nil {
		return nil, err
	}
	return ensureAccount(acc).Balance, nil
}

// Create allocates the next project id and persists a new project in the
// Created state. The caller becomes the owning client and the amount is fixed
// for the life of the project. No balance moves here.
func (e *Engine) Create(caller, freelancer [20]byte, amount *big.Int) (*Project, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	amt := cloneBigInt(amount)
	if amt.Sign() <= 0 {
		return nil, fmt.Errorf("escrow: amount must be positive")
	}
	id, err := e.state.ProjectNextID()
	if err != nil {
		return nil, err
	}
	project := &Project{
		ID:         id,
		Client:     caller,
		Freelancer: freelancer,
		Amount:     amt,
		Status:     ProjectCreated,
		CreatedAt:  e.now(),
	}
	if err := e.storeProject(project); err != nil {
		return nil, err
	}
	e.emit(NewProjectCreatedEvent(project))
	return project.Clone(), nil
}

// Fund moves the project amount from the client to the module vault and marks
// the project as funded. Only the owning client may fund, and only from the
// Created state.
func (e *Engine) Fund(caller [20]byte, id uint64) error {
	project, err := e.loadProject(id)
	if err != nil {
		return err
	}
	if project.Client != caller {
		return fmt.Errorf("%w: fund requires the project client", ErrUnauthorized)
	}
	if project.Status != ProjectCreated {
		return fmt.Errorf("%w: cannot fund in status %d", ErrInvalidState, project.Status)
	}
	balance, err := e.balanceOf(project.Client)
	if err != nil {
		return err
	}
	if balance.Cmp(project.Amount) < 0 {
		return ErrInsufficientFunds
	}
	if err := e.transfer(project.Client, e.state.EscrowVaultAddress(), project.Amount); err != nil {
		return err
	}
	project.Status = ProjectFunded
	if err := e.storeProject(project); err != nil {
		return err
	}
	e.emit(NewProjectFundedEvent(project))
	return nil
}

// Start transitions a funded project into progress. Only the assigned
// freelancer may start. No balance moves here.
func (e *Engine) Start(caller [20]byte, id uint64) error {
	project, err := e.loadProject(id)
	if err != nil {
		return err
	}
	if project.Freelancer != caller {
		return fmt.Errorf("%w: start requires the project freelancer", ErrUnauthorized)
	}
	if project.Status != ProjectFunded {
		return fmt.Errorf("%w: cannot start in status %d", ErrInvalidState, project.Status)
	}
	project.Status = ProjectInProgress
	if err := e.storeProject(project); err != nil {
		return err
	}
	e.emit(NewProjectStartedEvent(project))
	return nil
}

// Complete releases the escrowed amount from the module vault to the
// freelancer and marks the project completed. Only the owning client may
// complete, and only from the InProgress state. Completed is terminal.
func (e *Engine) Complete(caller [20]byte, id uint64) error {
	project, err := e.loadProject(id)
	if err != nil {
		return err
	}
	if project.Client != caller {
		return fmt.Errorf("%w: complete requires the project client", ErrUnauthorized)
	}
	if project.Status != ProjectInProgress {
		return fmt.Errorf("%w: cannot complete in status %d", ErrInvalidState, project.Status)
	}
	vault := e.state.EscrowVaultAddress()
	balance, err := e.balanceOf(vault)
	if err != nil {
		return err
	}
	if balance.Cmp(project.Amount) < 0 {
		return ErrInsufficientFunds
	}
	if err := e.transfer(vault, project.Freelancer, project.Amount); err != nil {
		return err
	}
	project.Status = ProjectCompleted
	project.CompletedAt = e.now()
	if err := e.storeProject(project); err != nil {
		return err
	}
	e.emit(NewProjectCompletedEvent(project))
	return nil
}

// Get returns the project stored under id, reporting ok=false when the id was
// never allocated.
func (e *Engine) Get(id uint64) (*Project, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	return e.state.ProjectGet(id)
}
