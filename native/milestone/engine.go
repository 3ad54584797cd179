package milestone

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"gigchain/core/events"
	"gigchain/core/types"
)

var (
	errNilState  = errors.New("milestone engine: state not configured")
	errNilSource = errors.New("milestone engine: project source not configured")

	// ErrProjectNotFound marks milestone operations against a project id the
	// project source cannot resolve. Role checks fail closed on it.
	ErrProjectNotFound = errors.New("milestone: project not found")
	// ErrMilestoneNotFound marks lookups for milestone ids never allocated on
	// the project.
	ErrMilestoneNotFound = errors.New("milestone: milestone not found")
	// ErrUnauthorized marks callers that do not hold the project role a
	// transition requires.
	ErrUnauthorized = errors.New("milestone: unauthorized caller")
	// ErrInvalidState marks transitions attempted outside the linear
	// Created -> Approved -> Completed -> Paid walk.
	ErrInvalidState = errors.New("milestone: invalid milestone state")
)

// ProjectRoles carries the principals a milestone transition is gated on.
type ProjectRoles struct {
	Client     [20]byte
	Freelancer [20]byte
}

// ProjectSource is the read-only capability the engine holds on the project
// escrow ledger. Roles are resolved through it on every call rather than
// cached, so authorization always reflects current project state.
type ProjectSource interface {
	ProjectRoles(id uint64) (ProjectRoles, bool, error)
}

type engineState interface {
	MilestonePut(*Milestone) error
	MilestoneGet(projectID, id uint64) (*Milestone, bool, error)
	MilestoneCount(projectID uint64) (uint64, error)
	MilestoneSetCount(projectID, count uint64) error
}

type milestoneEvent struct {
	evt *types.Event
}

func (e milestoneEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e milestoneEvent) Event() *types.Event { return e.evt }

// Engine owns the per-project milestone lifecycle. It moves no currency:
// paying a milestone flips a status marker layered atop the project escrow's
// own fund custody.
type Engine struct {
	state    engineState
	projects ProjectSource
	emitter  events.Emitter
	nowFn    func() int64
}

// NewEngine creates a milestone engine with a no-op emitter. Callers can
// override the emitter via SetEmitter.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetProjectSource configures the read-only project capability used for role
// checks.
func (e *Engine) SetProjectSource(src ProjectSource) { e.projects = src }

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
	e.emitter.Emit(milestoneEvent{evt: event})
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) projectRoles(projectID uint64) (ProjectRoles, error) {
	if e == nil || e.projects == nil {
		return ProjectRoles{}, errNilSource
	}
	roles, ok, err := e.projects.ProjectRoles(projectID)
	if err != nil {
		return ProjectRoles{}, err
	}
	if !ok {
		return ProjectRoles{}, ErrProjectNotFound
	}
	return roles, nil
}

func (e *Engine) loadMilestone(projectID, id uint64) (*Milestone, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	ms, ok, err := e.state.MilestoneGet(projectID, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMilestoneNotFound
	}
	return ms, nil
}

func (e *Engine) storeMilestone(ms *Milestone) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	return e.state.MilestonePut(ms)
}

// Create inserts a new milestone on the project, assigning the next id from
// the per-project counter. Only the project's client may create milestones.
// The amount is not checked against the remaining project amount.
func (e *Engine) Create(caller [20]byte, projectID uint64, description string, amount *big.Int) (*Milestone, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	roles, err := e.projectRoles(projectID)
	if err != nil {
		return nil, err
	}
	if roles.Client != caller {
		return nil, fmt.Errorf("%w: create requires the project client", ErrUnauthorized)
	}
	amt := big.NewInt(0)
	if amount != nil {
		amt = new(big.Int).Set(amount)
	}
	if amt.Sign() < 0 {
		return nil, fmt.Errorf("milestone: amount must be non-negative")
	}
	count, err := e.state.MilestoneCount(projectID)
	if err != nil {
		return nil, err
	}
	id := count + 1
	ms := &Milestone{
		ProjectID:   projectID,
		ID:          id,
		Description: description,
		Amount:      amt,
		Status:      StatusCreated,
		CreatedAt:   e.now(),
	}
	if err := e.storeMilestone(ms); err != nil {
		return nil, err
	}
	if err := e.state.MilestoneSetCount(projectID, id); err != nil {
		return nil, err
	}
	e.emit(NewMilestoneCreatedEvent(ms))
	return ms.Clone(), nil
}

// Approve transitions a created milestone to approved. Only the project's
// client may approve.
func (e *Engine) Approve(caller [20]byte, projectID, id uint64) error {
	roles, err := e.projectRoles(projectID)
	if err != nil {
		return err
	}
	if roles.Client != caller {
		return fmt.Errorf("%w: approve requires the project client", ErrUnauthorized)
	}
	ms, err := e.loadMilestone(projectID, id)
	if err != nil {
		return err
	}
	if ms.Status != StatusCreated {
		return fmt.Errorf("%w: cannot approve in status %d", ErrInvalidState, ms.Status)
	}
	ms.Status = StatusApproved
	if err := e.storeMilestone(ms); err != nil {
		return err
	}
	e.emit(NewMilestoneApprovedEvent(ms))
	return nil
}

// Complete transitions an approved milestone to completed and records the
// completion time. Only the project's freelancer may complete.
func (e *Engine) Complete(caller [20]byte, projectID, id uint64) error {
	roles, err := e.projectRoles(projectID)
	if err != nil {
		return err
	}
	if roles.Freelancer != caller {
		return fmt.Errorf("%w: complete requires the project freelancer", ErrUnauthorized)
	}
	ms, err := e.loadMilestone(projectID, id)
	if err != nil {
		return err
	}
	if ms.Status != StatusApproved {
		return fmt.Errorf("%w: cannot complete in status %d", ErrInvalidState, ms.Status)
	}
	ms.Status = StatusCompleted
	ms.CompletedAt = e.now()
	if err := e.storeMilestone(ms); err != nil {
		return err
	}
	e.emit(NewMilestoneCompletedEvent(ms))
	return nil
}

// Pay marks a completed milestone as paid and records the payment time. Only
// the project's client may pay. No currency moves: the project escrow release
// is the real payment.
func (e *Engine) Pay(caller [20]byte, projectID, id uint64) error {
	roles, err := e.projectRoles(projectID)
	if err != nil {
		return err
	}
	if roles.Client != caller {
		return fmt.Errorf("%w: pay requires the project client", ErrUnauthorized)
	}
	ms, err := e.loadMilestone(projectID, id)
	if err != nil {
		return err
	}
	if ms.Status != StatusCompleted {
		return fmt.Errorf("%w: cannot pay in status %d", ErrInvalidState, ms.Status)
	}
	ms.Status = StatusPaid
	ms.PaidAt = e.now()
	if err := e.storeMilestone(ms); err != nil {
		return err
	}
	e.emit(NewMilestonePaidEvent(ms))
	return nil
}

// Get returns the milestone stored under (projectID, id), reporting ok=false
// when the id was never allocated.
func (e *Engine) Get(projectID, id uint64) (*Milestone, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	return e.state.MilestoneGet(projectID, id)
}

// Count returns the number of milestones created on the project. It increases
// by exactly one per successful Create and is untouched by every other
// operation.
func (e *Engine) Count(projectID uint64) (uint64, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	return e.state.MilestoneCount(projectID)
}
