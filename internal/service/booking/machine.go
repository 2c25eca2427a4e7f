package booking

import (
	"sync"
	"time"

	"github.com/Domenick1991/resortbooking/internal/clock"
	"github.com/Domenick1991/resortbooking/internal/confirmation"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/Domenick1991/resortbooking/internal/pricing"
	"github.com/Domenick1991/resortbooking/internal/validation"
)

const DefaultSubmitDelay = 1500 * time.Millisecond

type StateMachine interface {
	State() domain.BookingState
	Dispatch(action Action)
	Advance() bool
	Retreat() bool
	JumpTo(step domain.Step)
	Submit() bool
	Reset()
	Close()
}

type CodeGenerator interface {
	Generate() string
}

// CompletionHook receives the state right after a submission completes.
type CompletionHook func(state domain.BookingState)

// Machine owns one BookingState. All changes go through Reduce; the only
// asynchronous work is the simulated submission delay.
type Machine struct {
	mu          sync.Mutex
	state       domain.BookingState
	resort      domain.ResortConfig
	catalog     []domain.AddOn
	clock       clock.Clock
	codes       CodeGenerator
	submitDelay time.Duration
	onComplete  CompletionHook

	submissions uint64
	pending     map[uint64]clock.Timer
	closed      bool
}

type Option func(*Machine)

func WithClock(c clock.Clock) Option {
	return func(m *Machine) {
		m.clock = c
	}
}

func WithCodeGenerator(g CodeGenerator) Option {
	return func(m *Machine) {
		m.codes = g
	}
}

func WithSubmitDelay(d time.Duration) Option {
	return func(m *Machine) {
		m.submitDelay = d
	}
}

func WithCatalog(addOns []domain.AddOn) Option {
	return func(m *Machine) {
		m.catalog = addOns
	}
}

func WithCompletionHook(h CompletionHook) Option {
	return func(m *Machine) {
		m.onComplete = h
	}
}

func NewMachine(resort domain.ResortConfig, opts ...Option) *Machine {
	m := &Machine{
		state:       domain.InitialState(),
		resort:      resort,
		catalog:     domain.AddOnsData,
		clock:       clock.New(),
		codes:       confirmation.NewGenerator(),
		submitDelay: DefaultSubmitDelay,
		pending:     make(map[uint64]clock.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) State() domain.BookingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

func (m *Machine) Resort() domain.ResortConfig {
	return m.resort
}

func (m *Machine) Catalog() []domain.AddOn {
	return m.catalog
}

func (m *Machine) Dispatch(action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, action)
}

func (m *Machine) StepValid(step domain.Step) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return validation.IsStepValid(step, m.state, m.resort)
}

func (m *Machine) Nights() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Dates.Nights()
}

// LivePricing is recomputed on every call and never stored.
func (m *Machine) LivePricing() (domain.PricingBreakdown, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return pricing.ForState(m.state, m.catalog, m.resort)
}

// Advance moves one step forward if the current step is valid.
func (m *Machine) Advance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !validation.IsStepValid(m.state.CurrentStep, m.state, m.resort) {
		return false
	}
	from := m.state.CurrentStep
	m.state = Reduce(m.state, NextStep{})
	return m.state.CurrentStep != from
}

func (m *Machine) Retreat() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	from := m.state.CurrentStep
	m.state = Reduce(m.state, PrevStep{})
	return m.state.CurrentStep != from
}

// JumpTo does not check reachability; callers gate it.
func (m *Machine) JumpTo(step domain.Step) {
	m.Dispatch(GoToStep{Step: step})
}

func (m *Machine) SetDates(dates domain.BookingDates) {
	m.Dispatch(SetDates{Dates: dates})
}

func (m *Machine) SelectAccommodation(v domain.Villa) {
	m.Dispatch(SelectAccommodation{Villa: v})
}

func (m *Machine) ToggleAddOn(id string) {
	m.Dispatch(ToggleAddOn{ID: id})
}

func (m *Machine) SetAddOnQuantity(id string, quantity int) {
	m.Dispatch(SetAddOnQuantity{ID: id, Quantity: quantity})
}

func (m *Machine) UpdateGuestDetails(patch domain.GuestDetailsPatch) {
	m.Dispatch(UpdateGuestDetails{Patch: patch})
}

func (m *Machine) SetError(field, message string) {
	m.Dispatch(SetError{Field: field, Message: message})
}

func (m *Machine) ClearError(field string) {
	m.Dispatch(ClearError{Field: field})
}

func (m *Machine) ClearAllErrors() {
	m.Dispatch(ClearAllErrors{})
}

// Submit starts the simulated reservation call. It does not guard against a
// submission already in flight; callers check IsLoading first.
func (m *Machine) Submit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.state = Reduce(m.state, SetLoading{Loading: true})
	m.submissions++
	id := m.submissions
	m.pending[id] = m.clock.AfterFunc(m.submitDelay, func() { m.complete(id) })
	return true
}

func (m *Machine) complete(id uint64) {
	m.mu.Lock()
	if _, ok := m.pending[id]; !ok || m.closed {
		m.mu.Unlock()
		return
	}
	delete(m.pending, id)

	state := m.state
	first := state.Confirmation == nil
	if first {
		if p, ok := pricing.ForState(state, m.catalog, m.resort); ok {
			state = Reduce(state, SetPricing{Pricing: p})
		}
		state = Reduce(state, SetConfirmation{Confirmation: domain.Confirmation{
			ConfirmationNumber: m.codes.Generate(),
			CreatedAt:          m.clock.Now(),
		}})
	}
	if len(m.pending) == 0 {
		state = Reduce(state, SetLoading{Loading: false})
	}
	state = Reduce(state, GoToStep{Step: domain.StepConfirmation})
	m.state = state

	hook := m.onComplete
	snapshot := state.Clone()
	m.mu.Unlock()

	if first && hook != nil {
		hook(snapshot)
	}
}

// Reset drops the booking and any submission in flight.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopPending()
	m.state = Reduce(m.state, Reset{})
}

// Restore replaces the state with a saved snapshot. A submission that was in
// flight when the snapshot was taken is not resumed.
func (m *Machine) Restore(state domain.BookingState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopPending()
	restored := state.Clone()
	restored.IsLoading = false
	if !restored.CurrentStep.Valid() {
		restored.CurrentStep = domain.StepDates
	}
	m.state = restored
}

// Close cancels pending completions; none will run afterwards.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopPending()
}

func (m *Machine) stopPending() {
	for id, t := range m.pending {
		t.Stop()
		delete(m.pending, id)
	}
}

var _ StateMachine = (*Machine)(nil)
