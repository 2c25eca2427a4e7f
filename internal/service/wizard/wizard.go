package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Domenick1991/resortbooking/internal/calendar"
	"github.com/Domenick1991/resortbooking/internal/clock"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/Domenick1991/resortbooking/internal/logging"
	"github.com/Domenick1991/resortbooking/internal/metrics"
	"github.com/Domenick1991/resortbooking/internal/service/booking"
)

var (
	ErrStepNotReachable     = errors.New("step is not reachable yet")
	ErrSubmissionInFlight   = errors.New("booking submission already in progress")
	ErrNotReviewStep        = errors.New("booking can only be submitted from the review step")
	ErrBookingIncomplete    = errors.New("booking is incomplete")
	ErrBookingClosed        = errors.New("booking is already confirmed")
	ErrUnknownAddOn         = errors.New("unknown add-on")
	ErrUnknownAccommodation = errors.New("unknown accommodation")
	ErrUnknownOccasion      = errors.New("unknown special occasion")
	ErrUnknownIntent        = errors.New("unknown intent")
	ErrInvalidDay           = errors.New("invalid day, expected YYYY-MM-DD")
	ErrInvalidAddOnQuantity = errors.New("add-on quantity cannot be negative")
	ErrMissingGuestDetails  = errors.New("guest details are required")
)

// Publisher is satisfied by kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Config struct {
	Resort             domain.ResortConfig
	Location           *time.Location
	SubmitDelay        time.Duration
	ReturnURL          string
	ConfirmationsTopic string
	NotificationsTopic string
}

func DefaultConfig() Config {
	return Config{
		Resort:      domain.DefaultResortConfig(),
		Location:    time.Local,
		SubmitDelay: booking.DefaultSubmitDelay,
		ReturnURL:   "/",
	}
}

// Wizard walks one visitor through the booking steps. It turns intents into
// state machine actions, keeps the calendar in step with the booked dates and
// renders a View after every change.
type Wizard struct {
	mu       sync.Mutex
	id       string
	cfg      Config
	machine  *booking.Machine
	selector *calendar.Selector
	villas   []domain.Villa
	addOns   []domain.AddOn

	clock       clock.Clock
	codes       booking.CodeGenerator
	logger      *logging.Logger
	metrics     *metrics.WizardMetrics
	publisher   Publisher
	onConfirmed func(domain.BookingState)
	submittedAt time.Time
	closed      bool
}

type Option func(*Wizard)

func WithSessionID(id string) Option {
	return func(w *Wizard) {
		w.id = id
	}
}

func WithClock(c clock.Clock) Option {
	return func(w *Wizard) {
		w.clock = c
	}
}

func WithCodeGenerator(g booking.CodeGenerator) Option {
	return func(w *Wizard) {
		w.codes = g
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(w *Wizard) {
		w.logger = l
	}
}

func WithMetrics(m *metrics.WizardMetrics) Option {
	return func(w *Wizard) {
		w.metrics = m
	}
}

func WithPublisher(p Publisher) Option {
	return func(w *Wizard) {
		w.publisher = p
	}
}

// WithConfirmedHook runs after a booking is confirmed, once per session.
func WithConfirmedHook(h func(domain.BookingState)) Option {
	return func(w *Wizard) {
		w.onConfirmed = h
	}
}

func WithCatalog(villas []domain.Villa, addOns []domain.AddOn) Option {
	return func(w *Wizard) {
		w.villas = villas
		w.addOns = addOns
	}
}

func New(cfg Config, opts ...Option) *Wizard {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.SubmitDelay <= 0 {
		cfg.SubmitDelay = booking.DefaultSubmitDelay
	}
	if cfg.ReturnURL == "" {
		cfg.ReturnURL = "/"
	}

	w := &Wizard{
		cfg:    cfg,
		villas: []domain.Villa{domain.VillaData},
		addOns: domain.AddOnsData,
		clock:  clock.New(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.id != "" {
		w.logger = w.logger.With("session_id", w.id)
	}

	machineOpts := []booking.Option{
		booking.WithClock(w.clock),
		booking.WithSubmitDelay(cfg.SubmitDelay),
		booking.WithCatalog(w.addOns),
		booking.WithCompletionHook(w.handleConfirmed),
	}
	if w.codes != nil {
		machineOpts = append(machineOpts, booking.WithCodeGenerator(w.codes))
	}
	w.machine = booking.NewMachine(cfg.Resort, machineOpts...)
	w.selector = calendar.NewSelector(w.clock, cfg.Location, cfg.Resort.MinNights)
	w.assignDefaultAccommodation()
	return w
}

func (w *Wizard) ID() string {
	return w.id
}

func (w *Wizard) State() domain.BookingState {
	return w.machine.State()
}

// Restore loads a saved booking into this wizard.
func (w *Wizard) Restore(state domain.BookingState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.machine.Restore(state)
	w.selector.Sync(state.Dates)
}

// Close releases the pending submission timer, if any.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.machine.Close()
}

// The resort has a single villa, so it is chosen for the guest up front.
func (w *Wizard) assignDefaultAccommodation() {
	if len(w.villas) == 1 {
		w.machine.SelectAccommodation(w.villas[0])
	}
}
