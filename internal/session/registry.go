package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/resortbooking/internal/clock"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/Domenick1991/resortbooking/internal/logging"
	"github.com/Domenick1991/resortbooking/internal/metrics"
	"github.com/Domenick1991/resortbooking/internal/service/wizard"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultIdleTTL = 30 * time.Minute

	reasonEnded   = "ended"
	reasonExpired = "expired"

	persistTimeout = 5 * time.Second
)

// SnapshotStore is satisfied by cache.RedisCache.
type SnapshotStore interface {
	SaveSession(ctx context.Context, id string, state domain.BookingState) error
	LoadSession(ctx context.Context, id string) (*domain.BookingState, error)
	DeleteSession(ctx context.Context, id string) error
}

type SessionUseCase interface {
	Start(ctx context.Context) (*wizard.Wizard, error)
	Get(ctx context.Context, id string) (*wizard.Wizard, error)
	Apply(ctx context.Context, id string, intent wizard.Intent) (wizard.View, error)
	End(ctx context.Context, id string) error
}

type entry struct {
	wizard   *wizard.Wizard
	lastSeen time.Time

	// mu orders snapshot writes against ending the session.
	mu    sync.Mutex
	ended bool
}

func (e *entry) end() {
	e.mu.Lock()
	e.ended = true
	e.mu.Unlock()
}

// Registry owns the live wizards, one per visitor.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	cfg       wizard.Config
	idleTTL   time.Duration
	clock     clock.Clock
	store     SnapshotStore
	publisher wizard.Publisher
	logger    *logging.Logger
	metrics   *metrics.WizardMetrics
	newID     func() string
}

type Option func(*Registry)

func WithStore(s SnapshotStore) Option {
	return func(r *Registry) {
		r.store = s
	}
}

func WithClock(c clock.Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

func WithIdleTTL(d time.Duration) Option {
	return func(r *Registry) {
		r.idleTTL = d
	}
}

func WithPublisher(p wizard.Publisher) Option {
	return func(r *Registry) {
		r.publisher = p
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

func WithMetrics(m *metrics.WizardMetrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

func WithIDGenerator(f func() string) Option {
	return func(r *Registry) {
		r.newID = f
	}
}

func NewRegistry(cfg wizard.Config, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		cfg:      cfg,
		idleTTL:  DefaultIdleTTL,
		clock:    clock.New(),
		logger:   logging.Default(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Start(ctx context.Context) (*wizard.Wizard, error) {
	id := r.newID()
	w := r.newWizard(id)

	r.mu.Lock()
	r.sessions[id] = &entry{wizard: w, lastSeen: r.clock.Now()}
	r.mu.Unlock()

	r.metrics.ObserveSessionStarted()
	r.logger.Info("session started", "session_id", id)

	if err := r.Persist(ctx, w); err != nil {
		r.logger.Error("failed to save session", "session_id", id, "error", err)
	}
	return w, nil
}

// Get returns the live wizard for id, rehydrating it from the snapshot store
// when this process does not hold it.
func (r *Registry) Get(ctx context.Context, id string) (*wizard.Wizard, error) {
	r.mu.Lock()
	if e, ok := r.sessions[id]; ok {
		e.lastSeen = r.clock.Now()
		r.mu.Unlock()
		return e.wizard, nil
	}
	r.mu.Unlock()

	if r.store == nil {
		return nil, ErrSessionNotFound
	}
	state, err := r.store.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}

	w := r.newWizard(id)
	w.Restore(*state)

	r.mu.Lock()
	if e, ok := r.sessions[id]; ok {
		// another request restored it first
		r.mu.Unlock()
		w.Close()
		return e.wizard, nil
	}
	r.sessions[id] = &entry{wizard: w, lastSeen: r.clock.Now()}
	r.mu.Unlock()

	r.metrics.ObserveSessionRestored()
	r.logger.Info("session restored", "session_id", id, "step", int(state.CurrentStep))
	return w, nil
}

// Apply runs one intent against a session and returns the resulting view.
// The snapshot is saved even when the intent is rejected, since a rejection
// can still record a field error.
func (r *Registry) Apply(ctx context.Context, id string, intent wizard.Intent) (wizard.View, error) {
	w, err := r.Get(ctx, id)
	if err != nil {
		return wizard.View{}, err
	}

	applyErr := w.Apply(ctx, intent)
	if err := r.Persist(ctx, w); err != nil {
		r.logger.Error("failed to save session", "session_id", id, "error", err)
	}
	return w.View(), applyErr
}

// Persist saves the wizard's state. Wizards that are no longer live in this
// registry are skipped so an ended session is never written back.
func (r *Registry) Persist(ctx context.Context, w *wizard.Wizard) error {
	return r.save(ctx, w, w.State())
}

func (r *Registry) save(ctx context.Context, w *wizard.Wizard, state domain.BookingState) error {
	if r.store == nil {
		return nil
	}
	r.mu.Lock()
	e, ok := r.sessions[w.ID()]
	r.mu.Unlock()
	if !ok || e.wizard != w {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ended {
		return nil
	}
	return r.store.SaveSession(ctx, w.ID(), state)
}

func (r *Registry) End(ctx context.Context, id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		e.end()
		e.wizard.Close()
		r.metrics.ObserveSessionEnded(reasonEnded)
	}

	if r.store != nil {
		if !ok {
			state, err := r.store.LoadSession(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load session %s: %w", id, err)
			}
			ok = state != nil
		}
		if err := r.store.DeleteSession(ctx, id); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", id, err)
		}
	}
	if !ok {
		return ErrSessionNotFound
	}
	r.logger.Info("session ended", "session_id", id)
	return nil
}

// Sweep closes sessions idle for longer than the idle TTL and returns how many
// were dropped. Their snapshots expire in the store on the same TTL.
func (r *Registry) Sweep(now time.Time) int {
	var expired []*entry

	r.mu.Lock()
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.idleTTL {
			expired = append(expired, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.end()
		e.wizard.Close()
		r.metrics.ObserveSessionEnded(reasonExpired)
	}
	if len(expired) > 0 {
		r.logger.Info("expired idle sessions", "count", len(expired))
	}
	return len(expired)
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(r.clock.Now())
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close ends every live session without deleting snapshots, so another
// process can pick them up.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.wizard.Close()
	}
}

func (r *Registry) newWizard(id string) *wizard.Wizard {
	var w *wizard.Wizard
	opts := []wizard.Option{
		wizard.WithSessionID(id),
		wizard.WithClock(r.clock),
		wizard.WithLogger(r.logger),
		wizard.WithMetrics(r.metrics),
		wizard.WithConfirmedHook(func(state domain.BookingState) {
			r.saveConfirmed(w, state)
		}),
	}
	if r.publisher != nil {
		opts = append(opts, wizard.WithPublisher(r.publisher))
	}
	w = wizard.New(r.cfg, opts...)
	return w
}

func (r *Registry) saveConfirmed(w *wizard.Wizard, state domain.BookingState) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := r.save(ctx, w, state); err != nil {
		r.logger.Error("failed to save confirmed session", "session_id", w.ID(), "error", err)
	}
}

var _ SessionUseCase = (*Registry)(nil)
