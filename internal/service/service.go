// Package service applies squares operations to the persisted board.
//
// Every mutating call loads the stored blob, applies one state transition,
// validates the result and writes it back conditionally on the ETag it read,
// so a concurrent writer makes the save fail with store.ErrConflict instead of
// being overwritten. Calls on one Service are also serialized by a mutex.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/squares/internal/props"
	"github.com/lox/squares/internal/randutil"
	"github.com/lox/squares/internal/squares"
	"github.com/lox/squares/internal/store"
)

// Store keys of the two documents.
const (
	KeySquares = "squares"
	KeyProps   = "props"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock sets the clock used for winner timestamps and time-seeded randomness.
func WithClock(clock quartz.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithSeed makes every randomized operation draw from one source seeded with
// seed, so a sequence of commands is reproducible.
func WithSeed(seed int64) Option {
	return func(s *Service) { s.rng = randutil.New(seed) }
}

// WithRand sets the random source directly.
func WithRand(src randutil.Source) Option {
	return func(s *Service) { s.rng = src }
}

// WithPayouts sets the amount recorded with each checkpoint's winner.
func WithPayouts(payouts map[squares.Checkpoint]float64) Option {
	return func(s *Service) { s.payouts = payouts }
}

// WithIDGenerator replaces the player id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// Service runs squares operations against a store.KV.
type Service struct {
	kv      store.KV
	logger  *log.Logger
	clock   quartz.Clock
	rng     randutil.Source
	payouts map[squares.Checkpoint]float64
	newID   func() string

	mu sync.Mutex
}

// New returns a Service backed by kv.
func New(kv store.KV, opts ...Option) *Service {
	s := &Service{
		kv:     kv,
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// source returns the configured source, or a PCG seeded from the clock.
func (s *Service) source() randutil.Source {
	if s.rng != nil {
		return s.rng
	}
	return randutil.New(s.clock.Now().UnixNano())
}

// loadSquares returns the stored board and its ETag. A missing board is a
// fresh one, with an ETag that only matches while the key stays absent.
func (s *Service) loadSquares(ctx context.Context) (*squares.State, string, error) {
	data, etag, err := s.kv.Get(ctx, KeySquares)
	if errors.Is(err, store.ErrNotFound) {
		return squares.NewState(), store.MustNotExist, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load squares: %w", err)
	}
	var st squares.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, "", fmt.Errorf("load squares: %w", err)
	}
	return &st, etag, nil
}

func (s *Service) loadProps(ctx context.Context) (*props.State, string, error) {
	data, etag, err := s.kv.Get(ctx, KeyProps)
	if errors.Is(err, store.ErrNotFound) {
		return props.Default(), store.MustNotExist, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load props: %w", err)
	}
	p, err := props.Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("load props: %w", err)
	}
	return p, etag, nil
}

// update runs fn on the current board and saves the result. Nothing is
// written when fn fails or the result breaks an invariant.
func (s *Service) update(ctx context.Context, op string, fn func(st *squares.State, rng randutil.Source) error) (*squares.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, etag, err := s.loadSquares(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(st, s.source()); err != nil {
		return nil, err
	}
	if err := st.Validate(); err != nil {
		s.logger.Error("Refusing to save invalid board", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode squares: %w", err)
	}
	if _, err := s.kv.Put(ctx, KeySquares, data, etag); err != nil {
		if errors.Is(err, store.ErrConflict) {
			s.logger.Warn("Board changed during update", "op", op)
		}
		return nil, fmt.Errorf("save squares: %w", err)
	}
	s.logger.Debug("Board saved", "op", op, "claimed", st.TotalClaimed(), "locked", st.Locked)
	return st, nil
}

// State returns the current board.
func (s *Service) State(ctx context.Context) (*squares.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _, err := s.loadSquares(ctx)
	return st, err
}

// Props returns the stored props document, or the default one.
func (s *Service) Props(ctx context.Context) (*props.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, _, err := s.loadProps(ctx)
	return p, err
}
