package inquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/platform/requestctx"
)

var (
	// ErrStateNotFound reports that a store holds no state for a session.
	ErrStateNotFound = errors.New("wizard state not found")
	// ErrWrongStep reports a submit attempted before reaching the consent step.
	ErrWrongStep = &ValidationError{Key: "inquiry.error.wrong_step", Message: "complete the previous steps first."}
)

// Store persists wizard states by session id.
//
// Put never changes the submitting flag and fails with
// ErrSubmissionInProgress while a submission is in flight. BeginSubmit is a
// compare-and-set of the flag from false to true; EndSubmit clears it and,
// when reset is set, replaces the state with NewState.
type Store interface {
	Get(ctx context.Context, id string) (State, error)
	Put(ctx context.Context, id string, state State) error
	Delete(ctx context.Context, id string) error
	BeginSubmit(ctx context.Context, id string) (State, error)
	EndSubmit(ctx context.Context, id string, reset bool) error
	Purge(ctx context.Context, idleBefore time.Time) (int, error)
}

// Input records posted form fields into the draft before a transition.
type Input func(step Step, draft *Draft)

// Service drives wizard sessions held in a Store.
type Service struct {
	store      Store
	submitter  Submitter
	logger     *zap.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionTTL sets how long an idle session is kept by RunJanitor.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// DefaultSessionTTL is the idle lifetime of a wizard session.
const DefaultSessionTTL = 24 * time.Hour

// NewService builds a wizard service.
func NewService(store Store, submitter Submitter, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("wizard store is required")
	}
	if submitter == nil {
		return nil, errors.New("inquiry submitter is required")
	}
	s := &Service{
		store:      store,
		submitter:  submitter,
		logger:     zap.NewNop(),
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the session's wizard state, or the initial state for a new
// session.
func (s *Service) State(ctx context.Context, id string) (State, error) {
	if strings.TrimSpace(id) == "" {
		return State{}, ErrSessionRequired
	}
	state, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrStateNotFound) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load wizard state: %w", err)
	}
	return state, nil
}

// Next records input, validates the current step and advances. A
// validation failure is returned together with the recorded state.
func (s *Service) Next(ctx context.Context, id string, input Input) (State, error) {
	state, err := s.record(ctx, id, input)
	if err != nil {
		return state, err
	}
	advanced := state.Clone()
	if err := advanced.Next(); err != nil {
		return state, err
	}
	if err := s.store.Put(ctx, id, advanced); err != nil {
		return state, fmt.Errorf("save wizard state: %w", err)
	}
	return advanced, nil
}

// Previous records input and moves back one step without validation.
func (s *Service) Previous(ctx context.Context, id string, input Input) (State, error) {
	state, err := s.record(ctx, id, input)
	if err != nil {
		return state, err
	}
	state.Previous()
	if err := s.store.Put(ctx, id, state); err != nil {
		return state, fmt.Errorf("save wizard state: %w", err)
	}
	return state, nil
}

// Submit records the consent step input, re-validates the whole draft and
// delivers it. notify receives exactly one notice when the delivery is
// attempted: success resets the wizard, failure keeps the draft for a retry.
// A delivered inquiry whose reset cannot be stored returns an error with the
// submitted state, so callers never report a reset that did not happen.
func (s *Service) Submit(ctx context.Context, id string, input Input, notify Notifier) (State, error) {
	current, err := s.State(ctx, id)
	if err != nil {
		return State{}, err
	}
	if current.Submitting {
		return current, ErrSubmissionInProgress
	}
	if current.Step != StepConsent {
		return current, ErrWrongStep
	}
	state, err := s.record(ctx, id, input)
	if err != nil {
		return state, err
	}
	if err := ValidateConsent(state.Draft); err != nil {
		return state, err
	}
	if err := ValidateAll(state.Draft); err != nil {
		return state, err
	}

	pending, err := s.store.BeginSubmit(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSubmissionInProgress) {
			return state, err
		}
		return state, fmt.Errorf("begin submission: %w", err)
	}

	// The delivery and its settlement outlive a client that went away.
	detached := context.WithoutCancel(ctx)
	logger := s.logger.With(zap.String("session_id", id), zap.String("support_type", string(pending.Draft.SupportType())))
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With(zap.String("request_id", requestID))
	}
	started := s.now()
	submitErr := s.submitter.Submit(detached, NewPayload(pending.Draft))
	elapsed := s.now().Sub(started)

	if submitErr == nil {
		logger.Info("inquiry submitted", zap.Duration("elapsed", elapsed))
		notifyOnce(notify, SubmittedNotice())
		if err := s.store.EndSubmit(detached, id, true); err != nil {
			logger.Error("reset wizard after submission", zap.Error(err))
			return pending, fmt.Errorf("reset wizard after submission: %w", err)
		}
		return NewState(), nil
	}

	if err := s.store.EndSubmit(detached, id, false); err != nil {
		logger.Error("release wizard after failed submission", zap.Error(err))
	}
	logger.Warn("inquiry submission failed", zap.Duration("elapsed", elapsed), zap.Error(submitErr))
	notifyOnce(notify, FailureNotice(submitErr))
	pending.Submitting = false
	return pending, &SubmissionError{Err: submitErr}
}

// Reset discards the session's wizard state.
func (s *Service) Reset(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrSessionRequired
	}
	current, err := s.State(ctx, id)
	if err != nil {
		return err
	}
	if current.Submitting {
		return ErrSubmissionInProgress
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete wizard state: %w", err)
	}
	return nil
}

// PurgeIdle removes sessions idle longer than the session TTL.
func (s *Service) PurgeIdle(ctx context.Context) (int, error) {
	removed, err := s.store.Purge(ctx, s.now().Add(-s.sessionTTL))
	if err != nil {
		return 0, fmt.Errorf("purge wizard sessions: %w", err)
	}
	return removed, nil
}

// RunJanitor purges idle sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.PurgeIdle(ctx)
			if err != nil {
				s.logger.Warn("wizard janitor", zap.Error(err))
				continue
			}
			if removed > 0 {
				s.logger.Debug("wizard janitor purged sessions", zap.Int("removed", removed))
			}
		}
	}
}

func (s *Service) record(ctx context.Context, id string, input Input) (State, error) {
	state, err := s.State(ctx, id)
	if err != nil {
		return State{}, err
	}
	if state.Submitting {
		return state, ErrSubmissionInProgress
	}
	if input == nil {
		return state, nil
	}
	input(state.Step, &state.Draft)
	if err := s.store.Put(ctx, id, state); err != nil {
		if errors.Is(err, ErrSubmissionInProgress) {
			return state, err
		}
		return state, fmt.Errorf("save wizard state: %w", err)
	}
	return state, nil
}

func notifyOnce(notify Notifier, notice Notice) {
	if notify == nil {
		return
	}
	notify.Notify(notice)
}
