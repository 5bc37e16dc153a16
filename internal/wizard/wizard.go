// Package wizard drives the first-run setup: it asks for whatever part of
// the configuration is missing (API URL, session token), validates each
// answer against the API and persists it before moving on.
//
// Each step gets MaxAttempts tries. Validation and transport failures are
// retried with the step's error message; an interrupt aborts at once. A
// step that never succeeds writes nothing.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/donaldgifford/groceries/internal/api/client"
	"github.com/donaldgifford/groceries/internal/metrics"
	"github.com/donaldgifford/groceries/internal/prompt"
)

// MaxAttempts is the number of tries each step gets.
const MaxAttempts = 3

// Banner is printed once, before the first step that needs input.
const Banner = "Part of the configuration is incomplete. Please answer the following questions:"

// Errors returned by Run.
var (
	ErrAborted     = errors.New("aborted")
	ErrInterrupted = errors.New("interrupted")
)

// Kind classifies a failed attempt.
type Kind int

// Failure kinds.
const (
	ValidationFailed Kind = iota + 1
	TransportError
	Interrupted
)

func (k Kind) String() string {
	switch k {
	case ValidationFailed:
		return "validation_failed"
	case TransportError:
		return "transport_error"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Retryable reports whether another attempt may follow a failure of kind k.
func (k Kind) Retryable() bool {
	return k == ValidationFailed || k == TransportError
}

// StepError is a classified attempt failure.
type StepError struct {
	Kind Kind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Invalid wraps err as a ValidationFailed StepError.
func Invalid(err error) error {
	return &StepError{Kind: ValidationFailed, Err: err}
}

// Classify returns the Kind of err as seen from a step running under ctx.
func Classify(ctx context.Context, err error) Kind {
	var se *StepError
	if errors.As(err, &se) {
		return se.Kind
	}
	switch {
	case ctx.Err() != nil,
		errors.Is(err, prompt.ErrInterrupted),
		errors.Is(err, context.Canceled):
		return Interrupted
	case errors.Is(err, client.ErrTransport),
		errors.Is(err, context.DeadlineExceeded):
		return TransportError
	default:
		return ValidationFailed
	}
}

// Answers holds the raw input gathered by a step's prompt.
type Answers map[string]string

// Step is one unit of the setup sequence.
type Step struct {
	// Key names the configuration value the step provides.
	Key string
	// ErrorMessage is shown after each failed attempt that is retried.
	ErrorMessage string
	// MaxAttempts overrides the package default when positive.
	MaxAttempts int

	// Done reports whether the value is already configured.
	Done func() bool
	// Prompt gathers raw input from the operator.
	Prompt func(ctx context.Context) (Answers, error)
	// Validate turns the answers into the value to store.
	Validate func(ctx context.Context, answers Answers) (string, error)
	// Persist stores the value durably. A Persist error is fatal.
	Persist func(value string) error
}

func (s *Step) attempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return MaxAttempts
}

// State is the wizard's position in the setup sequence.
type State int

// Wizard states.
const (
	NeedsAPI State = iota
	NeedsToken
	Ready
	Aborted
)

func (s State) String() string {
	switch s {
	case NeedsAPI:
		return "needs_api"
	case NeedsToken:
		return "needs_token"
	case Ready:
		return "ready"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Wizard runs steps in order, skipping the ones already done.
type Wizard struct {
	steps       []Step
	out         io.Writer
	logger      *slog.Logger
	bannerShown bool
	aborted     bool
}

// New creates a Wizard writing its messages to out.
func New(out io.Writer, logger *slog.Logger, steps ...Step) *Wizard {
	return &Wizard{steps: steps, out: out, logger: logger}
}

// State reports where the wizard stands.
func (w *Wizard) State() State {
	if w.aborted {
		return Aborted
	}
	for i := range w.steps {
		if w.steps[i].Done() {
			continue
		}
		if w.steps[i].Key == KeyToken {
			return NeedsToken
		}
		return NeedsAPI
	}
	return Ready
}

// Run completes every missing step. A fully configured setup returns
// without prompting or touching the network.
func (w *Wizard) Run(ctx context.Context) error {
	for i := range w.steps {
		step := &w.steps[i]
		if step.Done() {
			continue
		}

		if !w.bannerShown {
			w.bannerShown = true
			w.println(Banner)
		}

		if err := w.runStep(ctx, step); err != nil {
			w.aborted = true
			return err
		}
	}
	return nil
}

func (w *Wizard) runStep(ctx context.Context, step *Step) error {
	limit := step.attempts()

	for attempt := 1; attempt <= limit; attempt++ {
		value, err := w.attempt(ctx, step)
		if err == nil {
			if err := step.Persist(value); err != nil {
				metrics.WizardAttemptsTotal.WithLabelValues(step.Key, "persist_failed").Inc()
				return fmt.Errorf("saving %s: %w", step.Key, err)
			}
			metrics.WizardAttemptsTotal.WithLabelValues(step.Key, "success").Inc()
			w.logger.Debug("wizard step complete", "step", step.Key, "attempt", attempt)
			return nil
		}

		kind := Classify(ctx, err)
		metrics.WizardAttemptsTotal.WithLabelValues(step.Key, kind.String()).Inc()
		w.logger.Debug("wizard attempt failed",
			"step", step.Key,
			"attempt", attempt,
			"kind", kind.String(),
			"error", err,
		)

		if !kind.Retryable() {
			return fmt.Errorf("%w during %s step: %w", ErrInterrupted, step.Key, err)
		}
		if attempt < limit {
			w.println(step.ErrorMessage)
		}
	}

	return fmt.Errorf("%w: %s step failed %d times", ErrAborted, step.Key, limit)
}

func (w *Wizard) attempt(ctx context.Context, step *Step) (string, error) {
	answers, err := step.Prompt(ctx)
	if err != nil {
		return "", err
	}
	return step.Validate(ctx, answers)
}

func (w *Wizard) println(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}
