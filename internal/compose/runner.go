package compose

import (
	"context"
	"fmt"
	"time"

	"github.com/hivegrid/hivegrid/internal/errors"
	"github.com/hivegrid/hivegrid/internal/event"
	"github.com/hivegrid/hivegrid/internal/integrity"
	"github.com/hivegrid/hivegrid/internal/logging"
)

// StepFunc executes a single chain step and returns its output.
type StepFunc func(ctx context.Context, step CompositionStep) (string, error)

// Runner drives an OperationChain to completion, threading each step's
// output into the next step's input.
type Runner struct {
	bus    *event.Bus
	logger *logging.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerBus attaches an event bus for chain lifecycle events.
func WithRunnerBus(bus *event.Bus) RunnerOption {
	return func(r *Runner) {
		r.bus = bus
	}
}

// WithRunnerLogger attaches a logger.
func WithRunnerLogger(logger *logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every step of the chain in order via fn. Each step after
// the first receives the previous step's output as its input. The
// returned ComposedOperation carries the step trace, the final result,
// the merkle root over ordered step outputs, and the total time.
//
// A step error stops the run; the partial trace is returned alongside a
// CompositionError wrapping ErrStepFailed. The chain is never marked
// completed on a failed run, so IsSuccess stays false.
func (r *Runner) Run(ctx context.Context, chain *OperationChain, fn StepFunc) (*ComposedOperation, error) {
	op := NewComposedOperation(chain)
	if chain.StepCount() == 0 {
		return op, errors.NewCompositionError("cannot run chain", errors.ErrChainEmpty).WithChainID(chain.ID)
	}
	if chain.Completed {
		return op, errors.NewCompositionError("cannot run chain", errors.ErrChainCompleted).WithChainID(chain.ID)
	}

	log := r.logger.WithChain(chain.ID)
	log.Info("chain started", "name", chain.Name, "steps", chain.StepCount())

	start := time.Now()
	outputs := make([]string, 0, chain.StepCount())
	carry := ""
	first := true

	for {
		step := chain.Current()
		if step == nil {
			break
		}
		if ctx.Err() != nil {
			op.SetTotalTime(time.Since(start).Milliseconds())
			return op, errors.NewCompositionError("chain run cancelled", ctx.Err()).
				WithChainID(chain.ID).
				WithStepID(step.ID)
		}

		// Every step after the first consumes the previous step's output.
		if !first {
			step.Input = carry
		}
		first = false

		output, err := fn(ctx, *step)
		if err != nil {
			op.SetTotalTime(time.Since(start).Milliseconds())
			log.Error("chain step failed", "step", step.ID, "operation", step.Operation, "error", err)
			return op, errors.NewCompositionError(
				fmt.Sprintf("operation %q failed", step.Operation),
				errors.Join(errors.ErrStepFailed, err),
			).WithChainID(chain.ID).WithStepID(step.ID)
		}

		step.Output = output
		op.RecordStepResult(step.ID, output)
		outputs = append(outputs, output)
		carry = output

		log.Debug("chain step done", "step", step.ID, "sector", step.Sector)

		if !chain.Advance() {
			break
		}
		if r.bus != nil {
			r.bus.Publish(event.NewChainAdvancedEvent(chain.ID, step.ID, chain.CurrentStep))
		}
	}

	op.SetResult(carry)
	op.SetMerkleRoot(integrity.MerkleRoot(outputs))
	op.SetTotalTime(time.Since(start).Milliseconds())

	log.Info("chain completed", "success", op.IsSuccess(), "total_ms", op.TotalTimeMs)
	if r.bus != nil {
		r.bus.Publish(event.NewChainCompletedEvent(chain.ID, op.IsSuccess()))
	}
	return op, nil
}
