package compose

import (
	"context"
	"fmt"
	"testing"

	"github.com/hivegrid/hivegrid/internal/errors"
	"github.com/hivegrid/hivegrid/internal/event"
	"github.com/hivegrid/hivegrid/internal/integrity"
)

func echoStep(_ context.Context, step CompositionStep) (string, error) {
	return step.Operation + "(" + step.Input + ")", nil
}

func TestRunner_Run_ThreadsOutputs(t *testing.T) {
	chain := NewChain("pipeline").
		AddStep(NewStep("s", "fetch", "seed", 1)).
		AddStep(NewStep("s", "parse", "ignored", 2)).
		AddStep(NewStep("s", "store", "ignored", 3))

	op, err := NewRunner().Run(context.Background(), chain, echoStep)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := "store(parse(fetch(seed)))"
	if op.Result != want {
		t.Errorf("result = %q, want %q", op.Result, want)
	}
	if !op.IsSuccess() {
		t.Error("run should report success")
	}
	if len(op.Trace) != 3 {
		t.Errorf("trace size = %d, want 3", len(op.Trace))
	}
	if op.Trace[chain.Steps[0].ID] != "fetch(seed)" {
		t.Errorf("first step trace = %q", op.Trace[chain.Steps[0].ID])
	}
}

func TestRunner_Run_MerkleRootMatchesOutputs(t *testing.T) {
	chain := NewChain("hashing").
		AddStep(NewStep("s", "a", "x", 1)).
		AddStep(NewStep("s", "b", "", 2))

	op, err := NewRunner().Run(context.Background(), chain, echoStep)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := integrity.MerkleRoot([]string{"a(x)", "b(a(x))"})
	if op.IntegrityHash != want {
		t.Errorf("integrity hash = %q, want %q", op.IntegrityHash, want)
	}
}

func TestRunner_Run_EmptyChain(t *testing.T) {
	_, err := NewRunner().Run(context.Background(), NewChain("empty"), echoStep)
	if !errors.Is(err, errors.ErrChainEmpty) {
		t.Errorf("error = %v, want ErrChainEmpty", err)
	}
}

func TestRunner_Run_CompletedChain(t *testing.T) {
	chain := NewChain("done").AddStep(NewStep("s", "a", "", 1))
	chain.Advance()

	_, err := NewRunner().Run(context.Background(), chain, echoStep)
	if !errors.Is(err, errors.ErrChainCompleted) {
		t.Errorf("error = %v, want ErrChainCompleted", err)
	}
}

func TestRunner_Run_StepFailureStopsChain(t *testing.T) {
	chain := NewChain("flaky").
		AddStep(NewStep("s", "ok", "in", 1)).
		AddStep(NewStep("s", "boom", "", 2)).
		AddStep(NewStep("s", "never", "", 3))

	calls := 0
	op, err := NewRunner().Run(context.Background(), chain, func(_ context.Context, step CompositionStep) (string, error) {
		calls++
		if step.Operation == "boom" {
			return "", fmt.Errorf("backend unavailable")
		}
		return "out", nil
	})

	if !errors.Is(err, errors.ErrStepFailed) {
		t.Fatalf("error = %v, want ErrStepFailed", err)
	}
	if calls != 2 {
		t.Errorf("steps executed = %d, want 2 (third never runs)", calls)
	}
	if op.IsSuccess() {
		t.Error("failed run must not report success")
	}
	if len(op.Trace) != 1 {
		t.Errorf("partial trace size = %d, want 1", len(op.Trace))
	}

	var compErr *errors.CompositionError
	if !errors.As(err, &compErr) {
		t.Fatal("expected a CompositionError")
	}
	if compErr.ChainID != chain.ID {
		t.Errorf("error chain id = %q, want %q", compErr.ChainID, chain.ID)
	}
	if compErr.StepID != chain.Steps[1].ID {
		t.Errorf("error step id = %q, want the failing step", compErr.StepID)
	}
}

func TestRunner_Run_CancelledContext(t *testing.T) {
	chain := NewChain("cancelled").AddStep(NewStep("s", "a", "", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, chain, echoStep)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunner_Run_PublishesChainEvents(t *testing.T) {
	bus := event.NewBus()
	var advanced, completed int
	bus.Subscribe(event.TypeChainAdvanced, func(event.Event) { advanced++ })
	bus.Subscribe(event.TypeChainCompleted, func(event.Event) { completed++ })

	chain := NewChain("observed").
		AddStep(NewStep("s", "a", "", 1)).
		AddStep(NewStep("s", "b", "", 2)).
		AddStep(NewStep("s", "c", "", 3))

	if _, err := NewRunner(WithRunnerBus(bus)).Run(context.Background(), chain, echoStep); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if advanced != 2 {
		t.Errorf("advanced events = %d, want 2", advanced)
	}
	if completed != 1 {
		t.Errorf("completed events = %d, want 1", completed)
	}
}
