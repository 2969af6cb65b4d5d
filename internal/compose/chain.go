package compose

import (
	"sort"

	"github.com/google/uuid"
)

// CompositionStep is a single operation in a chain.
type CompositionStep struct {
	// ID uniquely identifies the step within its chain.
	ID string `json:"id"`

	// Sector is the capability domain the step's operation belongs to.
	Sector string `json:"sector"`

	// Operation is the opaque operation name.
	Operation string `json:"operation"`

	// Input is the opaque operation input.
	Input string `json:"input"`

	// Output is the operation output once the step has run.
	Output string `json:"output"`

	// Order positions the step in the chain; lower runs first. Steps
	// sharing an order keep their insertion order.
	Order int `json:"order"`
}

// NewStep creates a CompositionStep with a generated id.
func NewStep(sector, operation, input string, order int) CompositionStep {
	return CompositionStep{
		ID:        uuid.NewString(),
		Sector:    sector,
		Operation: operation,
		Input:     input,
		Order:     order,
	}
}

// OperationChain is an ordered sequence of steps executed as one logical
// unit. Steps may be added after creation; each addition re-sorts the
// chain stably by order.
type OperationChain struct {
	// ID uniquely identifies the chain.
	ID string `json:"id"`

	// Name is the human-readable chain name.
	Name string `json:"name"`

	// Steps holds the chain's steps, sorted ascending by Order.
	Steps []CompositionStep `json:"steps"`

	// CurrentStep indexes the step the chain is on.
	CurrentStep int `json:"current_step"`

	// Completed reports whether the chain has advanced past its last step.
	Completed bool `json:"completed"`
}

// NewChain creates an empty OperationChain with a generated id.
func NewChain(name string) *OperationChain {
	return &OperationChain{
		ID:    uuid.NewString(),
		Name:  name,
		Steps: []CompositionStep{},
	}
}

// AddStep appends a step and re-sorts the chain stably by order, so
// equal-order steps keep insertion order.
func (c *OperationChain) AddStep(step CompositionStep) *OperationChain {
	c.Steps = append(c.Steps, step)
	sort.SliceStable(c.Steps, func(i, j int) bool {
		return c.Steps[i].Order < c.Steps[j].Order
	})
	return c
}

// Advance moves the chain to its next step and returns true. On the last
// step it marks the chain completed and returns false; further calls are
// no-ops returning false.
func (c *OperationChain) Advance() bool {
	if c.Completed {
		return false
	}
	if c.CurrentStep < len(c.Steps)-1 {
		c.CurrentStep++
		return true
	}
	c.Completed = true
	return false
}

// Current returns the step the chain is on, or nil for an empty chain.
func (c *OperationChain) Current() *CompositionStep {
	if len(c.Steps) == 0 || c.CurrentStep >= len(c.Steps) {
		return nil
	}
	return &c.Steps[c.CurrentStep]
}

// StepCount returns the number of steps in the chain.
func (c *OperationChain) StepCount() int {
	return len(c.Steps)
}

// Sectors returns the sorted, deduplicated sectors across all steps.
func (c *OperationChain) Sectors() []string {
	seen := make(map[string]struct{}, len(c.Steps))
	var sectors []string
	for _, step := range c.Steps {
		if _, ok := seen[step.Sector]; ok {
			continue
		}
		seen[step.Sector] = struct{}{}
		sectors = append(sectors, step.Sector)
	}
	sort.Strings(sectors)
	return sectors
}

// ComposedOperation wraps a chain's execution with its trace and proof.
type ComposedOperation struct {
	// ID uniquely identifies the composed operation.
	ID string `json:"id"`

	// Chain is the executed operation chain.
	Chain *OperationChain `json:"chain"`

	// Result is the final output of the chain.
	Result string `json:"result"`

	// IntegrityHash is the merkle root over the ordered step outputs.
	IntegrityHash string `json:"composition_integrity_hash"`

	// Trace maps step ids to their outputs.
	Trace map[string]string `json:"trace"`

	// TotalTimeMs is the wall-clock execution time of the whole chain.
	TotalTimeMs int64 `json:"total_time_ms"`
}

// NewComposedOperation wraps a chain for execution tracking.
func NewComposedOperation(chain *OperationChain) *ComposedOperation {
	return &ComposedOperation{
		ID:    uuid.NewString(),
		Chain: chain,
		Trace: make(map[string]string),
	}
}

// RecordStepResult stores a step's output in the trace, overwriting any
// earlier output for the same step id.
func (o *ComposedOperation) RecordStepResult(stepID, output string) {
	o.Trace[stepID] = output
}

// SetResult sets the final chain output.
func (o *ComposedOperation) SetResult(result string) {
	o.Result = result
}

// SetMerkleRoot sets the composition integrity hash.
func (o *ComposedOperation) SetMerkleRoot(root string) {
	o.IntegrityHash = root
}

// SetTotalTime sets the total execution time in milliseconds.
func (o *ComposedOperation) SetTotalTime(ms int64) {
	o.TotalTimeMs = ms
}

// IsSuccess reports whether the chain completed with a non-empty result.
// A completed chain with an empty result still reports failure:
// completion and success are distinct.
func (o *ComposedOperation) IsSuccess() bool {
	return o.Chain != nil && o.Chain.Completed && o.Result != ""
}
