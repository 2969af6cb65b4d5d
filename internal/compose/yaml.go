package compose

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hivegrid/hivegrid/internal/errors"
)

// StepSpec is one step of a declarative chain definition.
type StepSpec struct {
	Sector    string `yaml:"sector"`
	Operation string `yaml:"operation"`
	Input     string `yaml:"input"`
	Order     int    `yaml:"order"`
}

// ChainSpec is a declarative chain definition, typically loaded from a
// YAML file.
type ChainSpec struct {
	Name  string     `yaml:"name"`
	Steps []StepSpec `yaml:"steps"`
}

// Validate checks the spec for structural problems.
func (s *ChainSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.NewValidationError("chain name is required").WithField("name")
	}
	if len(s.Steps) == 0 {
		return errors.NewValidationError("chain needs at least one step").WithField("steps")
	}
	for i, step := range s.Steps {
		if strings.TrimSpace(step.Sector) == "" {
			return errors.NewValidationError("step sector is required").
				WithField(fmt.Sprintf("steps[%d].sector", i))
		}
		if strings.TrimSpace(step.Operation) == "" {
			return errors.NewValidationError("step operation is required").
				WithField(fmt.Sprintf("steps[%d].operation", i))
		}
	}
	return nil
}

// Chain materializes the spec into an OperationChain. Steps are ordered
// by their declared order; equal orders keep file order.
func (s *ChainSpec) Chain() *OperationChain {
	chain := NewChain(s.Name)
	for _, step := range s.Steps {
		chain.AddStep(NewStep(step.Sector, step.Operation, step.Input, step.Order))
	}
	return chain
}

// ParseChainYAML parses and validates a chain spec from YAML bytes.
func ParseChainYAML(data []byte) (*ChainSpec, error) {
	if len(data) == 0 {
		return nil, errors.New("empty chain definition")
	}
	var spec ChainSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse chain definition: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadChainFile reads, parses, and validates a chain spec from a file.
func LoadChainFile(path string) (*ChainSpec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory, expected a chain definition file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	spec, err := ParseChainYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}
