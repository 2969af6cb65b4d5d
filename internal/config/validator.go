package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "swarm.consensus_threshold")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateSwarm()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateSimulate()...)

	return errors
}

// validateSwarm validates the SwarmConfig
func (c *Config) validateSwarm() []ValidationError {
	var errors []ValidationError

	if c.Swarm.ConsensusThreshold <= 0 || c.Swarm.ConsensusThreshold > 1 {
		errors = append(errors, ValidationError{
			Field:   "swarm.consensus_threshold",
			Value:   c.Swarm.ConsensusThreshold,
			Message: "must be greater than 0 and at most 1",
		})
	}

	if c.Swarm.DefaultCapacity < 1 {
		errors = append(errors, ValidationError{
			Field:   "swarm.default_capacity",
			Value:   c.Swarm.DefaultCapacity,
			Message: "must be at least 1",
		})
	}

	if c.Swarm.ReputationReward < 0 {
		errors = append(errors, ValidationError{
			Field:   "swarm.reputation_reward",
			Value:   c.Swarm.ReputationReward,
			Message: "must be non-negative",
		})
	}

	if c.Swarm.ReputationPenalty < 0 {
		errors = append(errors, ValidationError{
			Field:   "swarm.reputation_penalty",
			Value:   c.Swarm.ReputationPenalty,
			Message: "must be non-negative (it is subtracted on failure)",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateSimulate validates the SimulateConfig
func (c *Config) validateSimulate() []ValidationError {
	var errors []ValidationError

	if c.Simulate.Members < 1 {
		errors = append(errors, ValidationError{
			Field:   "simulate.members",
			Value:   c.Simulate.Members,
			Message: "must be at least 1",
		})
	}

	if c.Simulate.Tasks < 0 {
		errors = append(errors, ValidationError{
			Field:   "simulate.tasks",
			Value:   c.Simulate.Tasks,
			Message: "must be non-negative",
		})
	}

	if len(c.Simulate.Sectors) == 0 {
		errors = append(errors, ValidationError{
			Field:   "simulate.sectors",
			Value:   c.Simulate.Sectors,
			Message: "needs at least one sector",
		})
	}

	return errors
}
