package swarm

import (
	"github.com/hivegrid/hivegrid/internal/event"
	"github.com/hivegrid/hivegrid/internal/logging"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithConsensusThreshold overrides the idle-fraction threshold used by
// CheckConsensus. Values outside (0, 1] are ignored.
func WithConsensusThreshold(threshold float64) Option {
	return func(c *Coordinator) {
		if threshold > 0 && threshold <= 1 {
			c.threshold = threshold
		}
	}
}

// WithBus attaches an event bus; the coordinator publishes member and
// task lifecycle events to it.
func WithBus(bus *event.Bus) Option {
	return func(c *Coordinator) {
		c.bus = bus
	}
}

// WithLogger attaches a structured logger for distribution decisions.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReputationDeltas overrides the reputation reward applied on a
// successful completion and the penalty applied on a failed one. The
// penalty is given as a positive number.
func WithReputationDeltas(reward, penalty int) Option {
	return func(c *Coordinator) {
		c.reputationReward = reward
		c.reputationPenalty = penalty
	}
}
