package config

import (
	"strings"
	"testing"
)

func TestValidate_CatchesBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			"threshold too high",
			func(c *Config) { c.Swarm.ConsensusThreshold = 1.2 },
			"swarm.consensus_threshold",
		},
		{
			"threshold zero",
			func(c *Config) { c.Swarm.ConsensusThreshold = 0 },
			"swarm.consensus_threshold",
		},
		{
			"capacity zero",
			func(c *Config) { c.Swarm.DefaultCapacity = 0 },
			"swarm.default_capacity",
		},
		{
			"negative reward",
			func(c *Config) { c.Swarm.ReputationReward = -1 },
			"swarm.reputation_reward",
		},
		{
			"negative penalty",
			func(c *Config) { c.Swarm.ReputationPenalty = -1 },
			"swarm.reputation_penalty",
		},
		{
			"bad log level",
			func(c *Config) { c.Logging.Level = "verbose" },
			"logging.level",
		},
		{
			"no simulate members",
			func(c *Config) { c.Simulate.Members = 0 },
			"simulate.members",
		},
		{
			"no simulate sectors",
			func(c *Config) { c.Simulate.Sectors = nil },
			"simulate.sectors",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("expected a validation error")
			}
			found := false
			for _, err := range errs {
				if err.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %s in %v", tt.field, errs)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "swarm.default_capacity", Value: 0, Message: "must be at least 1"},
		{Field: "logging.level", Value: "loud", Message: "must be one of: debug, info, warn, error"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("message should report the error count: %q", msg)
	}
	if !strings.Contains(msg, "swarm.default_capacity") {
		t.Errorf("message should name each field: %q", msg)
	}

	single := ValidationErrors{errs[0]}
	if strings.Contains(single.Error(), "validation errors") {
		t.Errorf("single error should not use the multi-error format: %q", single.Error())
	}
}
