package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefault_IsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("default config should validate cleanly, got %v", errs)
	}
}

func TestLoad_UsesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Swarm.ConsensusThreshold != 0.66 {
		t.Errorf("consensus threshold = %v, want 0.66", cfg.Swarm.ConsensusThreshold)
	}
	if cfg.Swarm.DefaultCapacity != 10 {
		t.Errorf("default capacity = %d, want 10", cfg.Swarm.DefaultCapacity)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
	if len(cfg.Simulate.Sectors) == 0 {
		t.Error("simulate sectors should default to a non-empty list")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("swarm.consensus_threshold", 0.8)
	viper.Set("swarm.reputation_penalty", 25)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Swarm.ConsensusThreshold != 0.8 {
		t.Errorf("consensus threshold = %v, want 0.8", cfg.Swarm.ConsensusThreshold)
	}
	if cfg.Swarm.ReputationPenalty != 25 {
		t.Errorf("reputation penalty = %d, want 25", cfg.Swarm.ReputationPenalty)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("swarm.consensus_threshold", 1.5)

	if _, err := Load(); err == nil {
		t.Error("load should fail for an out-of-range consensus threshold")
	}
}

func TestQueueConfig_ResolvePersistDir(t *testing.T) {
	q := QueueConfig{PersistDir: "/tmp/hivegrid"}
	if got := q.ResolvePersistDir(); got != "/tmp/hivegrid" {
		t.Errorf("explicit dir = %q", got)
	}

	empty := QueueConfig{}
	if got := empty.ResolvePersistDir(); got == "" {
		t.Error("empty persist dir should resolve to a default")
	}
}
