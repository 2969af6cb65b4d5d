package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete HiveGrid configuration
type Config struct {
	Swarm    SwarmConfig    `mapstructure:"swarm"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Simulate SimulateConfig `mapstructure:"simulate"`
}

// SwarmConfig controls coordinator behavior
type SwarmConfig struct {
	// ConsensusThreshold is the idle-member fraction required for swarm
	// consensus. Must be in (0, 1]. (default: 0.66)
	ConsensusThreshold float64 `mapstructure:"consensus_threshold"`
	// DefaultCapacity is the task capacity for newly registered members (default: 10)
	DefaultCapacity int `mapstructure:"default_capacity"`
	// ReputationReward is added to a member's reputation on a successful
	// task completion (default: 5)
	ReputationReward int `mapstructure:"reputation_reward"`
	// ReputationPenalty is subtracted from a member's reputation on a
	// failed task completion (default: 10)
	ReputationPenalty int `mapstructure:"reputation_penalty"`
}

// QueueConfig controls task queue persistence
type QueueConfig struct {
	// PersistDir is the directory the queue state file is saved to.
	// If empty, defaults to the data directory
	PersistDir string `mapstructure:"persist_dir"`
}

// LoggingConfig controls structured logging output
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory log files are written to.
	// If empty, defaults to the data directory
	Dir string `mapstructure:"dir"`
}

// SimulateConfig controls the simulate command's synthetic workload
type SimulateConfig struct {
	// Members is the number of swarm members to register (default: 4)
	Members int `mapstructure:"members"`
	// Tasks is the number of tasks to enqueue (default: 12)
	Tasks int `mapstructure:"tasks"`
	// Sectors are the capability sectors spread across members and tasks
	Sectors []string `mapstructure:"sectors"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Swarm: SwarmConfig{
			ConsensusThreshold: 0.66,
			DefaultCapacity:    10,
			ReputationReward:   5,
			ReputationPenalty:  10,
		},
		Queue: QueueConfig{
			PersistDir: "",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
		Simulate: SimulateConfig{
			Members: 4,
			Tasks:   12,
			Sectors: []string{"compute", "storage", "analysis"},
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Swarm defaults
	viper.SetDefault("swarm.consensus_threshold", defaults.Swarm.ConsensusThreshold)
	viper.SetDefault("swarm.default_capacity", defaults.Swarm.DefaultCapacity)
	viper.SetDefault("swarm.reputation_reward", defaults.Swarm.ReputationReward)
	viper.SetDefault("swarm.reputation_penalty", defaults.Swarm.ReputationPenalty)

	// Queue defaults
	viper.SetDefault("queue.persist_dir", defaults.Queue.PersistDir)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Simulate defaults
	viper.SetDefault("simulate.members", defaults.Simulate.Members)
	viper.SetDefault("simulate.tasks", defaults.Simulate.Tasks)
	viper.SetDefault("simulate.sectors", defaults.Simulate.Sectors)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// DataDir returns the path to the user's data directory
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "hivegrid")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hivegrid"
	}
	return filepath.Join(home, ".local", "share", "hivegrid")
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hivegrid")
	}
	// Fall back to ~/.config/hivegrid
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hivegrid"
	}
	return filepath.Join(home, ".config", "hivegrid")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ResolvePersistDir returns the directory the queue state is saved to.
func (q *QueueConfig) ResolvePersistDir() string {
	if q.PersistDir == "" {
		return DataDir()
	}
	return q.PersistDir
}

// ResolveLogDir returns the directory log files are written to.
func (l *LoggingConfig) ResolveLogDir() string {
	if l.Dir == "" {
		return DataDir()
	}
	return l.Dir
}
