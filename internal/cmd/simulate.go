package cmd

import (
	"fmt"
	"os"

	"github.com/hivegrid/hivegrid/internal/config"
	"github.com/hivegrid/hivegrid/internal/errors"
	"github.com/hivegrid/hivegrid/internal/event"
	"github.com/hivegrid/hivegrid/internal/logging"
	"github.com/hivegrid/hivegrid/internal/swarm"
	"github.com/hivegrid/hivegrid/internal/taskqueue"
	"github.com/hivegrid/hivegrid/internal/tui"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a synthetic swarm workload",
	Long: `Register a configurable set of members, enqueue a batch of tasks and
drive the coordinator through distribution and completion, printing the
swarm status as it evolves. Useful for exercising routing, reputation
and consensus behavior without real workers.`,
	RunE: runSimulate,
}

var (
	simulateWatch   bool
	simulatePersist bool
)

func init() {
	simulateCmd.Flags().BoolVarP(&simulateWatch, "watch", "w", false, "render a live dashboard instead of plain output")
	simulateCmd.Flags().BoolVar(&simulatePersist, "persist", false, "save the queue state when the run finishes")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		dir := cfg.Logging.ResolveLogDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logger, err = logging.NewLogger(dir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Close()
	}

	bus := event.NewBus()
	coordinator := swarm.NewCoordinator(
		swarm.WithConsensusThreshold(cfg.Swarm.ConsensusThreshold),
		swarm.WithReputationDeltas(cfg.Swarm.ReputationReward, cfg.Swarm.ReputationPenalty),
		swarm.WithBus(bus),
		swarm.WithLogger(logger),
	)

	seedSwarm(coordinator, cfg)

	if simulateWatch {
		return tui.RunDashboard(coordinator, bus, cfg)
	}

	results := driveSwarm(coordinator)
	printResults(cmd, coordinator, cfg, results)

	if simulatePersist {
		dir := cfg.Queue.ResolvePersistDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
		if err := coordinator.Queue().SaveState(dir); err != nil {
			return fmt.Errorf("failed to save queue state: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nQueue state saved to %s\n", dir)
	}

	return nil
}

// simulationResults summarizes one synthetic run.
type simulationResults struct {
	Assigned   int
	Succeeded  int
	Failed     int
	Unroutable int
}

// seedSwarm registers members round-robin over the configured sectors and
// enqueues the task batch with a spread of priorities.
func seedSwarm(c *swarm.Coordinator, cfg *config.Config) {
	sectors := cfg.Simulate.Sectors

	for i := 0; i < cfg.Simulate.Members; i++ {
		m := swarm.NewMember(fmt.Sprintf("member-%d", i+1), fmt.Sprintf("worker %d", i+1)).
			SetCapacity(cfg.Swarm.DefaultCapacity)
		// Each member serves its home sector plus the next one over, so
		// sectors overlap and candidate selection has real choices.
		m.RegisterSector(sectors[i%len(sectors)])
		m.RegisterSector(sectors[(i+1)%len(sectors)])
		c.RegisterMember(m)
	}

	for i := 0; i < cfg.Simulate.Tasks; i++ {
		task := taskqueue.NewTaskRequest(fmt.Sprintf("op-%d", i+1), fmt.Sprintf("payload-%d", i+1)).
			WithPriority((i * 17) % 100).
			AddSector(sectors[i%len(sectors)])
		c.SubmitTask(task)
	}
}

// driveSwarm distributes every queued task and records a completion for
// each assignment. Every fifth completion is reported as failed to
// exercise the reputation penalty path.
func driveSwarm(c *swarm.Coordinator) simulationResults {
	var results simulationResults

	for {
		taskID, memberID, err := c.DistributeNextTask()
		if err != nil {
			if errors.Is(err, errors.ErrQueueEmpty) {
				break
			}
			// Task is consumed either way; count it and keep draining.
			results.Unroutable++
			continue
		}
		results.Assigned++

		status := taskqueue.StatusCompleted
		result := fmt.Sprintf("result of %s", taskID)
		if results.Assigned%5 == 0 {
			status = taskqueue.StatusFailed
			result = ""
		}

		task := &taskqueue.TaskRequest{ID: taskID}
		receipt := taskqueue.NewReceipt(task, memberID, status, result, int64(10+results.Assigned))
		if err := c.RecordCompletion(receipt); err != nil {
			continue
		}
		if receipt.IsSuccess() {
			results.Succeeded++
		} else {
			results.Failed++
		}
	}

	return results
}

func printResults(cmd *cobra.Command, c *swarm.Coordinator, cfg *config.Config, results simulationResults) {
	out := cmd.OutOrStdout()
	status := c.Status()

	fmt.Fprintf(out, "Swarm: %s\n", status.SwarmID)
	fmt.Fprintf(out, "Members: %d (%d active, capacity %d)\n",
		status.TotalMembers, status.ActiveMembers, status.TotalCapacity)
	fmt.Fprintf(out, "Tasks: %d assigned, %d succeeded, %d failed, %d unroutable\n",
		results.Assigned, results.Succeeded, results.Failed, results.Unroutable)
	fmt.Fprintf(out, "Receipts: %d\n\n", status.CompletedTasks)

	for _, sector := range cfg.Simulate.Sectors {
		fmt.Fprintf(out, "Consensus %-12s %v\n", sector, c.CheckConsensus(sector))
	}

	fmt.Fprintln(out)
	for _, m := range c.Membership().Members() {
		fmt.Fprintf(out, "[%s] %s state=%s load=%d/%d reputation=%d\n",
			m.ID, m.DisplayName, m.State, m.CurrentLoad, m.Capacity, m.Reputation)
	}
}
