package cmd

import (
	"fmt"

	"github.com/hivegrid/hivegrid/internal/config"
	"github.com/hivegrid/hivegrid/internal/taskqueue"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show persisted queue state",
	Long:  `Display the backlog and receipt log from the last persisted queue state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	queue, err := taskqueue.LoadState(cfg.Queue.ResolvePersistDir())
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No persisted queue state")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backlog: %d tasks\n", queue.TaskCount())
	for i, task := range queue.Tasks() {
		fmt.Fprintf(out, "[%d] %s priority=%d sectors=%v\n", i+1, task.Operation, task.Priority, task.Sectors)
	}

	fmt.Fprintf(out, "\nReceipts: %d\n", queue.ReceiptCount())
	for i, receipt := range queue.Receipts() {
		fmt.Fprintf(out, "[%d] task=%s agent=%s status=%s time=%dms\n",
			i+1, receipt.TaskID, receipt.AgentID, receipt.Status, receipt.ExecutionTimeMs)
	}

	return nil
}
