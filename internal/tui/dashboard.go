// Package tui renders a live dashboard for a running swarm: member
// states, queue depth, per-sector consensus and a rolling event feed.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hivegrid/hivegrid/internal/config"
	"github.com/hivegrid/hivegrid/internal/errors"
	"github.com/hivegrid/hivegrid/internal/event"
	"github.com/hivegrid/hivegrid/internal/swarm"
	"github.com/hivegrid/hivegrid/internal/taskqueue"
	"github.com/hivegrid/hivegrid/internal/tui/styles"
)

const (
	tickInterval  = 300 * time.Millisecond
	maxFeedLines  = 12
	feedTimestamp = "15:04:05"
)

// tickMsg drives one coordination step per interval.
type tickMsg time.Time

// busMsg carries a published swarm event into the update loop.
type busMsg struct {
	line string
}

// Model is the Bubbletea model for the swarm dashboard.
type Model struct {
	coordinator *swarm.Coordinator
	sectors     []string
	spinner     spinner.Model

	// pending holds assignments awaiting a completion receipt.
	pending []pendingAssignment
	feed    []string
	drained bool
	step    int

	width int
}

type pendingAssignment struct {
	taskID   string
	memberID string
}

// NewModel creates a dashboard model for the coordinator.
func NewModel(coordinator *swarm.Coordinator, cfg *config.Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	return Model{
		coordinator: coordinator,
		sectors:     cfg.Simulate.Sectors,
		spinner:     sp,
	}
}

// Init starts the spinner and the coordination ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, bus events and coordination ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case busMsg:
		m.feed = append(m.feed, msg.line)
		if len(m.feed) > maxFeedLines {
			m.feed = m.feed[len(m.feed)-maxFeedLines:]
		}
		return m, nil

	case tickMsg:
		m.advance()
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// advance performs one coordination step: distribute the next queued
// task, or settle the oldest outstanding assignment once the backlog is
// drained.
func (m *Model) advance() {
	m.step++

	taskID, memberID, err := m.coordinator.DistributeNextTask()
	switch {
	case err == nil:
		m.pending = append(m.pending, pendingAssignment{taskID: taskID, memberID: memberID})
		return
	case errors.Is(err, errors.ErrQueueEmpty):
		m.drained = true
	default:
		// Unroutable task; it is consumed, keep going.
		return
	}

	if len(m.pending) == 0 {
		return
	}

	next := m.pending[0]
	m.pending = m.pending[1:]

	status := taskqueue.StatusCompleted
	result := "result of " + next.taskID
	if m.step%5 == 0 {
		status = taskqueue.StatusFailed
		result = ""
	}
	receipt := taskqueue.NewReceipt(&taskqueue.TaskRequest{ID: next.taskID}, next.memberID, status, result, int64(m.step))
	_ = m.coordinator.RecordCompletion(receipt)
}

// View renders the dashboard.
func (m Model) View() string {
	status := m.coordinator.Status()

	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("%s HiveGrid swarm %s", m.spinner.View(), shortID(status.SwarmID))))
	b.WriteString("\n")

	summary := fmt.Sprintf("members %d/%d active  load %d/%d  queued %d  receipts %d",
		status.ActiveMembers, status.TotalMembers,
		status.CurrentTasks, status.TotalCapacity,
		status.QueuedTasks, status.CompletedTasks)
	b.WriteString(styles.Text.Render(summary))
	b.WriteString("\n\n")

	b.WriteString(styles.Panel.Render(m.memberTable()))
	b.WriteString("\n")
	b.WriteString(styles.Panel.Render(m.consensusPanel()))
	b.WriteString("\n")

	if len(m.feed) > 0 {
		b.WriteString(styles.Panel.Render(strings.Join(m.feed, "\n")))
		b.WriteString("\n")
	}

	if m.drained && len(m.pending) == 0 {
		b.WriteString(styles.Secondary.Render("backlog drained"))
		b.WriteString("\n")
	}
	b.WriteString(styles.Help.Render("q: quit"))
	return b.String()
}

func (m Model) memberTable() string {
	members := m.coordinator.Membership().Members()
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	rows := make([]string, 0, len(members)+1)
	rows = append(rows, styles.Muted.Render(fmt.Sprintf("%-12s %-8s %-7s %-10s %s",
		"member", "state", "load", "reputation", "sectors")))
	for _, mem := range members {
		state := styles.MemberState(mem.State.String()).Render(fmt.Sprintf("%-8s", mem.State))
		rows = append(rows, fmt.Sprintf("%-12s %s %-7s %-10d %s",
			mem.ID, state,
			fmt.Sprintf("%d/%d", mem.CurrentLoad, mem.Capacity),
			mem.Reputation,
			strings.Join(mem.Sectors, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) consensusPanel() string {
	parts := make([]string, 0, len(m.sectors))
	for _, sector := range m.sectors {
		label := styles.Error.Render("no consensus")
		if m.coordinator.CheckConsensus(sector) {
			label = styles.Secondary.Render("consensus")
		}
		parts = append(parts, fmt.Sprintf("%-12s %s", sector, label))
	}
	return strings.Join(parts, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RunDashboard wires the event bus into a Bubbletea program and blocks
// until the user quits.
func RunDashboard(coordinator *swarm.Coordinator, bus *event.Bus, cfg *config.Config) error {
	model := NewModel(coordinator, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	token := bus.SubscribeAll(func(evt event.Event) {
		program.Send(busMsg{line: formatEvent(evt)})
	})
	defer bus.Unsubscribe(token)

	_, err := program.Run()
	return err
}

// formatEvent renders one feed line for a published swarm event.
func formatEvent(evt event.Event) string {
	ts := styles.Muted.Render(evt.Timestamp().Format(feedTimestamp))

	switch e := evt.(type) {
	case event.TaskAssignedEvent:
		return fmt.Sprintf("%s task %s -> %s (%d candidates)", ts, shortID(e.TaskID), e.MemberID, e.Candidates)
	case event.TaskCompletedEvent:
		outcome := styles.Secondary.Render("ok")
		if !e.Success {
			outcome = styles.Error.Render("failed")
		}
		return fmt.Sprintf("%s task %s done by %s %s", ts, shortID(e.TaskID), e.MemberID, outcome)
	case event.ConsensusCheckedEvent:
		return fmt.Sprintf("%s consensus %s %d/%d reached=%v", ts, e.Sector, e.Idle, e.Total, e.Reached)
	default:
		return fmt.Sprintf("%s %s", ts, evt.EventType())
	}
}
