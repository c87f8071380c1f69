package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/docreel/docreel/pkg/snapshot"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SnapshotListModel - Interactive snapshot browsing
// =============================================================================

// SnapshotListModel is the bubbletea model for browsing the snapshot history.
type SnapshotListModel struct {
	Snapshots []snapshot.Snapshot
	Messages  []string // one header message per snapshot, aligned by index
	Cursor    int
	Selected  *snapshot.Snapshot
	Height    int
	Offset    int
}

// NewSnapshotListModel creates a new snapshot list model. messages must be
// index-aligned with snapshots (see snapshot.Messages.Annotate).
func NewSnapshotListModel(snapshots []snapshot.Snapshot, messages []string) SnapshotListModel {
	return SnapshotListModel{
		Snapshots: snapshots,
		Messages:  messages,
		Cursor:    0,
		Height:    15,
		Offset:    0,
	}
}

func (m SnapshotListModel) Init() tea.Cmd {
	return nil
}

func (m SnapshotListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Snapshots)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			s := m.Snapshots[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SnapshotListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Snapshot History"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Snapshots) {
		end = len(m.Snapshots)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Snapshots[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		message := ""
		if i < len(m.Messages) {
			message = m.Messages[i]
		}
		if message == "" {
			message = "—"
		}

		rows = append(rows, []string{
			cursor,
			shortID(s.ID),
			s.Time().Format("2006-01-02"),
			fmt.Sprintf("%d", s.Stats.WordCount),
			fmt.Sprintf("%d", s.Stats.UniqueWordCount),
			fmt.Sprintf("%d", s.Stats.FigureCount),
			message,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Snapshot", "Date", "Words", "Unique", "Figs", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Snapshots) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 2 || col == 6 {
				base = base.Foreground(colorGray)
			}
			if isCurrent {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Snapshots))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// shortID abbreviates long snapshot ids (git hashes) for table display.
func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

// formatRelativeTime renders a timestamp relative to now for recent dates.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
