package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/docreel/docreel/pkg/snapshot"
)

// inspectCommand creates the inspect command for browsing the history.
func (c *CLI) inspectCommand() *cobra.Command {
	var paths pathFlags

	cmd := &cobra.Command{
		Use:   "inspect [id]",
		Short: "Browse snapshots and their statistics",
		Long: `Browse snapshots and their statistics.

Without arguments, inspect opens an interactive list of all snapshots in
the manifest; picking one shows its statistics and most frequent words.
With a snapshot id, the details are printed directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := paths.load(cmd)
			if err != nil {
				return err
			}
			snapshots, err := snapshot.Load(opts.ManifestPath, opts.StatsDir)
			if err != nil {
				return fmt.Errorf("load manifest %s: %w", opts.ManifestPath, err)
			}
			messages := opts.Messages.Annotate(snapshots)

			if len(args) == 1 {
				return inspectOne(snapshots, messages, args[0])
			}
			return inspectInteractive(snapshots, messages)
		},
	}

	paths.register(cmd)
	return cmd
}

// inspectInteractive runs the snapshot picker and prints the selection.
func inspectInteractive(snapshots []snapshot.Snapshot, messages []string) error {
	if len(snapshots) == 0 {
		printWarning("Manifest contains no snapshots")
		return nil
	}

	model := NewSnapshotListModel(snapshots, messages)
	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive selection: %w", err)
	}

	final, ok := result.(SnapshotListModel)
	if !ok || final.Selected == nil {
		return nil // user quit without selecting
	}
	return inspectOne(snapshots, messages, final.Selected.ID)
}

// inspectOne prints the details of a single snapshot.
func inspectOne(snapshots []snapshot.Snapshot, messages []string, id string) error {
	idx := -1
	for i, s := range snapshots {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("snapshot %q not in manifest", id)
	}
	s := snapshots[idx]

	fmt.Println(StyleTitle.Render("Snapshot " + shortID(s.ID)))
	printNewline()

	date := s.Time()
	printKeyValue("Date", fmt.Sprintf("%s (%s)", date.Format("2006-01-02 15:04:05"), formatRelativeTime(date)))
	printKeyValue("Elapsed", fmt.Sprintf("%.1f days since first snapshot", s.DaysSince(snapshots[0])))
	printKeyValue("Words", fmt.Sprintf("%d (%d unique)", s.Stats.WordCount, s.Stats.UniqueWordCount))
	printKeyValue("Figures", fmt.Sprintf("%d", s.Stats.FigureCount))
	printKeyValue("Equations", fmt.Sprintf("%d", s.Stats.EquationCount))
	printKeyValue("Tables", fmt.Sprintf("%d", s.Stats.TableCount))
	if s.Stats.ListingCount > 0 {
		printKeyValue("Listings", fmt.Sprintf("%d", s.Stats.ListingCount))
	}
	if idx < len(messages) && messages[idx] != "" {
		printKeyValue("Message", messages[idx])
	}

	if top := topWords(s.Frequencies, 8); len(top) > 0 {
		printNewline()
		printInfo("Most frequent words")
		printDetail("%s", strings.Join(top, " · "))
	}
	return nil
}

// topWords returns the n most frequent words as "word (count)" strings,
// ties broken alphabetically.
func topWords(freqs map[string]float64, n int) []string {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freqs[words[i]] != freqs[words[j]] {
			return freqs[words[i]] > freqs[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > n {
		words = words[:n]
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fmt.Sprintf("%s (%.0f)", w, freqs[w])
	}
	return out
}
