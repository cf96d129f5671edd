package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"devprep/internal/model"
)

const (
	defaultSeparatorWidth = 50
	maxSeparatorWidth     = 70
)

// FormatDuration renders a duration as minutes and seconds.
func FormatDuration(d model.Summary) string {
	total := int(d.Duration.Seconds())
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// Render writes the plain-text session summary.
func Render(w io.Writer, s model.Summary) error {
	sep := strings.Repeat("=", separatorWidth())
	lines := []string{
		sep,
		"SESSION SUMMARY",
		sep,
		fmt.Sprintf("Score: %d/%d (%.1f%%)", s.Score, s.Total, s.Percentage),
		fmt.Sprintf("Duration: %s", FormatDuration(s)),
	}
	if s.TimedOut {
		lines = append(lines, "Time limit reached; session ended early.")
	}
	if s.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("Skipped: %d", s.Skipped))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(s.ByTopic) > 0 {
		if err := renderBreakdown(w, "Performance by topic:", s.ByTopic); err != nil {
			return err
		}
	}
	if len(s.ByDifficulty) > 1 {
		if err := renderBreakdown(w, "Performance by difficulty:", s.ByDifficulty); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nAssessment: %s\n", s.Tier); err != nil {
		return err
	}
	return nil
}

func renderBreakdown(w io.Writer, title string, groups []model.GroupScore) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Name,
			fmt.Sprintf("%d/%d", g.Correct, g.Total),
			fmt.Sprintf("%.0f%%", g.Percentage),
		})
	}
	for _, line := range alignColumns(nil, rows, []bool{false, true, true}) {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTopics writes the per-topic question counts table.
func RenderTopics(w io.Writer, topics []model.TopicInfo) error {
	if len(topics) == 0 {
		_, err := fmt.Fprintln(w, "No topics found in the question bank.")
		return err
	}
	headers := []string{"Topic", "Easy", "Medium", "Hard", "Total"}
	rows := make([][]string, 0, len(topics))
	for _, info := range topics {
		rows = append(rows, []string{
			info.Topic,
			fmt.Sprintf("%d", info.ByDifficulty[model.DifficultyEasy]),
			fmt.Sprintf("%d", info.ByDifficulty[model.DifficultyMedium]),
			fmt.Sprintf("%d", info.ByDifficulty[model.DifficultyHard]),
			fmt.Sprintf("%d", info.Total),
		})
	}
	for _, line := range alignColumns(headers, rows, []bool{false, true, true, true, true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// alignColumns pads cells so columns line up. headers may be nil; rightAlign
// selects per-column alignment.
func alignColumns(headers []string, rows [][]string, rightAlign []bool) []string {
	all := rows
	if headers != nil {
		all = append([][]string{headers}, rows...)
	}
	if len(all) == 0 {
		return nil
	}
	widths := make([]int, len(all[0]))
	for _, row := range all {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	lines := make([]string, 0, len(all))
	for _, row := range all {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			pad := widths[i] - utf8.RuneCountInString(cell)
			right := i < len(rightAlign) && rightAlign[i]
			if right {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(cell)
			if !right && i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

func separatorWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return defaultSeparatorWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultSeparatorWidth
	}
	if width > maxSeparatorWidth {
		return maxSeparatorWidth
	}
	return width
}
