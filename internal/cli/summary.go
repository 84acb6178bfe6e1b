package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/tuning"
)

// resultsTable renders one row per tuned net.
func resultsTable(results []*tuning.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		target := "—"
		delta := "—"
		if r.Request.Settings.TargetLength > 0 {
			target = formatLength(float64(r.Request.Settings.TargetLength))
			delta = fmt.Sprintf("%+.0f", r.Delta())
		}
		rows = append(rows, []string{
			r.Request.Net,
			formatLength(r.BaselineLength),
			formatLength(r.Length),
			target,
			delta,
			strconv.Itoa(r.Stats.Meanders),
			r.Status.String(),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Net", "Baseline", "Length", "Target", "Delta", "Meanders", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 6 && row < len(results) {
				return statusStyle(results[row].Status).Padding(0, 1)
			}
			if col == 0 {
				return cell.Foreground(colorWhite)
			}
			return cell.Foreground(colorGray)
		})
	return t.Render()
}

// unitsTable renders units numbered from first, highlighting row cursor.
func unitsTable(units []tuning.Unit, first, cursor int) string {
	rows := make([][]string, 0, len(units))
	for i, u := range units {
		side := "left"
		if u.Side {
			side = "right"
		}
		if u.Type == meander.TypeCorner || u.Type == meander.TypeEmpty {
			side = "—"
		}
		rows = append(rows, []string{
			strconv.Itoa(first + i),
			u.Type.String(),
			strconv.Itoa(u.Amplitude),
			side,
			strconv.Itoa(u.BaseIndex),
			strconv.Itoa(u.Base.Length()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Type", "Amplitude", "Side", "Segment", "Consumes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case first+row == cursor:
				return base.Foreground(colorCyan).Bold(true)
			case row < len(units) && !isMeander(units[row].Type):
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})
	return t.Render()
}

func isMeander(t meander.Type) bool {
	return t != meander.TypeCorner && t != meander.TypeEmpty
}

func statusStyle(s tuning.Status) lipgloss.Style {
	switch s {
	case tuning.StatusTuned:
		return styleTuned
	case tuning.StatusTooShort:
		return styleTooShort
	case tuning.StatusTooLong:
		return styleTooLong
	}
	return styleComputed
}

// formatLength prints a board length in millimeters when it looks like
// nanometers and as a plain number otherwise.
func formatLength(v float64) string {
	if v >= 100_000 {
		return fmt.Sprintf("%.3f mm", v/1e6)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
