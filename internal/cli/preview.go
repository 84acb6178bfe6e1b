package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/tuning"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var net, output string

	cmd := &cobra.Command{
		Use:   "preview [job file]",
		Short: "Adjust a net's meander settings interactively",
		Long: `Preview loads one net of a job file and re-tunes it on every key press,
showing the resulting units and length. Press w to save the current shape
as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), args[0], net, output)
		},
	}

	cmd.Flags().StringVarP(&net, "net", "n", "", "net to preview (default: first net)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG path for w (default: <job>_<net>.svg)")

	return cmd
}

func runPreview(ctx context.Context, path, net, output string) error {
	var nets []string
	if net != "" {
		nets = []string{net}
	}
	reqs, err := loadRequests(path, nets)
	if err != nil {
		return err
	}
	req := reqs[0]
	if output == "" {
		output = outputPath(trimExt(path), req.Net, tuning.FormatSVG)
	}

	m := newPreviewModel(req, output)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if pm, ok := final.(previewModel); ok && pm.saved != "" {
		printFile(pm.saved)
	}
	return nil
}

// =============================================================================
// previewModel - Interactive re-tuning
// =============================================================================

var (
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// previewModel is the bubbletea model for the preview command. Every
// settings change re-tunes the net from scratch.
type previewModel struct {
	req    tuning.Request
	res    *tuning.Result
	err    error
	output string
	saved  string

	cursor int
	offset int
	height int
}

func newPreviewModel(req tuning.Request, output string) previewModel {
	req.SetDefaults()
	m := previewModel{req: req, output: output, height: 12}
	m.retune()
	return m
}

func (m *previewModel) retune() {
	m.res, m.err = tuning.TuneNet(m.req)
	if m.res != nil && m.cursor >= len(m.res.Units) {
		m.cursor = max(len(m.res.Units)-1, 0)
		m.offset = max(m.cursor-m.height+1, 0)
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		st := &m.req.Settings
		step := max(st.Step, 1)

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
			return m, nil
		case "down", "j":
			if m.res != nil && m.cursor < len(m.res.Units)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
			return m, nil
		case "+", "=":
			st.MaxAmplitude += step
		case "-":
			st.MaxAmplitude = max(st.MaxAmplitude-step, st.MinAmplitude)
		case "]":
			st.Spacing += step
		case "[":
			st.Spacing = max(st.Spacing-step, step)
		case ">", ".":
			st.TargetLength += 10 * int64(step)
		case "<", ",":
			st.TargetLength = max(st.TargetLength-10*int64(step), 0)
		case "c":
			if st.CornerStyle == meander.CornerRound {
				st.CornerStyle = meander.CornerChamfer
			} else {
				st.CornerStyle = meander.CornerRound
			}
		case "s":
			st.SingleSided = !st.SingleSided
		case "f":
			m.req.FlipSide = !m.req.FlipSide
		case "w":
			m.save()
			return m, nil
		default:
			return m, nil
		}
		m.saved = ""
		m.retune()

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m *previewModel) save() {
	if m.res == nil {
		return
	}
	data, err := tuning.RenderResult(m.res, tuning.RenderOptions{
		Format:        tuning.FormatSVG,
		ShowBaseline:  true,
		ShowObstacles: true,
		UnitColors:    true,
	})
	if err == nil {
		err = os.WriteFile(m.output, data, 0o644)
	}
	if err != nil {
		m.err = err
		return
	}
	m.saved = m.output
}

func (m previewModel) View() string {
	var b strings.Builder
	st := m.req.Settings

	b.WriteString(StyleTitle.Render("Preview " + m.req.Net))
	b.WriteString("\n\n")

	field := func(label, value string) string {
		return previewLabelStyle.Render(label+" ") + StyleValue.Render(value)
	}
	b.WriteString(strings.Join([]string{
		field("amplitude", fmt.Sprintf("%d..%d", st.MinAmplitude, st.MaxAmplitude)),
		field("spacing", fmt.Sprint(st.Spacing)),
		field("corners", st.CornerStyle.String()),
		field("single-sided", fmt.Sprint(st.SingleSided)),
		field("flip", fmt.Sprint(m.req.FlipSide)),
	}, "   "))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n" + previewErrorStyle.Render(m.err.Error()) + "\n")
	}
	if m.res != nil {
		target := "none"
		if st.TargetLength > 0 {
			target = formatLength(float64(st.TargetLength))
		}
		b.WriteString(strings.Join([]string{
			field("length", formatLength(m.res.Length)),
			field("target", target),
			field("status", statusStyle(m.res.Status).Render(m.res.Status.String())),
		}, "   "))
		b.WriteString("\n\n")
		b.WriteString(unitsTable(m.visibleUnits(), m.offset, m.cursor))
		b.WriteString("\n")
		b.WriteString(previewHelpStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.res.Units))))
	}
	if m.saved != "" {
		b.WriteString("  " + StyleSuccess.Render("saved "+m.saved))
	}

	b.WriteString("\n\n")
	b.WriteString(previewHelpStyle.Render("+/- amplitude  [/] spacing  </> target  c corners  s single-sided  f flip  w save  q quit"))
	return b.String()
}

func (m previewModel) visibleUnits() []tuning.Unit {
	end := min(m.offset+m.height, len(m.res.Units))
	return m.res.Units[m.offset:end]
}
