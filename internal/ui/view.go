package ui

import (
	"fmt"
	"strings"

	"ffstudio/internal/ffmpeg"
	"ffstudio/internal/util/media"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewPaths())
	b.WriteString("\n")
	b.WriteString(m.viewOptions())
	b.WriteString("\n")
	b.WriteString(m.viewPreview())
	b.WriteString("\n")
	b.WriteString(m.viewProgress())
	b.WriteString("\n")
	b.WriteString(m.viewLog())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("ffstudio")
	sub := m.styles.Subtitle.Render(m.cfg.Operation.Description())
	return title + "  " + sub
}

func (m Model) viewPaths() string {
	var b strings.Builder
	b.WriteString(m.pathLine("Input ", m.inputPath.View(), m.focus == focusInput))
	b.WriteString("\n")
	b.WriteString(m.pathLine("Output", m.outputPath.View(), m.focus == focusOutput))
	b.WriteString("\n")
	return b.String()
}

func (m Model) pathLine(label, field string, focused bool) string {
	l := m.styles.Label.Render(label)
	if focused {
		l = m.styles.Selected.Render(label)
	}
	return fmt.Sprintf("  %s %s", l, field)
}

func (m Model) viewOptions() string {
	rows := m.visibleRows()
	var b strings.Builder
	for i, id := range rows {
		focused := m.focus == focusRows+i
		label := m.rowLabel(id)
		value := m.rowValue(id)

		cursor := "  "
		labelStyle := m.styles.Label
		valueStyle := m.styles.Value
		if focused {
			cursor = "> "
			labelStyle = m.styles.Selected
			valueStyle = m.styles.Selected
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			cursor,
			labelStyle.Render(fmt.Sprintf("%-14s", label)),
			valueStyle.Render(value)))
	}
	return b.String()
}

func (m Model) viewPreview() string {
	cfg := m.cfg
	cfg.InputPath = m.inputPath.Value()
	cfg.OutputPath = m.outputPath.Value()
	if cfg.OutputPath == "" {
		cfg.OutputPath = media.DefaultOutputPath(cfg)
	}
	cfg = cfg.Clamped()
	return m.styles.Faint.Render("  " + truncate(ffmpeg.Preview(cfg), m.lineWidth()))
}

func (m Model) viewProgress() string {
	frac := m.sup.Fraction()
	bar := m.bar.ViewAs(frac)
	pct := fmt.Sprintf("%5.1f%%", frac*100)

	state := m.styles.Faint.Render("idle")
	if m.sup.Running() {
		state = m.styles.Running.Render("running")
	} else if frac >= 1.0 {
		state = m.styles.Success.Render("done")
	}
	return fmt.Sprintf("  %s %s %s", bar, pct, state)
}

func (m Model) viewLog() string {
	return m.styles.LogBox.Render(m.logView.View())
}

func (m Model) viewFooter() string {
	keys := "tab/↑↓: move • ←→: change • s/enter: start • c: cancel • q: quit"
	return m.styles.Faint.Render("  " + keys)
}

func (m Model) lineWidth() int {
	if m.width > 6 {
		return m.width - 6
	}
	return 74
}

func truncate(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
